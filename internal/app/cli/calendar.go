package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/calendar"
)

func newCalendarCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{Use: "calendar", Short: "Show or move the simulated date"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the current date",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := s.open(cmd.Context())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), a.Calendar.Today().Format(time.DateOnly))
				return err
			},
		},
		&cobra.Command{
			Use:   "advance day|week|month",
			Short: "Move the date forward and run what falls due",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				step, err := calendar.ParseStep(args[0])
				if err != nil {
					return err
				}
				a, _, err := s.login(cmd.Context(), auth.PermCalendarAdvance)
				if err != nil {
					return err
				}
				result, err := a.Calendar.Advance(cmd.Context(), step)
				if err != nil && result.To.IsZero() {
					return err
				}
				if err != nil {
					slog.Warn("calendar moved but a scheduled run failed", "err", err)
				}
				return printJSON(cmd.OutOrStdout(), result)
			},
		},
	)
	return cmd
}
