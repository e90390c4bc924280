package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"hrpay/internal/apperr"
	"hrpay/internal/domain/auth"
)

func newPromotionCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{Use: "promotion", Short: "Propose, confirm or reject promotions"}

	propose := &cobra.Command{
		Use:   "propose ID JOB_TITLE SCALE_POINT",
		Short: "Move an employee to a new position pending their answer",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return apperr.Validation("id", "must be a number")
			}
			point, err := strconv.Atoi(args[2])
			if err != nil {
				return apperr.Validation("scalePoint", "must be a number")
			}
			a, _, err := s.login(cmd.Context(), auth.PermPromotionWrite)
			if err != nil {
				return err
			}
			result, err := a.Promotion.Propose(cmd.Context(), id, args[1], point)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	confirm := &cobra.Command{
		Use:   "confirm",
		Short: "Accept your pending promotion",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, id, err := s.login(cmd.Context(), auth.PermPromotionAnswer)
			if err != nil {
				return err
			}
			result, err := a.Promotion.Confirm(cmd.Context(), id.Username)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	reject := &cobra.Command{
		Use:   "reject",
		Short: "Decline your pending promotion and return to your previous position",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, id, err := s.login(cmd.Context(), auth.PermPromotionAnswer)
			if err != nil {
				return err
			}
			result, err := a.Promotion.Reject(cmd.Context(), id.Username)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.AddCommand(propose, confirm, reject)
	return cmd
}
