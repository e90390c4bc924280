package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hrpay/internal/app/server"
)

func newServeCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			a, err := s.open(ctx)
			if err != nil {
				return err
			}
			return server.Run(ctx, a)
		},
	}
	cmd.Flags().String("addr", "", "listen address")
	cmd.Flags().Bool("realtime", false, "follow the wall clock and schedule payroll with cron")
	_ = s.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = s.v.BindPFlag("scheduler.realtime", cmd.Flags().Lookup("realtime"))
	return cmd
}
