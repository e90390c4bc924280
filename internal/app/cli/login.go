package cli

import (
	"github.com/spf13/cobra"

	"hrpay/internal/domain/auth"
)

func newLoginCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Check credentials and print an API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, id, err := s.login(cmd.Context(), "")
			if err != nil {
				return err
			}
			token, err := auth.GenerateToken(a.Config.JWTSecret, id, a.Config.TokenTTL)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{"identity": id, "token": token})
		},
	}
}
