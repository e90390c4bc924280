package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hrpay/internal/app"
	"hrpay/internal/apperr"
	"hrpay/internal/domain/auth"
	"hrpay/internal/platform/config"
	"hrpay/internal/platform/logger"
)

// session carries what every command shares: the viper instance flags bind
// to and the app built from it.
type session struct {
	v          *viper.Viper
	configFile string
	app        *app.App
}

func newRootCommand(s *session) *cobra.Command {
	root := &cobra.Command{
		Use:           "hrpay",
		Short:         "Payroll and personnel records",
		Long:          `Keeps employee records, runs promotions and annual progression, and issues payslips.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&s.configFile, "config", "", "config file (default ./hrpay.yaml or $HOME/.hrpay/hrpay.yaml)")
	flags.String("data-dir", "", "directory holding the CSV files")
	flags.String("storage", "", "employee storage driver: csv, sqlite or postgres")
	flags.StringP("username", "u", "", "acting username")
	flags.StringP("password", "p", "", "acting password")
	flags.StringP("role", "r", "", "acting role: Admin, HR or Employee")
	for key, name := range map[string]string{
		"data.dir":       "data-dir",
		"storage.driver": "storage",
		"cli.username":   "username",
		"cli.password":   "password",
		"cli.role":       "role",
	} {
		_ = s.v.BindPFlag(key, flags.Lookup(name))
	}

	root.AddCommand(
		newServeCommand(s),
		newLoginCommand(s),
		newCalendarCommand(s),
		newEmployeeCommand(s),
		newPromotionCommand(s),
		newProgressionCommand(s),
		newClaimCommand(s),
		newPayslipCommand(s),
	)
	return root
}

func Execute() {
	s := &session{v: viper.New()}
	err := newRootCommand(s).Execute()
	s.close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error (%s): %v\n", apperr.Code(err), err)
		os.Exit(1)
	}
}

// open loads config and builds the app once per invocation.
func (s *session) open(ctx context.Context) (*app.App, error) {
	if s.app != nil {
		return s.app, nil
	}
	cfg, err := config.Load(s.v, s.configFile)
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Environment)
	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s.app = a
	return a, nil
}

func (s *session) close() {
	if s.app != nil {
		s.app.Close()
		s.app = nil
	}
}

// login authenticates the acting user from the persistent flags and checks
// permission, when one is given.
func (s *session) login(ctx context.Context, permission string) (*app.App, auth.Identity, error) {
	a, err := s.open(ctx)
	if err != nil {
		return nil, auth.Identity{}, err
	}
	role, err := auth.ParseRole(s.v.GetString("cli.role"))
	if err != nil {
		return nil, auth.Identity{}, apperr.Validation("role", "must be Admin, HR or Employee")
	}
	id, err := a.Auth.Authenticate(ctx, s.v.GetString("cli.username"), s.v.GetString("cli.password"), role)
	if err != nil {
		return nil, auth.Identity{}, err
	}
	if permission != "" {
		if err := auth.Require(id, permission); err != nil {
			return nil, auth.Identity{}, err
		}
	}
	return a, id, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
