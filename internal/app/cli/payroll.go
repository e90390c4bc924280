package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"hrpay/internal/apperr"
	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/payroll"
)

func newProgressionCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{Use: "progression", Short: "Annual scale progression"}
	cmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Advance every employee one scale point now",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := s.login(cmd.Context(), auth.PermPayrollRun)
			if err != nil {
				return err
			}
			summary, err := a.RunProgression(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), summary)
		},
	})
	return cmd
}

func newClaimCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{Use: "claim", Short: "Part-time pay claims"}
	cmd.AddCommand(&cobra.Command{
		Use:   "submit HOURS",
		Short: "Claim hours worked this month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := decimal.NewFromString(args[0])
			if err != nil {
				return apperr.Validation("hours", "must be a number")
			}
			a, id, err := s.login(cmd.Context(), auth.PermClaimsSubmit)
			if err != nil {
				return err
			}
			claim, err := a.SubmitClaim(cmd.Context(), id.Username, hours)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), claim)
		},
	})
	return cmd
}

func newPayslipCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{Use: "payslip", Short: "Generate and view payslips"}

	var date string
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Issue this month's payslips",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := s.login(cmd.Context(), auth.PermPayrollRun)
			if err != nil {
				return err
			}
			when := a.Today()
			if date != "" {
				if when, err = time.Parse(time.DateOnly, date); err != nil {
					return apperr.Validation("date", "must be YYYY-MM-DD")
				}
			}
			report, err := a.RunPayroll(cmd.Context(), when)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
	generate.Flags().StringVar(&date, "date", "", "generation date YYYY-MM-DD (default today)")

	var (
		employeeID int
		period     string
	)
	show := &cobra.Command{
		Use:   "show",
		Short: "List payslips of one month",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, id, err := s.login(cmd.Context(), "")
			if err != nil {
				return err
			}
			target, err := payslipOwner(cmd, s, id, employeeID)
			if err != nil {
				return err
			}
			p := payroll.PeriodOf(a.Today())
			if period != "" {
				if p, err = payroll.ParsePeriod(period); err != nil {
					return err
				}
			}
			slips, err := a.Payroll.ForEmployee(cmd.Context(), target, p)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), slips)
		},
	}
	show.Flags().IntVar(&employeeID, "id", 0, "employee id (HR and Admin only; default yourself)")
	show.Flags().StringVar(&period, "period", "", "MM/YYYY (default this month)")

	pdf := &cobra.Command{
		Use:   "pdf ID MM/YYYY",
		Short: "Write one payslip as a PDF file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			want, err := strconv.Atoi(args[0])
			if err != nil {
				return apperr.Validation("id", "must be a number")
			}
			p, err := payroll.ParsePeriod(args[1])
			if err != nil {
				return err
			}
			a, id, err := s.login(cmd.Context(), "")
			if err != nil {
				return err
			}
			target, err := payslipOwner(cmd, s, id, want)
			if err != nil {
				return err
			}
			slip, err := a.Payroll.Find(cmd.Context(), target, p)
			if err != nil {
				return err
			}
			path, err := a.PDF.Write(slip)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}

	cmd.AddCommand(generate, show, pdf)
	return cmd
}

// payslipOwner resolves whose payslips id may read: anyone's with
// payslips.all, otherwise only their own.
func payslipOwner(cmd *cobra.Command, s *session, id auth.Identity, want int) (int, error) {
	if auth.HasPermission(id.Role, auth.PermPayslipsAll) {
		if want == 0 {
			return 0, apperr.Validation("id", "required")
		}
		return want, nil
	}
	if err := auth.Require(id, auth.PermPayslipsOwn); err != nil {
		return 0, err
	}
	own, err := s.app.People.GetByUsername(cmd.Context(), id.Username)
	if err != nil {
		return 0, err
	}
	if want != 0 && want != own.ID {
		return 0, auth.ErrForbidden
	}
	return own.ID, nil
}
