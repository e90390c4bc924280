package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"hrpay/internal/apperr"
	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/employee"
)

func newEmployeeCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{Use: "employee", Short: "Create and inspect employee records"}

	var in employee.NewEmployee
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an employee with its login and employment status",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := s.login(cmd.Context(), auth.PermEmployeesCreate)
			if err != nil {
				return err
			}
			created, err := a.People.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), created)
		},
	}
	f := create.Flags()
	f.StringVar(&in.ID, "id", "", "5-digit employee id")
	f.StringVar(&in.Username, "new-username", "", "login name")
	f.StringVar(&in.Password, "new-password", "", "login password")
	f.StringVar(&in.Role, "new-role", "Employee", "login role")
	f.StringVar(&in.Name, "name", "", "full name")
	f.StringVar(&in.DateOfBirth, "dob", "", "date of birth DD/MM/YYYY")
	f.StringVar(&in.NationalID, "national-id", "", "PPS number")
	f.StringVar(&in.Kind, "kind", "Full-Time", "Full-Time or Part-Time")
	f.StringVar(&in.JobTitle, "job-title", "", "job title from the scale table")
	f.IntVar(&in.ScalePoint, "scale-point", 1, "scale point")

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Print one employee record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return apperr.Validation("id", "must be a number")
			}
			a, _, err := s.login(cmd.Context(), auth.PermEmployeesRead)
			if err != nil {
				return err
			}
			record, err := a.People.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), record)
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Print every employee record",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := s.login(cmd.Context(), auth.PermEmployeesRead)
			if err != nil {
				return err
			}
			records, err := a.People.List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), records)
		},
	}

	cmd.AddCommand(create, show, list)
	return cmd
}
