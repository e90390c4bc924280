package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"hrpay/internal/apperr"
	"hrpay/internal/domain/employee"
)

type EmployeeLister interface {
	ListAll(ctx context.Context) ([]employee.Employee, error)
}

type StatusLister interface {
	All(ctx context.Context) (map[string]employee.Kind, error)
}

type SalaryLookup interface {
	AnnualSalary(title string, point int) (decimal.Decimal, error)
}

// Service is the payslip engine. It reads employees and the scale table
// and only ever appends to the payslip log.
type Service struct {
	employees EmployeeLister
	statuses  StatusLister
	salaries  SalaryLookup
	claims    *ClaimStore
	payslips  *PayslipStore
	mu        sync.Mutex
}

func NewService(employees EmployeeLister, statuses StatusLister, salaries SalaryLookup, claims *ClaimStore, payslips *PayslipStore) *Service {
	return &Service{employees: employees, statuses: statuses, salaries: salaries, claims: claims, payslips: payslips}
}

// ComputeSalaried builds the payslip of a Full-Time employee.
func (s *Service) ComputeSalaried(e employee.Employee, period Period) (Payslip, error) {
	annual, err := s.salaries.AnnualSalary(e.JobTitle, e.ScalePoint)
	if err != nil {
		return Payslip{}, err
	}
	return newPayslip(e, period, Compute(MonthlySalary(annual))), nil
}

// ComputeHourly builds the payslip of a Part-Time employee from claim.
func (s *Service) ComputeHourly(e employee.Employee, claim Claim, period Period) (Payslip, error) {
	if !period.Contains(claim.Date) {
		return Payslip{}, ErrNoClaim
	}
	return newPayslip(e, period, Compute(claim.Hours.Mul(claim.Rate))), nil
}

func newPayslip(e employee.Employee, period Period, b Breakdown) Payslip {
	r := b.Rounded()
	return Payslip{
		EmployeeID: e.ID,
		Name:       e.Name,
		Period:     period.String(),
		JobTitle:   e.JobTitle,
		ScalePoint: e.ScalePoint,
		Gross:      r.Gross,
		IncomeTax:  r.IncomeTax,
		PRSI:       r.PRSI,
		USC:        r.USC,
		UnionFee:   r.UnionFee,
		Net:        r.Net,
	}
}

// Generate runs one generation pass for the month of date. Employees
// without a known status, or already paid for the period, are skipped.
// A failure for one employee is reported and does not stop the pass.
func (s *Service) Generate(ctx context.Context, date time.Time) (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	period := PeriodOf(date)
	report := Report{Period: period.String()}

	records, err := s.employees.ListAll(ctx)
	if err != nil {
		return report, err
	}
	kinds, err := s.statuses.All(ctx)
	if err != nil {
		return report, err
	}
	issued, err := s.payslips.IssuedIDs(ctx, period)
	if err != nil {
		return report, err
	}

	for _, e := range records {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		kind, ok := kinds[e.Username]
		if !ok {
			report.Skipped = append(report.Skipped, Skip{Username: e.Username, Reason: SkipNoStatus})
			continue
		}
		if issued[e.ID] {
			report.Skipped = append(report.Skipped, Skip{Username: e.Username, Reason: SkipAlreadyIssued})
			continue
		}

		slip, err := s.compute(ctx, e, kind, period)
		switch {
		case err == nil:
		case errors.Is(err, ErrNoClaim):
			slog.Warn("no pay claim for current month", "username", e.Username, "period", report.Period)
			report.NoClaim = append(report.NoClaim, e.Username)
			continue
		default:
			slog.Warn("payslip computation failed", "username", e.Username, "err", err)
			report.Failed = append(report.Failed, Failure{Username: e.Username, Error: err.Error()})
			continue
		}

		if err := s.payslips.Append(ctx, slip); err != nil {
			return report, err
		}
		issued[e.ID] = true
		report.Written = append(report.Written, slip)
	}

	slog.Info("payslip generation finished",
		"period", report.Period,
		"written", len(report.Written),
		"no_claim", len(report.NoClaim),
		"skipped", len(report.Skipped),
		"failed", len(report.Failed),
	)
	return report, nil
}

func (s *Service) compute(ctx context.Context, e employee.Employee, kind employee.Kind, period Period) (Payslip, error) {
	switch kind {
	case employee.KindFullTime:
		return s.ComputeSalaried(e, period)
	case employee.KindPartTime:
		claim, err := s.claims.Latest(ctx, e.Username)
		if apperr.IsNotFound(err) {
			return Payslip{}, ErrNoClaim
		}
		if err != nil {
			return Payslip{}, err
		}
		return s.ComputeHourly(e, claim, period)
	default:
		return Payslip{}, apperr.Validation("employmentKind", "unknown employment kind "+string(kind))
	}
}

// ForEmployee lists the payslips of employee id for period.
func (s *Service) ForEmployee(ctx context.Context, id int, period Period) ([]Payslip, error) {
	return s.payslips.ForEmployee(ctx, id, period)
}

// Find returns the single payslip of id for period.
func (s *Service) Find(ctx context.Context, id int, period Period) (Payslip, error) {
	slips, err := s.payslips.ForEmployee(ctx, id, period)
	if err != nil {
		return Payslip{}, err
	}
	if len(slips) == 0 {
		return Payslip{}, apperr.NotFound("payslip", fmt.Sprintf("%d %s", id, period))
	}
	return slips[len(slips)-1], nil
}
