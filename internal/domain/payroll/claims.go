package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"hrpay/internal/apperr"
	"hrpay/internal/domain/employee"
)

type EmployeeFinder interface {
	FindByUsername(ctx context.Context, username string) (employee.Employee, error)
}

type StatusLookup interface {
	Kind(ctx context.Context, username string) (employee.Kind, error)
}

type RateLookup interface {
	HourlyRate(title string, point int) decimal.Decimal
}

type ClaimService struct {
	claims    *ClaimStore
	employees EmployeeFinder
	statuses  StatusLookup
	rates     RateLookup
}

func NewClaimService(claims *ClaimStore, employees EmployeeFinder, statuses StatusLookup, rates RateLookup) *ClaimService {
	return &ClaimService{claims: claims, employees: employees, statuses: statuses, rates: rates}
}

// Submit records an hours claim for username dated date. Only Part-Time
// employees claim, at most once a month and no later than the month's
// second Friday.
func (s *ClaimService) Submit(ctx context.Context, username string, hours decimal.Decimal, date time.Time) (Claim, error) {
	kind, err := s.statuses.Kind(ctx, username)
	if apperr.IsNotFound(err) {
		if _, ferr := s.employees.FindByUsername(ctx, username); ferr != nil {
			return Claim{}, ferr
		}
	} else if err != nil {
		return Claim{}, err
	}
	if kind != employee.KindPartTime {
		return Claim{}, apperr.Validation("employmentKind", "only Part-Time employees submit pay claims")
	}
	if deadline := SecondFriday(date); date.Day() > deadline.Day() {
		return Claim{}, apperr.Validation("claimDate", fmt.Sprintf("claims close on the second Friday of the month (%s)", deadline.Format(claimDateLayout)))
	}
	period := PeriodOf(date)
	exists, err := s.claims.HasClaimIn(ctx, username, period)
	if err != nil {
		return Claim{}, err
	}
	if exists {
		return Claim{}, apperr.Duplicate("pay claim", username+" "+period.String())
	}
	if hours.IsNegative() || hours.GreaterThan(maxClaimHours) {
		return Claim{}, apperr.Validation("hours", "must be between 0 and 160")
	}

	e, err := s.employees.FindByUsername(ctx, username)
	if err != nil {
		return Claim{}, err
	}
	rate := s.rates.HourlyRate(e.JobTitle, e.ScalePoint)
	if rate.IsZero() {
		return Claim{}, apperr.NotFound("hourly rate", e.JobTitle+" point "+strconv.Itoa(e.ScalePoint))
	}

	claim := Claim{
		Username:   username,
		Date:       time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		Hours:      hours,
		Rate:       rate,
		Total:      hours.Mul(rate),
		ScalePoint: e.ScalePoint,
	}
	if err := s.claims.Add(ctx, claim); err != nil {
		return Claim{}, err
	}
	slog.Info("pay claim submitted", "username", username, "hours", hours.String(), "total", claim.Total.StringFixed(2))
	return claim, nil
}
