package payroll

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"hrpay/internal/apperr"
)

// Period is a payslip month, written as MM/YYYY.
type Period struct {
	Year  int
	Month time.Month
}

func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod accepts MM/YYYY and M/YYYY.
func ParsePeriod(raw string) (Period, error) {
	month, year, ok := strings.Cut(strings.TrimSpace(raw), "/")
	if !ok {
		return Period{}, apperr.Validation("period", "must be MM/YYYY")
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return Period{}, apperr.Validation("period", "month must be 1-12")
	}
	y, err := strconv.Atoi(year)
	if err != nil || len(year) != 4 {
		return Period{}, apperr.Validation("period", "year must have four digits")
	}
	return Period{Year: y, Month: time.Month(m)}, nil
}

func (p Period) String() string {
	return fmt.Sprintf("%02d/%04d", int(p.Month), p.Year)
}

func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && t.Month() == p.Month
}

// SecondFriday is the last day of the month on which a pay claim is
// accepted.
func SecondFriday(t time.Time) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	offset := (int(time.Friday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+7)
}
