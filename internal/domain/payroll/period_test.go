package payroll

import (
	"testing"
	"time"

	"hrpay/internal/apperr"
)

func TestParsePeriod(t *testing.T) {
	for _, raw := range []string{"03/2025", "3/2025", " 3/2025 "} {
		p, err := ParsePeriod(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if p.String() != "03/2025" {
			t.Fatalf("expected 03/2025, got %s", p)
		}
	}
	for _, raw := range []string{"", "13/2025", "0/2025", "03-2025", "03/25"} {
		if _, err := ParsePeriod(raw); !apperr.IsValidation(err) {
			t.Fatalf("expected validation error for %q, got %v", raw, err)
		}
	}
}

func TestSecondFriday(t *testing.T) {
	cases := []struct {
		in   time.Time
		want int
	}{
		// 1 Nov 2024 is a Friday.
		{time.Date(2024, time.November, 20, 0, 0, 0, 0, time.UTC), 8},
		// 1 Oct 2024 is a Tuesday.
		{time.Date(2024, time.October, 3, 0, 0, 0, 0, time.UTC), 11},
		// 1 Mar 2025 is a Saturday.
		{time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), 14},
	}
	for _, tc := range cases {
		got := SecondFriday(tc.in)
		if got.Weekday() != time.Friday || got.Day() != tc.want || got.Month() != tc.in.Month() {
			t.Fatalf("second friday of %s: expected day %d, got %s", tc.in.Format("2006-01"), tc.want, got.Format("2006-01-02"))
		}
	}
}
