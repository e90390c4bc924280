package payroll

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"hrpay/internal/apperr"
	"hrpay/internal/platform/csvfile"
)

// ClaimStore is the pay-claim log. Add enforces one claim per username
// per calendar month.
type ClaimStore struct {
	file *csvfile.File
	mu   sync.Mutex
}

func NewClaimStore(path string) *ClaimStore {
	return &ClaimStore{file: csvfile.New(path, ClaimColumns...)}
}

func (s *ClaimStore) List(ctx context.Context) ([]Claim, error) {
	rows, err := s.file.Read()
	if err != nil {
		return nil, err
	}
	out := make([]Claim, 0, len(rows))
	for _, row := range rows {
		c, err := parseClaim(csvfile.Pad(row, len(ClaimColumns)))
		if err != nil {
			return nil, apperr.Storage("parse", s.file.Path, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// Latest returns the most recent claim of username by claim date.
func (s *ClaimStore) Latest(ctx context.Context, username string) (Claim, error) {
	all, err := s.List(ctx)
	if err != nil {
		return Claim{}, err
	}
	var latest Claim
	found := false
	for _, c := range all {
		if c.Username != username {
			continue
		}
		if !found || c.Date.After(latest.Date) {
			latest = c
			found = true
		}
	}
	if !found {
		return Claim{}, apperr.NotFound("pay claim", username)
	}
	return latest, nil
}

func (s *ClaimStore) HasClaimIn(ctx context.Context, username string, period Period) (bool, error) {
	all, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	for _, c := range all {
		if c.Username == username && period.Contains(c.Date) {
			return true, nil
		}
	}
	return false, nil
}

func (s *ClaimStore) Add(ctx context.Context, c Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	period := PeriodOf(c.Date)
	exists, err := s.HasClaimIn(ctx, c.Username, period)
	if err != nil {
		return err
	}
	if exists {
		return apperr.Duplicate("pay claim", c.Username+" "+period.String())
	}
	return s.file.Append(claimRow(c))
}

func claimRow(c Claim) []string {
	return []string{
		c.Username,
		c.Date.Format(claimDateLayout),
		c.Hours.String(),
		c.Rate.StringFixed(2),
		c.Total.StringFixed(2),
		strconv.Itoa(c.ScalePoint),
	}
}

func parseClaim(row []string) (Claim, error) {
	date, err := time.Parse(claimDateLayout, row[1])
	if err != nil {
		return Claim{}, err
	}
	c := Claim{Username: row[0], Date: date}
	if c.Hours, err = decimal.NewFromString(row[2]); err != nil {
		return Claim{}, err
	}
	if c.Rate, err = decimal.NewFromString(row[3]); err != nil {
		return Claim{}, err
	}
	if c.Total, err = decimal.NewFromString(row[4]); err != nil {
		return Claim{}, err
	}
	if row[5] != "" {
		if c.ScalePoint, err = strconv.Atoi(row[5]); err != nil {
			return Claim{}, err
		}
	}
	return c, nil
}
