package progression

import (
	"context"
	"log/slog"

	"hrpay/internal/domain/employee"
)

type ScaleLookup interface {
	MaxScalePoint(title string) (int, error)
}

type Skipped struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	JobTitle string `json:"jobTitle"`
}

type Summary struct {
	Advanced int       `json:"advanced"`
	AtTop    int       `json:"atTop"`
	Skipped  []Skipped `json:"skipped"`
}

// Engine moves every employee one scale point up their ladder, or counts
// another year at the top when they are already there.
type Engine struct {
	repo   *employee.Repository
	scales ScaleLookup
}

func NewEngine(repo *employee.Repository, scales ScaleLookup) *Engine {
	return &Engine{repo: repo, scales: scales}
}

// Run applies one progression cycle and persists it with a single
// ReplaceAll. Employees whose title is not on the scale table are skipped
// and reported. Pending promotions are left alone.
func (e *Engine) Run(ctx context.Context) (Summary, error) {
	var summary Summary
	err := e.repo.Update(ctx, func(records []employee.Employee) ([]employee.Employee, error) {
		summary = Summary{}
		for i := range records {
			rec := &records[i]
			max, err := e.scales.MaxScalePoint(rec.JobTitle)
			if err != nil {
				summary.Skipped = append(summary.Skipped, Skipped{ID: rec.ID, Username: rec.Username, JobTitle: rec.JobTitle})
				continue
			}
			if rec.ScalePoint < max {
				rec.ScalePoint++
				rec.YearsAtTopOfScale = 0
				summary.Advanced++
				continue
			}
			rec.YearsAtTopOfScale++
			summary.AtTop++
		}
		if summary.Advanced == 0 && summary.AtTop == 0 {
			return nil, employee.ErrNoChange
		}
		return records, nil
	})
	if err != nil {
		return Summary{}, err
	}
	for _, s := range summary.Skipped {
		slog.Warn("progression skipped employee", "employee_id", s.ID, "job_title", s.JobTitle)
	}
	slog.Info("annual progression applied", "advanced", summary.Advanced, "at_top", summary.AtTop, "skipped", len(summary.Skipped))
	return summary, nil
}
