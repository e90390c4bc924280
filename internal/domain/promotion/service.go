package promotion

import (
	"context"
	"log/slog"
	"strconv"

	"hrpay/internal/apperr"
	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/employee"
)

type ScaleLookup interface {
	CanonicalTitle(title string) (string, bool)
	IsValidScalePoint(title string, point int) bool
}

// Service is the promotion state machine. A proposal is applied to the
// current position straight away; only the previous position is kept so a
// reject can revert it.
type Service struct {
	repo   *employee.Repository
	scales ScaleLookup
	audit  audit.Recorder
}

func NewService(repo *employee.Repository, scales ScaleLookup, recorder audit.Recorder) *Service {
	if recorder == nil {
		recorder = audit.Nop{}
	}
	return &Service{repo: repo, scales: scales, audit: recorder}
}

// Propose moves employee id onto (title, point) pending acknowledgement.
// Proposing again while pending snapshots the already-proposed position,
// so the original one is lost.
func (s *Service) Propose(ctx context.Context, id int, title string, point int) (Result, error) {
	canonical, ok := s.scales.CanonicalTitle(title)
	if !ok {
		return Result{}, apperr.Validation("jobTitle", "unknown job title "+strconv.Quote(title))
	}
	if !s.scales.IsValidScalePoint(canonical, point) {
		return Result{}, apperr.Validation("scalePoint", "not a valid scale point for "+canonical)
	}

	var before employee.Employee
	after, err := s.repo.MutateByID(ctx, id, func(e *employee.Employee) error {
		before = *e
		e.PreviousJobTitle = e.JobTitle
		e.PreviousScalePoint = e.ScalePoint
		e.JobTitle = canonical
		e.ScalePoint = point
		e.PendingPromotion = true
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	if before.PendingPromotion {
		slog.Warn("promotion re-proposed while pending", "employee_id", id, "discarded_previous", before.PreviousJobTitle)
	}
	s.record(ctx, actionPropose, before, after)
	return Result{Outcome: OutcomeProposed, Employee: after}, nil
}

// Confirm accepts the pending promotion of username.
func (s *Service) Confirm(ctx context.Context, username string) (Result, error) {
	var before employee.Employee
	pending := false
	after, err := s.repo.MutateByUsername(ctx, username, func(e *employee.Employee) error {
		if !e.PendingPromotion {
			return employee.ErrNoChange
		}
		pending = true
		before = *e
		clearPending(e)
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	if !pending {
		return Result{Outcome: OutcomeNothingToConfirm, Employee: after}, nil
	}
	s.record(ctx, actionConfirm, before, after)
	return Result{Outcome: OutcomeConfirmed, Employee: after}, nil
}

// Reject reverts username to the position held before the pending
// promotion and returns that position.
func (s *Service) Reject(ctx context.Context, username string) (Result, error) {
	var before employee.Employee
	pending := false
	after, err := s.repo.MutateByUsername(ctx, username, func(e *employee.Employee) error {
		if !e.PendingPromotion {
			return employee.ErrNoChange
		}
		pending = true
		before = *e
		prev := e.PreviousPosition()
		e.JobTitle = prev.JobTitle
		e.ScalePoint = prev.ScalePoint
		clearPending(e)
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	if !pending {
		return Result{Outcome: OutcomeNothingToReject, Employee: after}, nil
	}
	s.record(ctx, actionReject, before, after)
	restored := after.Position()
	return Result{Outcome: OutcomeRejected, Employee: after, Restored: &restored}, nil
}

func clearPending(e *employee.Employee) {
	e.PendingPromotion = false
	e.PreviousJobTitle = ""
	e.PreviousScalePoint = 0
}

func (s *Service) record(ctx context.Context, action string, before, after employee.Employee) {
	if err := s.audit.Record(ctx, action, "employee", strconv.Itoa(after.ID), before, after); err != nil {
		slog.Warn("audit record failed", "action", action, "employee_id", after.ID, "err", err)
	}
}
