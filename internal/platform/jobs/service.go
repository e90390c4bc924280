package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

const (
	JobPayslipGeneration = "payslip_generation"
	JobProgression       = "annual_progression"

	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

type RunFunc func(context.Context) (any, error)

// Run is one recorded job execution.
type Run struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Details     any        `json:"details,omitempty"`
	Error       string     `json:"error,omitempty"`
}

type job struct {
	Type string
	Run  RunFunc
}

// Service runs jobs on a single worker, keeps a bounded history of runs,
// and fires cron schedules into the same queue.
type Service struct {
	queue   chan job
	cron    *cron.Cron
	limit   int
	mu      sync.Mutex
	history []Run
	now     func() time.Time
}

func New(historyLimit int) *Service {
	if historyLimit <= 0 {
		historyLimit = 100
	}
	return &Service{
		queue: make(chan job, 128),
		cron:  cron.New(),
		limit: historyLimit,
		now:   time.Now,
	}
}

// Start runs the worker and the cron scheduler until ctx is done.
func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	s.cron.Start()
	go func() {
		<-ctx.Done()
		<-s.cron.Stop().Done()
	}()
}

// Schedule enqueues run on every tick of a standard five-field cron spec.
func (s *Service) Schedule(spec, jobType string, run RunFunc) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.Enqueue(jobType, run)
	})
	return err
}

func (s *Service) Enqueue(jobType string, run RunFunc) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run RunFunc) (any, error) {
	_, details, err := s.runJob(ctx, job{Type: jobType, Run: run})
	return details, err
}

// History returns the most recent runs, newest first.
func (s *Service) History(limit int) []Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.history)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]Run, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.history[i])
	}
	return out
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (string, any, error) {
	id := uuid.NewString()
	s.record(Run{ID: id, Type: j.Type, Status: StatusRunning, StartedAt: s.now()})

	details, err := j.Run(ctx)
	s.finish(id, details, err)
	return id, details, err
}

func (s *Service) record(r Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, r)
	if len(s.history) > s.limit {
		s.history = append([]Run(nil), s.history[len(s.history)-s.limit:]...)
	}
}

func (s *Service) finish(id string, details any, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.history) - 1; i >= 0; i-- {
		if s.history[i].ID != id {
			continue
		}
		done := s.now()
		s.history[i].CompletedAt = &done
		s.history[i].Details = details
		s.history[i].Status = StatusCompleted
		if err != nil {
			s.history[i].Status = StatusFailed
			s.history[i].Error = err.Error()
		}
		return
	}
}
