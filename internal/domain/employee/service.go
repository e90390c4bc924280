package employee

import (
	"context"
	"log/slog"
	"strconv"

	"hrpay/internal/apperr"
	"hrpay/internal/domain/auth"
	"hrpay/internal/platform/validate"
)

type ScaleLookup interface {
	CanonicalTitle(title string) (string, bool)
	IsValidScalePoint(title string, point int) bool
}

type Credentials interface {
	Exists(ctx context.Context, username string) (bool, error)
	Register(ctx context.Context, username, password string, role auth.Role) error
	Unregister(ctx context.Context, username string) error
}

// NewEmployee is the admin input for creating an employee and its login.
type NewEmployee struct {
	ID          string `json:"id" validate:"employee_id"`
	Username    string `json:"username" validate:"required,max=64,username"`
	Password    string `json:"password" validate:"required,min=4,max=72"`
	Role        string `json:"role" validate:"required,oneof=Admin HR Employee"`
	Name        string `json:"name" validate:"required,max=120"`
	DateOfBirth string `json:"dateOfBirth" validate:"ddmmyyyy"`
	NationalID  string `json:"nationalId" validate:"min=7,max=8"`
	Kind        string `json:"employmentKind" validate:"required,oneof=Full-Time Part-Time"`
	JobTitle    string `json:"jobTitle" validate:"required"`
	ScalePoint  int    `json:"scalePoint" validate:"min=1"`
}

type Service struct {
	repo     *Repository
	statuses StatusStore
	scales   ScaleLookup
	creds    Credentials
}

func NewService(repo *Repository, statuses StatusStore, scales ScaleLookup, creds Credentials) *Service {
	return &Service{repo: repo, statuses: statuses, scales: scales, creds: creds}
}

func (s *Service) Get(ctx context.Context, id int) (Employee, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (Employee, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Kind(ctx context.Context, username string) (Kind, error) {
	return s.statuses.Kind(ctx, username)
}

// Create validates input, then writes the employee row, the login row and
// the status row. A failure after the employee row is written removes
// whatever was already written.
func (s *Service) Create(ctx context.Context, in NewEmployee) (Employee, error) {
	if role, err := auth.ParseRole(in.Role); err == nil {
		in.Role = string(role)
	}
	if kind, err := ParseKind(in.Kind); err == nil {
		in.Kind = string(kind)
	}
	if err := validate.Struct(in); err != nil {
		return Employee{}, err
	}
	title, ok := s.scales.CanonicalTitle(in.JobTitle)
	if !ok {
		return Employee{}, apperr.Validation("jobTitle", "unknown job title")
	}
	if !s.scales.IsValidScalePoint(title, in.ScalePoint) {
		return Employee{}, apperr.Validation("scalePoint", "not a valid scale point for "+title)
	}
	exists, err := s.creds.Exists(ctx, in.Username)
	if err != nil {
		return Employee{}, err
	}
	if exists {
		return Employee{}, apperr.Duplicate("username", in.Username)
	}

	id, _ := strconv.Atoi(in.ID)
	e := Employee{
		ID:          id,
		Username:    in.Username,
		Name:        in.Name,
		DateOfBirth: in.DateOfBirth,
		NationalID:  in.NationalID,
		JobTitle:    title,
		ScalePoint:  in.ScalePoint,
	}
	if err := s.repo.Insert(ctx, e); err != nil {
		return Employee{}, err
	}
	if err := s.creds.Register(ctx, in.Username, in.Password, auth.Role(in.Role)); err != nil {
		s.rollback(ctx, e.ID)
		return Employee{}, err
	}
	if err := s.statuses.Set(ctx, in.Username, Kind(in.Kind)); err != nil {
		slog.Warn("employment status write failed", "username", in.Username, "err", err)
		if uerr := s.creds.Unregister(ctx, in.Username); uerr != nil {
			slog.Warn("login rollback failed", "username", in.Username, "err", uerr)
		}
		s.rollback(ctx, e.ID)
		return Employee{}, err
	}
	return e, nil
}

func (s *Service) rollback(ctx context.Context, id int) {
	err := s.repo.Update(ctx, func(records []Employee) ([]Employee, error) {
		out := records[:0]
		for _, r := range records {
			if r.ID != id {
				out = append(out, r)
			}
		}
		return out, nil
	})
	if err != nil {
		slog.Warn("employee create rollback failed", "id", id, "err", err)
	}
}
