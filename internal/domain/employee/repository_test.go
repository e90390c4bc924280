package employee

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"hrpay/internal/apperr"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	store := NewCSVStore(filepath.Join(t.TempDir(), "EmployeeInfo.csv"))
	if err := store.ReplaceAll(context.Background(), sampleEmployees()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return NewRepository(store)
}

func TestMutateByIDPersists(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	updated, err := repo.MutateByID(ctx, 10001, func(e *Employee) error {
		e.ScalePoint = 3
		return nil
	})
	if err != nil {
		t.Fatalf("mutate failed: %v", err)
	}
	if updated.ScalePoint != 3 {
		t.Fatalf("expected returned record to carry the change, got %+v", updated)
	}
	stored, _ := repo.FindByID(ctx, 10001)
	if stored.ScalePoint != 3 {
		t.Fatalf("expected change persisted, got %+v", stored)
	}
}

func TestMutateFailureWritesNothing(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	boom := errors.New("boom")
	_, err := repo.MutateByUsername(ctx, "adoyle", func(e *Employee) error {
		e.JobTitle = "Dean"
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	stored, _ := repo.FindByUsername(ctx, "adoyle")
	if stored.JobTitle != "Clerk" {
		t.Fatalf("expected record unchanged, got %+v", stored)
	}
}

func TestMutateNoChange(t *testing.T) {
	repo := newTestRepository(t)
	got, err := repo.MutateByID(context.Background(), 10002, func(e *Employee) error {
		return ErrNoChange
	})
	if err != nil {
		t.Fatalf("expected no error for ErrNoChange, got %v", err)
	}
	if got.ID != 10002 {
		t.Fatalf("expected current record back, got %+v", got)
	}
}

func TestMutateUnknown(t *testing.T) {
	repo := newTestRepository(t)
	if _, err := repo.MutateByID(context.Background(), 55555, func(*Employee) error { return nil }); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestInsertRejectsDuplicates(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	if err := repo.Insert(ctx, Employee{ID: 10001, Username: "new"}); !apperr.IsDuplicate(err) {
		t.Fatalf("expected duplicate id, got %v", err)
	}
	if err := repo.Insert(ctx, Employee{ID: 20000, Username: "adoyle"}); !apperr.IsDuplicate(err) {
		t.Fatalf("expected duplicate username, got %v", err)
	}
	if err := repo.Insert(ctx, Employee{ID: 20000, Username: "new"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	all, _ := repo.ListAll(ctx)
	if len(all) != 3 || all[2].Username != "new" {
		t.Fatalf("expected appended record, got %+v", all)
	}
}
