package employee

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"hrpay/internal/apperr"
)

// Repository serializes read-modify-write cycles over a StoreAPI. Every
// writer goes through it so no update is lost between ListAll and
// ReplaceAll.
type Repository struct {
	store StoreAPI
	mu    sync.Mutex
}

func NewRepository(store StoreAPI) *Repository {
	return &Repository{store: store}
}

func (r *Repository) FindByID(ctx context.Context, id int) (Employee, error) {
	return r.store.FindByID(ctx, id)
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (Employee, error) {
	return r.store.FindByUsername(ctx, username)
}

func (r *Repository) ListAll(ctx context.Context) ([]Employee, error) {
	return r.store.ListAll(ctx)
}

func (r *Repository) ReplaceAll(ctx context.Context, records []Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.ReplaceAll(ctx, records)
}

// Update loads every record, lets fn edit the slice in place and writes the
// result back with a single ReplaceAll. Nothing is written when fn fails;
// ErrNoChange skips the write without reporting an error.
func (r *Repository) Update(ctx context.Context, fn func(records []Employee) ([]Employee, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.store.ListAll(ctx)
	if err != nil {
		return err
	}
	updated, err := fn(records)
	if errors.Is(err, ErrNoChange) {
		return nil
	}
	if err != nil {
		return err
	}
	return r.store.ReplaceAll(ctx, updated)
}

// mutate applies fn to the record matched by match and persists the
// collection. It returns the record as stored afterwards.
func (r *Repository) mutate(ctx context.Context, key string, match func(Employee) bool, fn func(*Employee) error) (Employee, error) {
	var result Employee
	err := r.Update(ctx, func(records []Employee) ([]Employee, error) {
		for i := range records {
			if !match(records[i]) {
				continue
			}
			target := records[i]
			if err := fn(&target); err != nil {
				result = records[i]
				return nil, err
			}
			records[i] = target
			result = target
			return records, nil
		}
		return nil, apperr.NotFound("employee", key)
	})
	return result, err
}

func (r *Repository) MutateByID(ctx context.Context, id int, fn func(*Employee) error) (Employee, error) {
	return r.mutate(ctx, strconv.Itoa(id), func(e Employee) bool { return e.ID == id }, fn)
}

func (r *Repository) MutateByUsername(ctx context.Context, username string, fn func(*Employee) error) (Employee, error) {
	return r.mutate(ctx, username, func(e Employee) bool { return e.Username == username }, fn)
}

// Insert appends a new record, rejecting a duplicate id or username.
func (r *Repository) Insert(ctx context.Context, e Employee) error {
	return r.Update(ctx, func(records []Employee) ([]Employee, error) {
		for _, existing := range records {
			if existing.ID == e.ID {
				return nil, apperr.Duplicate("employee id", strconv.Itoa(e.ID))
			}
			if existing.Username == e.Username {
				return nil, apperr.Duplicate("username", e.Username)
			}
		}
		return append(records, e), nil
	})
}
