package employee

import "context"

// StoreAPI is durable, key-addressable storage of employee records.
// ReplaceAll is the only mutation and must be atomic.
type StoreAPI interface {
	FindByID(ctx context.Context, id int) (Employee, error)
	FindByUsername(ctx context.Context, username string) (Employee, error)
	ListAll(ctx context.Context) ([]Employee, error)
	ReplaceAll(ctx context.Context, records []Employee) error
}

// StatusStore holds the employment kind of each username.
type StatusStore interface {
	Kind(ctx context.Context, username string) (Kind, error)
	All(ctx context.Context) (map[string]Kind, error)
	Set(ctx context.Context, username string, kind Kind) error
}
