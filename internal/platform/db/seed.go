package db

import (
	"context"
	"log/slog"
	"strings"

	"hrpay/internal/domain/auth"
)

type CredentialRegistry interface {
	Exists(ctx context.Context, username string) (bool, error)
	Register(ctx context.Context, username, password string, role auth.Role) error
}

// Seed makes sure the bootstrap admin login exists. Nothing is written
// when no password is configured or the login is already there.
func Seed(ctx context.Context, creds CredentialRegistry, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil
	}
	exists, err := creds.Exists(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := creds.Register(ctx, username, password, auth.RoleAdmin); err != nil {
		return err
	}
	slog.Info("seeded admin login", "username", username)
	return nil
}
