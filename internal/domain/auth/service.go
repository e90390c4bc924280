package auth

import (
	"context"
	"log/slog"

	"hrpay/internal/apperr"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

// Authenticate matches the stored (username, password, role) triple.
func (s *Service) Authenticate(ctx context.Context, username, password string, role Role) (Identity, error) {
	cred, err := s.store.Find(ctx, username)
	if apperr.IsNotFound(err) {
		return Identity{}, ErrInvalidCredentials
	}
	if err != nil {
		return Identity{}, err
	}
	if !CheckPassword(cred.Password, password) || cred.Role != role {
		slog.Warn("login rejected", "username", username, "role", role)
		return Identity{}, ErrInvalidCredentials
	}
	return Identity{Username: cred.Username, Role: cred.Role}, nil
}

// Register stores a new login with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, username, password string, role Role) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	return s.store.Add(ctx, Credential{Username: username, Password: hash, Role: role})
}

// Unregister removes the login of username.
func (s *Service) Unregister(ctx context.Context, username string) error {
	return s.store.Remove(ctx, username)
}

func (s *Service) Exists(ctx context.Context, username string) (bool, error) {
	_, err := s.store.Find(ctx, username)
	if apperr.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
