package auth

import (
	"context"
	"sync"

	"hrpay/internal/apperr"
	"hrpay/internal/platform/csvfile"
)

var Columns = []string{"username", "password", "role"}

type StoreAPI interface {
	Find(ctx context.Context, username string) (Credential, error)
	Add(ctx context.Context, cred Credential) error
	Remove(ctx context.Context, username string) error
}

// CSVStore keeps (username, password, role) triples in a flat file.
type CSVStore struct {
	file *csvfile.File
	mu   sync.Mutex
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{file: csvfile.New(path, Columns...)}
}

func (s *CSVStore) Find(ctx context.Context, username string) (Credential, error) {
	rows, err := s.file.Read()
	if err != nil {
		return Credential{}, err
	}
	for _, row := range rows {
		row = csvfile.Pad(row, len(Columns))
		if row[0] != username {
			continue
		}
		role, err := ParseRole(row[2])
		if err != nil {
			return Credential{}, apperr.Storage("parse", s.file.Path, err)
		}
		return Credential{Username: row[0], Password: row[1], Role: role}, nil
	}
	return Credential{}, apperr.NotFound("login", username)
}

func (s *CSVStore) Add(ctx context.Context, cred Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.file.Read()
	if err != nil {
		return err
	}
	for _, row := range rows {
		if len(row) > 0 && row[0] == cred.Username {
			return apperr.Duplicate("username", cred.Username)
		}
	}
	return s.file.Append([]string{cred.Username, cred.Password, string(cred.Role)})
}

// Remove deletes the login of username. A missing login is not an error.
func (s *CSVStore) Remove(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.file.Read()
	if err != nil {
		return err
	}
	kept := rows[:0]
	for _, row := range rows {
		if len(row) > 0 && row[0] == username {
			continue
		}
		kept = append(kept, row)
	}
	if len(kept) == len(rows) {
		return nil
	}
	return s.file.ReplaceAll(kept)
}
