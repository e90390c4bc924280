package employee

import (
	"context"
	"sync"

	"hrpay/internal/apperr"
	"hrpay/internal/platform/csvfile"
)

var StatusColumns = []string{"username", "employmentKind"}

type CSVStatusStore struct {
	file *csvfile.File
	mu   sync.Mutex
}

func NewCSVStatusStore(path string) *CSVStatusStore {
	return &CSVStatusStore{file: csvfile.New(path, StatusColumns...)}
}

// All returns every known status. Rows with an unrecognised kind are left
// out, so those employees have no payslip path.
func (s *CSVStatusStore) All(ctx context.Context) (map[string]Kind, error) {
	rows, err := s.file.Read()
	if err != nil {
		return nil, err
	}
	out := make(map[string]Kind, len(rows))
	for _, row := range rows {
		row = csvfile.Pad(row, len(StatusColumns))
		kind, err := ParseKind(row[1])
		if err != nil {
			continue
		}
		out[row[0]] = kind
	}
	return out, nil
}

func (s *CSVStatusStore) Kind(ctx context.Context, username string) (Kind, error) {
	all, err := s.All(ctx)
	if err != nil {
		return "", err
	}
	kind, ok := all[username]
	if !ok {
		return "", apperr.NotFound("employment status", username)
	}
	return kind, nil
}

func (s *CSVStatusStore) Set(ctx context.Context, username string, kind Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.file.Read()
	if err != nil {
		return err
	}
	replaced := false
	for i, row := range rows {
		if len(row) > 0 && row[0] == username {
			rows[i] = []string{username, string(kind)}
			replaced = true
		}
	}
	if !replaced {
		rows = append(rows, []string{username, string(kind)})
	}
	return s.file.ReplaceAll(rows)
}
