package employee

import (
	"context"
	"strconv"

	"hrpay/internal/apperr"
	"hrpay/internal/platform/csvfile"
)

type CSVStore struct {
	file *csvfile.File
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{file: csvfile.New(path, Columns...)}
}

func (s *CSVStore) ListAll(ctx context.Context) ([]Employee, error) {
	rows, err := s.file.Read()
	if err != nil {
		return nil, err
	}
	out := make([]Employee, 0, len(rows))
	for i, row := range rows {
		e, err := fromRow(row)
		if err != nil {
			return nil, apperr.Storage("parse", s.file.Path, errRow(i, err))
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *CSVStore) FindByID(ctx context.Context, id int) (Employee, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return Employee{}, err
	}
	for _, e := range all {
		if e.ID == id {
			return e, nil
		}
	}
	return Employee{}, apperr.NotFound("employee", strconv.Itoa(id))
}

func (s *CSVStore) FindByUsername(ctx context.Context, username string) (Employee, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return Employee{}, err
	}
	for _, e := range all {
		if e.Username == username {
			return e, nil
		}
	}
	return Employee{}, apperr.NotFound("employee", username)
}

func (s *CSVStore) ReplaceAll(ctx context.Context, records []Employee) error {
	rows := make([][]string, 0, len(records))
	for _, e := range records {
		rows = append(rows, toRow(e))
	}
	return s.file.ReplaceAll(rows)
}
