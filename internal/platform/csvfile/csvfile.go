package csvfile

import (
	"encoding/csv"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"hrpay/internal/apperr"
)

// File is a flat CSV table with a header row. Rows returned by Read never
// include the header.
type File struct {
	Path   string
	Header []string
}

func New(path string, header ...string) *File {
	return &File{Path: path, Header: header}
}

// Read returns every data row. A missing file reads as an empty table.
func (f *File) Read() ([][]string, error) {
	file, err := os.Open(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage("open", f.Path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperr.Storage("read", f.Path, err)
	}

	out := make([][]string, 0, len(records))
	for i, record := range records {
		if i == 0 && f.isHeader(record) {
			continue
		}
		if blank(record) {
			continue
		}
		for j := range record {
			record[j] = strings.TrimSpace(record[j])
		}
		out = append(out, record)
	}
	return out, nil
}

// ReplaceAll rewrites the whole table. Rows go to a temp file in the same
// directory which is synced and renamed over the original, so readers see
// either the old table or the new one.
func (f *File) ReplaceAll(rows [][]string) error {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperr.Storage("mkdir", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return apperr.Storage("create temp", f.Path, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	writer := csv.NewWriter(tmp)
	if len(f.Header) > 0 {
		if err := writer.Write(f.Header); err != nil {
			return apperr.Storage("write", tmpPath, err)
		}
	}
	if err := writer.WriteAll(rows); err != nil {
		return apperr.Storage("write", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		return apperr.Storage("sync", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return apperr.Storage("close", tmpPath, err)
	}
	if err := os.Rename(tmpPath, f.Path); err != nil {
		return apperr.Storage("rename", f.Path, err)
	}
	committed = true
	return nil
}

// Append adds rows at the end of the table, writing the header first when
// the file is new or empty.
func (f *File) Append(rows ...[]string) error {
	if len(rows) == 0 {
		return nil
	}
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperr.Storage("mkdir", dir, err)
	}
	file, err := os.OpenFile(f.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return apperr.Storage("open", f.Path, err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return apperr.Storage("stat", f.Path, err)
	}

	writer := csv.NewWriter(file)
	if info.Size() == 0 && len(f.Header) > 0 {
		if err := writer.Write(f.Header); err != nil {
			_ = file.Close()
			return apperr.Storage("write", f.Path, err)
		}
	}
	if err := writer.WriteAll(rows); err != nil {
		_ = file.Close()
		return apperr.Storage("write", f.Path, err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return apperr.Storage("sync", f.Path, err)
	}
	return apperr.Storage("close", f.Path, file.Close())
}

func (f *File) isHeader(record []string) bool {
	if len(f.Header) == 0 || len(record) == 0 {
		return false
	}
	return headerKey(record[0]) == headerKey(f.Header[0])
}

func headerKey(name string) string {
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(name)))
}

func blank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// Pad returns row extended to width with empty fields.
func Pad(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}
