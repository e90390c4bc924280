package csvfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadMissingFileIsEmpty(t *testing.T) {
	f := New(filepath.Join(t.TempDir(), "missing.csv"), "id", "name")
	rows, err := f.Read()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty table, got %d rows", len(rows))
	}
}

func TestReplaceAllThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "people.csv")
	f := New(path, "id", "name")
	if err := f.ReplaceAll([][]string{{"1", "Ann"}, {"2", "Bob"}}); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if err := f.ReplaceAll([][]string{{"3", "Cat"}}); err != nil {
		t.Fatalf("second replace failed: %v", err)
	}
	rows, err := f.Read()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(rows) != 1 || rows[0][1] != "Cat" {
		t.Fatalf("expected only Cat, got %v", rows)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp files to be cleaned up, got %d entries", len(entries))
	}
}

func TestReplaceAllFailureKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "people.csv")
	f := New(path, "id")
	if err := f.ReplaceAll([][]string{{"1"}}); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	// A directory in place of the target makes the rename fail.
	blocked := New(filepath.Join(dir, "sub"), "id")
	if err := os.Mkdir(blocked.Path, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(blocked.Path, "keep"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := blocked.ReplaceAll([][]string{{"2"}}); err == nil {
		t.Fatalf("expected rename over non-empty directory to fail")
	}
	rows, err := f.Read()
	if err != nil || len(rows) != 1 || rows[0][0] != "1" {
		t.Fatalf("expected original rows intact, got %v (%v)", rows, err)
	}
}

func TestAppendWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slips.csv")
	f := New(path, "id", "net")
	if err := f.Append([]string{"1", "10.00"}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := f.Append([]string{"2", "20.00"}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(raw) != "id,net\n1,10.00\n2,20.00\n" {
		t.Fatalf("unexpected file contents %q", raw)
	}
}

func TestReadSkipsHeaderAndBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	if err := os.WriteFile(path, []byte("ID, Name\n1, Ann\n\n2,Bob,extra\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	rows, err := New(path, "id", "name").Read()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(rows) != 2 || rows[0][1] != "Ann" || len(rows[1]) != 3 {
		t.Fatalf("unexpected rows %v", rows)
	}
}

func TestPad(t *testing.T) {
	row := Pad([]string{"a"}, 3)
	if len(row) != 3 || row[0] != "a" || row[2] != "" {
		t.Fatalf("unexpected padded row %v", row)
	}
}
