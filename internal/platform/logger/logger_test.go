package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	InitWriter("production", &buf)
	From(With(context.Background(), "requestId", "r-1")).Info("payslips generated", "written", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q", buf.String())
	}
	if entry["requestId"] != "r-1" {
		t.Fatalf("expected requestId field, got %v", entry)
	}
}

func TestDevelopmentWritesText(t *testing.T) {
	var buf bytes.Buffer
	InitWriter("development", &buf)
	L().Debug("calendar advanced", "date", "2024-10-01")
	if !strings.Contains(buf.String(), "date=2024-10-01") {
		t.Fatalf("expected text log line, got %q", buf.String())
	}
}
