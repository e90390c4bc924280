package audit

import (
	"context"
	"path/filepath"
	"testing"

	"hrpay/internal/requestctx"
)

func TestRecordAndList(t *testing.T) {
	svc := New(filepath.Join(t.TempDir(), "audit", "audit.jsonl"))
	ctx := requestctx.WithActor(context.Background(), "hr1")

	if err := svc.Record(ctx, "promotion.propose", "employee", "10001", map[string]int{"scalePoint": 1}, map[string]int{"scalePoint": 2}); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := svc.Record(ctx, "promotion.confirm", "employee", "10001", nil, nil); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	events, err := svc.List(context.Background(), Filter{EntityID: "10001"}, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Action != "promotion.confirm" || events[0].Actor != "hr1" {
		t.Fatalf("expected newest first with actor, got %+v", events[0])
	}
	if string(events[1].After) != `{"scalePoint":2}` {
		t.Fatalf("unexpected after snapshot %s", events[1].After)
	}

	filtered, _ := svc.List(context.Background(), Filter{Action: "promotion.propose"}, 1)
	if len(filtered) != 1 {
		t.Fatalf("expected 1 event, got %d", len(filtered))
	}
}

func TestListMissingFile(t *testing.T) {
	svc := New(filepath.Join(t.TempDir(), "none.jsonl"))
	events, err := svc.List(context.Background(), Filter{}, 0)
	if err != nil || events != nil {
		t.Fatalf("expected empty list, got %v %v", events, err)
	}
}
