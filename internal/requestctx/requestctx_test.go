package requestctx

import (
	"context"
	"testing"
)

func TestValuesRoundTrip(t *testing.T) {
	ctx := WithActor(WithRequestID(context.Background(), "req-1"), "hr1")
	if got := GetRequestID(ctx); got != "req-1" {
		t.Fatalf("expected req-1, got %q", got)
	}
	if got := GetActor(ctx); got != "hr1" {
		t.Fatalf("expected hr1, got %q", got)
	}
	if GetActor(context.Background()) != "" {
		t.Fatal("expected empty actor on bare context")
	}
}
