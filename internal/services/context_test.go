package services_test

import (
	"context"
	"testing"

	"greenlight/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithBriefID(ctx, "brief-42")
	ctx = services.WithGate(ctx, "truth")
	ctx = services.WithRequestID(ctx, "req-123")

	if id, ok := services.BriefIDFromContext(ctx); !ok || id != "brief-42" {
		t.Fatalf("unexpected brief id: %v %v", id, ok)
	}
	if gate, ok := services.GateFromContext(ctx); !ok || gate != "truth" {
		t.Fatalf("unexpected gate: %v %v", gate, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithGate(ctx, "")
	ctx = services.WithBriefID(ctx, "")
	if _, ok := services.GateFromContext(ctx); ok {
		t.Fatal("expected no gate value")
	}
	if _, ok := services.BriefIDFromContext(ctx); ok {
		t.Fatal("expected no brief id value")
	}
}
