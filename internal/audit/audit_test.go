package audit_test

import (
	"context"
	"testing"

	"greenlight/internal/audit"
	"greenlight/internal/testsupport"
)

func TestRecordAssignsMonotonicSeq(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenAudit(t, cfg)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := store.Record(ctx, audit.Event{
			ProductionID: 7,
			BriefID:      "brief-audit-1",
			Kind:         audit.KindTransition,
			Actor:        "pipeline",
			PayloadJSON:  `{"to":"qa"}`,
		})
		if err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}
	// A second production keeps its own sequence.
	if err := store.Record(ctx, audit.Event{ProductionID: 8, BriefID: "brief-audit-2", Kind: audit.KindGateRun}); err != nil {
		t.Fatalf("record other production: %v", err)
	}

	events, err := store.History(ctx, 7)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("len(events) = %d, want 3", len(events))
	}
	for i, event := range events {
		wantSeq := int64(3 - i)
		if event.Seq != wantSeq {
			t.Fatalf("events[%d].Seq = %d, want %d (newest first)", i, event.Seq, wantSeq)
		}
		if event.ID == "" {
			t.Fatal("event id should be assigned")
		}
		if event.CreatedAt.IsZero() {
			t.Fatal("created_at should be assigned")
		}
	}

	other, err := store.History(ctx, 8)
	if err != nil {
		t.Fatalf("history other: %v", err)
	}
	if len(other) != 1 || other[0].Seq != 1 {
		t.Fatalf("other production events = %+v", other)
	}
}

func TestRecordValidation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenAudit(t, cfg)
	ctx := context.Background()

	if err := store.Record(ctx, audit.Event{Kind: audit.KindGateRun}); err == nil {
		t.Fatal("expected error without production id")
	}
	if err := store.Record(ctx, audit.Event{ProductionID: 1}); err == nil {
		t.Fatal("expected error without kind")
	}
}

func TestDecodePayload(t *testing.T) {
	event := audit.Event{PayloadJSON: `{"from":"qa","to":"qa_failed"}`}
	var payload struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	if err := event.DecodePayload(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.From != "qa" || payload.To != "qa_failed" {
		t.Fatalf("payload = %+v", payload)
	}

	empty := audit.Event{}
	if err := empty.DecodePayload(&payload); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestHistoryEmpty(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenAudit(t, cfg)

	events, err := store.History(context.Background(), 99)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
}
