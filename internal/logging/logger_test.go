package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"greenlight/internal/logging"
	"greenlight/internal/services"
)

func TestNewJSONLoggerEmitsFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("gate evaluated", logging.Args(
		logging.String(logging.FieldGate, "truth"),
		logging.Float64("measured", 92.5),
	)...)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if record[logging.FieldGate] != "truth" {
		t.Fatalf("expected gate field, got %v", record)
	}
	if record["measured"] != 92.5 {
		t.Fatalf("expected measured field, got %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := services.WithBriefID(context.Background(), "brief-7")
	ctx = services.WithGate(ctx, "safety")
	logging.WithContext(ctx, logger).Info("checking")

	out := buf.String()
	if !strings.Contains(out, "brief_id=brief-7") || !strings.Contains(out, "gate=safety") {
		t.Fatalf("expected context fields in output, got %q", out)
	}
}

func TestNopLoggerSilently(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("should vanish")
	logging.NewComponentLogger(nil, "orchestrator").Info("also silent")
}
