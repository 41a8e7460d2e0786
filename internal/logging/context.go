package logging

import (
	"context"
	"log/slog"

	"greenlight/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldBriefID is the standardized structured logging key for production brief identifiers.
	FieldBriefID = "brief_id"
	// FieldGate is the standardized structured logging key for gate identifiers.
	FieldGate = "gate"
	// FieldVerdict is the standardized structured logging key for gate verdicts.
	FieldVerdict = "verdict"
	// FieldStatus is the standardized structured logging key for lifecycle statuses.
	FieldStatus = "status"
	// FieldEventType is the standardized structured logging key for event categories.
	FieldEventType = "event_type"
	// FieldErrorHint is the standardized structured logging key for operator guidance.
	FieldErrorHint = "error_hint"
	// FieldCorrelationID is the standardized structured logging key for request correlation identifiers.
	FieldCorrelationID = "correlation_id"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := services.BriefIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldBriefID, id))
	}
	if gate, ok := services.GateFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldGate, gate))
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, rid))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
