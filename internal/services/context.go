package services

import "context"

type contextKey string

const (
	briefIDKey   contextKey = "brief_id"
	gateKey      contextKey = "gate"
	requestIDKey contextKey = "request_id"
)

// WithBriefID annotates context with the production brief identifier.
func WithBriefID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, briefIDKey, id)
}

// BriefIDFromContext extracts the production brief identifier if present.
func BriefIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(briefIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithGate annotates context with the gate identifier being executed.
func WithGate(ctx context.Context, gate string) context.Context {
	if gate == "" {
		return ctx
	}
	return context.WithValue(ctx, gateKey, gate)
}

// GateFromContext returns the gate identifier if present.
func GateFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(gateKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
