package api

import (
	"context"
	"fmt"

	"greenlight/internal/audit"
	"greenlight/internal/config"
	"greenlight/internal/production"
	"greenlight/internal/services"
)

// AuditHistoryRequest carries the inputs for AuditHistory.
type AuditHistoryRequest struct {
	Config  *config.Config
	BriefID string
}

// AuditHistory returns a production's audit trail, newest first.
func AuditHistory(ctx context.Context, req AuditHistoryRequest) ([]AuditEventView, error) {
	cfg := req.Config
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	store, err := production.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open production store: %w", err)
	}
	defer store.Close()

	p, err := store.GetByBrief(ctx, req.BriefID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, services.Wrap(services.ErrNotFound, "api", "history", fmt.Sprintf("no production for brief %s", req.BriefID), nil)
	}

	audits, err := audit.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open audit store: %w", err)
	}
	defer audits.Close()

	events, err := audits.History(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	views := make([]AuditEventView, 0, len(events))
	for _, event := range events {
		views = append(views, FromAuditEvent(event))
	}
	return views, nil
}
