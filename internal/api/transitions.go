package api

import (
	"context"
	"fmt"
	"log/slog"

	"greenlight/internal/audit"
	"greenlight/internal/config"
	"greenlight/internal/lifecycle"
	"greenlight/internal/notifications"
	"greenlight/internal/production"
	"greenlight/internal/services"
)

// AdvanceStatusRequest carries the inputs for AdvanceStatus.
type AdvanceStatusRequest struct {
	Config  *config.Config
	BriefID string
	Target  string
	Actor   string
	Logger  *slog.Logger
}

// AdvanceStatus applies one lifecycle transition under the production lease.
func AdvanceStatus(ctx context.Context, req AdvanceStatusRequest) (ProductionView, error) {
	cfg := req.Config
	if cfg == nil {
		return ProductionView{}, fmt.Errorf("configuration is required")
	}
	target, ok := production.ParseStatus(req.Target)
	if !ok {
		return ProductionView{}, services.Wrap(services.ErrValidation, "api", "advance", fmt.Sprintf("unknown status %q", req.Target), nil)
	}

	store, err := production.Open(cfg)
	if err != nil {
		return ProductionView{}, fmt.Errorf("open production store: %w", err)
	}
	defer store.Close()

	audits, err := audit.Open(cfg)
	if err != nil {
		return ProductionView{}, fmt.Errorf("open audit store: %w", err)
	}
	defer audits.Close()

	manager := lifecycle.NewManager(cfg, store, audits, req.Logger)
	p, err := manager.Transition(ctx, req.BriefID, target, req.Actor)
	if err != nil {
		return ProductionView{}, err
	}
	return FromProduction(p)
}

// RecordOverrideRequest carries the inputs for RecordOverride.
type RecordOverrideRequest struct {
	Config        *config.Config
	BriefID       string
	Approver      string
	Justification string
	Logger        *slog.Logger
}

// RecordOverride performs the manual qa_failed to ready_for_publish override,
// documenting it in the Approval Record and the audit trail.
func RecordOverride(ctx context.Context, req RecordOverrideRequest) (ProductionView, error) {
	cfg := req.Config
	if cfg == nil {
		return ProductionView{}, fmt.Errorf("configuration is required")
	}

	store, err := production.Open(cfg)
	if err != nil {
		return ProductionView{}, fmt.Errorf("open production store: %w", err)
	}
	defer store.Close()

	audits, err := audit.Open(cfg)
	if err != nil {
		return ProductionView{}, fmt.Errorf("open audit store: %w", err)
	}
	defer audits.Close()

	manager := lifecycle.NewManager(cfg, store, audits, req.Logger)
	p, err := manager.Override(ctx, req.BriefID, req.Approver, req.Justification)
	if err != nil {
		return ProductionView{}, err
	}

	notifier := notifications.NewService(cfg)
	if err := notifier.NotifyOverrideRecorded(ctx, p.BriefID, req.Approver); err != nil && req.Logger != nil {
		req.Logger.WarnContext(ctx, "override notification failed", "error", err)
	}
	return FromProduction(p)
}
