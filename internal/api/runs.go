package api

import (
	"context"
	"fmt"
	"log/slog"

	"greenlight/internal/audit"
	"greenlight/internal/config"
	"greenlight/internal/knowledge"
	"greenlight/internal/lifecycle"
	"greenlight/internal/notifications"
	"greenlight/internal/orchestrator"
	"greenlight/internal/production"
)

// RunGatesRequest carries the inputs for RunGates.
type RunGatesRequest struct {
	Config  *config.Config
	BriefID string
	Commit  bool
	Actor   string
	Logger  *slog.Logger
}

// RunGates executes a full gate run for one production. Without Commit the
// run is a dry run: results and audit events persist, status never moves.
func RunGates(ctx context.Context, req RunGatesRequest) (RunView, error) {
	cfg := req.Config
	if cfg == nil {
		return RunView{}, fmt.Errorf("configuration is required")
	}

	store, err := production.Open(cfg)
	if err != nil {
		return RunView{}, fmt.Errorf("open production store: %w", err)
	}
	defer store.Close()

	audits, err := audit.Open(cfg)
	if err != nil {
		return RunView{}, fmt.Errorf("open audit store: %w", err)
	}
	defer audits.Close()

	corpus, err := knowledge.LoadFile(cfg.Paths.KnowledgePath)
	if err != nil {
		return RunView{}, err
	}

	manager := lifecycle.NewManager(cfg, store, audits, req.Logger)
	notifier := notifications.NewService(cfg)
	orch := orchestrator.New(cfg, store, audits, manager, notifier, corpus, req.Logger)

	run, err := orch.RunAll(ctx, req.BriefID, orchestrator.RunOptions{Commit: req.Commit, Actor: req.Actor})
	if err != nil {
		return RunView{}, err
	}
	return FromRun(run), nil
}
