package api

import (
	"context"
	"fmt"
	"os"

	"greenlight/internal/config"
	"greenlight/internal/production"
)

// HealthReport aggregates pipeline diagnostics for `greenlight health`.
type HealthReport struct {
	ConfigPath       string         `json:"configPath"`
	DatabaseReadable bool           `json:"databaseReadable"`
	IntegrityCheck   bool           `json:"integrityCheck"`
	TotalProductions int            `json:"totalProductions"`
	StatusCounts     map[string]int `json:"statusCounts"`
	KnowledgeCorpus  bool           `json:"knowledgeCorpus"`
	Error            string         `json:"error,omitempty"`
}

// HealthCheckRequest carries the inputs for HealthCheck.
type HealthCheckRequest struct {
	Config     *config.Config
	ConfigPath string
}

// HealthCheck probes the production database and knowledge corpus and
// reports per-status production counts.
func HealthCheck(ctx context.Context, req HealthCheckRequest) (HealthReport, error) {
	cfg := req.Config
	if cfg == nil {
		return HealthReport{}, fmt.Errorf("configuration is required")
	}

	report := HealthReport{ConfigPath: req.ConfigPath}

	store, err := production.Open(cfg)
	if err != nil {
		report.Error = err.Error()
		return report, err
	}
	defer store.Close()

	health, err := store.CheckHealth(ctx)
	report.DatabaseReadable = health.DatabaseReadable
	report.IntegrityCheck = health.IntegrityCheck
	report.TotalProductions = health.TotalProductions
	if err != nil {
		report.Error = err.Error()
		return report, err
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		report.Error = err.Error()
		return report, err
	}
	report.StatusCounts = make(map[string]int, len(stats))
	for status, count := range stats {
		report.StatusCounts[string(status)] = count
	}

	if info, err := os.Stat(cfg.Paths.KnowledgePath); err == nil && !info.IsDir() {
		report.KnowledgeCorpus = true
	}
	return report, nil
}
