package testsupport

import (
	"path/filepath"
	"testing"

	"greenlight/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// Notifications are disabled so tests never reach the network.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.KnowledgePath = filepath.Join(base, "knowledge.json")
	cfg.Notifications.NtfyTopic = ""

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithGateThresholds overrides warn/fail thresholds on every gate.
func WithGateThresholds(warn, fail float64) ConfigOption {
	return func(cfg *config.Config) {
		for _, settings := range []*config.GateSettings{
			&cfg.Gates.Truth,
			&cfg.Gates.Safety,
			&cfg.Gates.Brand,
			&cfg.Gates.Platform,
			&cfg.Gates.ReuseRisk,
			&cfg.Gates.VisualRole,
			&cfg.Gates.FinalQA,
		} {
			settings.WarnThreshold = warn
			settings.FailThreshold = fail
		}
	}
}
