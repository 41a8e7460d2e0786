package testsupport

import (
	"testing"

	"greenlight/internal/audit"
	"greenlight/internal/config"
	"greenlight/internal/production"
)

// MustOpenStore opens a production.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *production.Store {
	t.Helper()
	store, err := production.Open(cfg)
	if err != nil {
		t.Fatalf("open production store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close production store: %v", err)
		}
	})
	return store
}

// MustOpenAudit opens an audit.Store for tests and registers cleanup.
func MustOpenAudit(t testing.TB, cfg *config.Config) *audit.Store {
	t.Helper()
	store, err := audit.Open(cfg)
	if err != nil {
		t.Fatalf("open audit store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close audit store: %v", err)
		}
	})
	return store
}
