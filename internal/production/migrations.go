package production

import (
	"context"
	"fmt"
)

// migrations are applied in order; each entry bumps user_version by one.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS productions (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        brief_id TEXT NOT NULL UNIQUE,
        title TEXT,
        video_type TEXT NOT NULL,
        vertical TEXT,
        status TEXT NOT NULL,
        quality_score REAL,
        quality_flags TEXT,
        script_text TEXT,
        render_meta_json TEXT,
        assets_json TEXT,
        claim_table_json TEXT,
        evidence_pack_json TEXT,
        disclaimer_plan_json TEXT,
        approval_record_json TEXT,
        knowledge_contract_json TEXT,
        gate_results_json TEXT,
        created_by TEXT,
        created_at TEXT NOT NULL,
        updated_at TEXT NOT NULL
    );
    CREATE INDEX IF NOT EXISTS idx_productions_status ON productions(status);
    CREATE INDEX IF NOT EXISTS idx_productions_vertical ON productions(vertical);`,
}

func (s *Store) applyMigrations(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version > len(migrations) {
		return fmt.Errorf("database schema version %d is newer than this build supports", version)
	}
	for i := version; i < len(migrations); i++ {
		if _, err := s.db.ExecContext(ctx, migrations[i]); err != nil {
			return fmt.Errorf("apply migration %d: %w", i+1, err)
		}
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			return fmt.Errorf("record migration %d: %w", i+1, err)
		}
	}
	return nil
}
