package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"greenlight/internal/config"
)

// Kind categorizes audit events.
type Kind string

const (
	KindGateRun    Kind = "gate_run"
	KindTransition Kind = "transition"
	KindOverride   Kind = "override"
)

// Event is one immutable audit trail entry.
type Event struct {
	ID           string
	ProductionID int64
	BriefID      string
	Seq          int64
	Kind         Kind
	PayloadJSON  string
	Actor        string
	CreatedAt    time.Time
}

// DecodePayload unmarshals the event payload into the provided value.
func (e Event) DecodePayload(target any) error {
	if strings.TrimSpace(e.PayloadJSON) == "" {
		return errors.New("event has no payload")
	}
	if err := json.Unmarshal([]byte(e.PayloadJSON), target); err != nil {
		return fmt.Errorf("decode event payload: %w", err)
	}
	return nil
}

// Store manages the append-only audit log backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the audit database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "audit.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS audit_events (
            id TEXT PRIMARY KEY,
            production_id INTEGER NOT NULL,
            brief_id TEXT NOT NULL,
            seq INTEGER NOT NULL,
            kind TEXT NOT NULL,
            payload_json TEXT,
            actor TEXT,
            created_at TEXT NOT NULL,
            UNIQUE(production_id, seq)
        );
        CREATE INDEX IF NOT EXISTS idx_audit_events_brief ON audit_events(brief_id);
    `)
	if err != nil {
		return fmt.Errorf("init audit schema: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record appends one event. The event is durable before Record returns; the
// per-production sequence number is assigned inside the insert transaction so
// concurrent recorders cannot interleave out of order.
func (s *Store) Record(ctx context.Context, event Event) error {
	if event.ProductionID <= 0 {
		return errors.New("event requires a production id")
	}
	if event.Kind == "" {
		return errors.New("event requires a kind")
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin audit tx: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	row := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM audit_events WHERE production_id = ?`, event.ProductionID)
	if err := row.Scan(&seq); err != nil {
		return fmt.Errorf("next audit seq: %w", err)
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO audit_events (id, production_id, brief_id, seq, kind, payload_json, actor, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID,
		event.ProductionID,
		event.BriefID,
		seq,
		string(event.Kind),
		nullableString(event.PayloadJSON),
		nullableString(event.Actor),
		event.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit audit event: %w", err)
	}
	return nil
}

// History returns a production's events newest first.
func (s *Store) History(ctx context.Context, productionID int64) ([]Event, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, production_id, brief_id, seq, kind, payload_json, actor, created_at
         FROM audit_events WHERE production_id = ? ORDER BY seq DESC`,
		productionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query audit history: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			event      Event
			kind       string
			payload    sql.NullString
			actor      sql.NullString
			createdRaw string
		)
		if err := rows.Scan(&event.ID, &event.ProductionID, &event.BriefID, &event.Seq, &kind, &payload, &actor, &createdRaw); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Kind = Kind(kind)
		event.PayloadJSON = payload.String
		event.Actor = actor.String
		if created, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
			event.CreatedAt = created
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
