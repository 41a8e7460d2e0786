package production

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"greenlight/internal/config"
)

// Store manages production persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the production database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "productions.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Create inserts a new production in draft status unless one was set.
func (s *Store) Create(ctx context.Context, p *Production) error {
	if p == nil {
		return errors.New("production is nil")
	}
	if strings.TrimSpace(p.BriefID) == "" {
		return errors.New("brief id is required")
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	flagsJSON, err := encodeFlags(p.QualityFlags)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO productions (
            brief_id, title, video_type, vertical, status, quality_score, quality_flags,
            script_text, render_meta_json, assets_json, claim_table_json, evidence_pack_json,
            disclaimer_plan_json, approval_record_json, knowledge_contract_json,
            gate_results_json, created_by, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.BriefID,
		nullableString(p.Title),
		string(p.VideoType),
		nullableString(p.Vertical),
		p.Status,
		nullableFloat(p.QualityScore),
		nullableString(flagsJSON),
		nullableString(p.ScriptText),
		nullableString(p.RenderMetaJSON),
		nullableString(p.AssetsJSON),
		nullableString(p.ClaimTableJSON),
		nullableString(p.EvidencePackJSON),
		nullableString(p.DisclaimerPlanJSON),
		nullableString(p.ApprovalRecordJSON),
		nullableString(p.KnowledgeContractJSON),
		nullableString(p.GateResultsJSON),
		nullableString(p.CreatedBy),
		now.Format(time.RFC3339Nano),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert production: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	p.ID = id
	return nil
}

// GetByID fetches a production by internal identifier.
func (s *Store) GetByID(ctx context.Context, id int64) (*Production, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+productionColumns+` FROM productions WHERE id = ?`, id)
	p, err := scanProduction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get production: %w", err)
	}
	return p, nil
}

// GetByBrief fetches a production by its external brief identifier.
func (s *Store) GetByBrief(ctx context.Context, briefID string) (*Production, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+productionColumns+` FROM productions WHERE brief_id = ?`, briefID)
	p, err := scanProduction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get production by brief: %w", err)
	}
	return p, nil
}

// Update persists changes to an existing production.
func (s *Store) Update(ctx context.Context, p *Production) error {
	if p == nil {
		return errors.New("production is nil")
	}
	p.UpdatedAt = time.Now().UTC()

	flagsJSON, err := encodeFlags(p.QualityFlags)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(
		ctx,
		`UPDATE productions
         SET title = ?, video_type = ?, vertical = ?, status = ?, quality_score = ?,
             quality_flags = ?, script_text = ?, render_meta_json = ?, assets_json = ?,
             claim_table_json = ?, evidence_pack_json = ?, disclaimer_plan_json = ?,
             approval_record_json = ?, knowledge_contract_json = ?, gate_results_json = ?,
             created_by = ?, updated_at = ?
         WHERE id = ?`,
		nullableString(p.Title),
		string(p.VideoType),
		nullableString(p.Vertical),
		p.Status,
		nullableFloat(p.QualityScore),
		nullableString(flagsJSON),
		nullableString(p.ScriptText),
		nullableString(p.RenderMetaJSON),
		nullableString(p.AssetsJSON),
		nullableString(p.ClaimTableJSON),
		nullableString(p.EvidencePackJSON),
		nullableString(p.DisclaimerPlanJSON),
		nullableString(p.ApprovalRecordJSON),
		nullableString(p.KnowledgeContractJSON),
		nullableString(p.GateResultsJSON),
		nullableString(p.CreatedBy),
		p.UpdatedAt.Format(time.RFC3339Nano),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update production: %w", err)
	}
	return nil
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Status   Status
	Vertical string
	Limit    int
	Offset   int
}

// List returns productions matching the filter ordered by creation time.
func (s *Store) List(ctx context.Context, filter Filter) ([]*Production, error) {
	query := `SELECT ` + productionColumns + ` FROM productions`
	var clauses []string
	var args []any
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, filter.Status)
	}
	if strings.TrimSpace(filter.Vertical) != "" {
		clauses = append(clauses, "vertical = ?")
		args = append(args, filter.Vertical)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list productions: %w", err)
	}
	defer rows.Close()

	var productions []*Production
	for rows.Next() {
		p, err := scanProduction(rows)
		if err != nil {
			return nil, err
		}
		productions = append(productions, p)
	}
	return productions, rows.Err()
}

// Stats returns a count of productions grouped by status.
func (s *Store) Stats(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM productions GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("production stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

// Remove deletes a production by internal identifier.
func (s *Store) Remove(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM productions WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete production: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// DatabaseHealth captures diagnostic information about the production database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseReadable bool
	IntegrityCheck   bool
	TotalProductions int
	Error            string
}

// CheckHealth returns diagnostic information about the production database.
func (s *Store) CheckHealth(ctx context.Context) (DatabaseHealth, error) {
	health := DatabaseHealth{DBPath: s.path}
	if s.db == nil {
		return health, errors.New("production database connection unavailable")
	}

	connCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(connCtx); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("ping production database: %w", err)
	}
	health.DatabaseReadable = true

	row := s.db.QueryRowContext(connCtx, "SELECT COUNT(*) FROM productions")
	if err := row.Scan(&health.TotalProductions); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("count productions: %w", err)
	}

	row = s.db.QueryRowContext(connCtx, "PRAGMA integrity_check")
	var integrityResult string
	if err := row.Scan(&integrityResult); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("integrity check: %w", err)
	}
	health.IntegrityCheck = strings.EqualFold(integrityResult, "ok")

	return health, nil
}

const productionColumns = "id, brief_id, title, video_type, vertical, status, quality_score, quality_flags, script_text, render_meta_json, assets_json, claim_table_json, evidence_pack_json, disclaimer_plan_json, approval_record_json, knowledge_contract_json, gate_results_json, created_by, created_at, updated_at"

func scanProduction(scanner interface{ Scan(dest ...any) error }) (*Production, error) {
	var (
		id           int64
		briefID      string
		title        sql.NullString
		videoType    string
		vertical     sql.NullString
		statusStr    string
		score        sql.NullFloat64
		flagsRaw     sql.NullString
		script       sql.NullString
		renderMeta   sql.NullString
		assets       sql.NullString
		claimTable   sql.NullString
		evidence     sql.NullString
		disclaimers  sql.NullString
		approvals    sql.NullString
		contract     sql.NullString
		gateResults  sql.NullString
		createdBy    sql.NullString
		createdRaw   sql.NullString
		updatedRaw   sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&briefID,
		&title,
		&videoType,
		&vertical,
		&statusStr,
		&score,
		&flagsRaw,
		&script,
		&renderMeta,
		&assets,
		&claimTable,
		&evidence,
		&disclaimers,
		&approvals,
		&contract,
		&gateResults,
		&createdBy,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	p := &Production{
		ID:                    id,
		BriefID:               briefID,
		Title:                 title.String,
		VideoType:             VideoType(videoType),
		Vertical:              vertical.String,
		Status:                Status(statusStr),
		ScriptText:            script.String,
		RenderMetaJSON:        renderMeta.String,
		AssetsJSON:            assets.String,
		ClaimTableJSON:        claimTable.String,
		EvidencePackJSON:      evidence.String,
		DisclaimerPlanJSON:    disclaimers.String,
		ApprovalRecordJSON:    approvals.String,
		KnowledgeContractJSON: contract.String,
		GateResultsJSON:       gateResults.String,
		CreatedBy:             createdBy.String,
	}
	if score.Valid {
		v := score.Float64
		p.QualityScore = &v
	}
	if flagsRaw.Valid && strings.TrimSpace(flagsRaw.String) != "" {
		if err := json.Unmarshal([]byte(flagsRaw.String), &p.QualityFlags); err != nil {
			return nil, fmt.Errorf("decode quality flags: %w", err)
		}
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		p.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		p.UpdatedAt = updated
	}
	return p, nil
}

func encodeFlags(flags []string) (string, error) {
	if len(flags) == 0 {
		return "", nil
	}
	data, err := json.Marshal(flags)
	if err != nil {
		return "", fmt.Errorf("encode quality flags: %w", err)
	}
	return string(data), nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableFloat(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	return time.Parse(time.RFC3339Nano, value)
}
