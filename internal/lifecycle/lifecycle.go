// Package lifecycle enforces the production status machine. It owns every
// status write: the orchestrator computes gate results, but only this package
// moves a production between states, under the same per-production lease the
// orchestrator uses.
package lifecycle

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"greenlight/internal/artefact"
	"greenlight/internal/audit"
	"greenlight/internal/config"
	"greenlight/internal/gates"
	"greenlight/internal/logging"
	"greenlight/internal/proclock"
	"greenlight/internal/production"
	"greenlight/internal/services"
)

// transitions is the legal status graph. Archive is reachable from any
// non-terminal state by explicit operator action; the qa_failed rework loop
// goes back to storyboard or rendering. The override path qa_failed to
// ready_for_publish is deliberately absent here: it exists only through
// Override, which does its own policy checks.
var transitions = map[production.Status][]production.Status{
	production.StatusDraft:           {production.StatusPendingReview, production.StatusArchived},
	production.StatusPendingReview:   {production.StatusScriptApproved, production.StatusArchived},
	production.StatusScriptApproved:  {production.StatusStoryboard, production.StatusArchived},
	production.StatusStoryboard:      {production.StatusRendering, production.StatusArchived},
	production.StatusRendering:       {production.StatusQA, production.StatusArchived},
	production.StatusQA:              {production.StatusQAFailed, production.StatusReadyForPublish, production.StatusArchived},
	production.StatusQAFailed:        {production.StatusStoryboard, production.StatusRendering, production.StatusArchived},
	production.StatusReadyForPublish: {production.StatusPublished, production.StatusArchived},
	production.StatusPublished:       {production.StatusArchived},
	production.StatusArchived:        {},
}

// Allowed reports whether the transition appears in the legal status graph.
func Allowed(from, to production.Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Next returns the legal successor statuses for a state.
func Next(from production.Status) []production.Status {
	next := transitions[from]
	cp := make([]production.Status, len(next))
	copy(cp, next)
	return cp
}

// Manager performs status transitions and manual overrides.
type Manager struct {
	cfg    *config.Config
	store  *production.Store
	audits *audit.Store
	logger *slog.Logger
}

// NewManager wires a Manager against the production store and audit log.
func NewManager(cfg *config.Config, store *production.Store, audits *audit.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Manager{cfg: cfg, store: store, audits: audits, logger: logger}
}

// Transition acquires the production's lease and applies the status change.
// Use Apply when the caller already holds the lease.
func (m *Manager) Transition(ctx context.Context, briefID string, to production.Status, actor string) (*production.Production, error) {
	guard, err := proclock.Acquire(m.cfg.LocksDir(), briefID)
	if err != nil {
		return nil, err
	}
	defer guard.Release()

	p, err := m.store.GetByBrief(ctx, briefID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, services.Wrap(services.ErrNotFound, "lifecycle", "transition", fmt.Sprintf("no production for brief %s", briefID), nil)
	}
	if err := m.Apply(ctx, p, to, actor); err != nil {
		return nil, err
	}
	return p, nil
}

// Apply validates and persists a status change for a production whose lease
// the caller already holds, then audits the transition.
func (m *Manager) Apply(ctx context.Context, p *production.Production, to production.Status, actor string) error {
	from := p.Status
	if from == to {
		return services.Wrap(services.ErrIllegalTransition, "lifecycle", "apply", fmt.Sprintf("production already %s", to), nil)
	}
	if !Allowed(from, to) {
		return services.Wrap(services.ErrIllegalTransition, "lifecycle", "apply", fmt.Sprintf("%s -> %s is not a legal transition", from, to), nil)
	}
	if to == production.StatusReadyForPublish {
		if err := m.checkPublishGate(p); err != nil {
			return err
		}
	}

	p.Status = to
	if err := m.store.Update(ctx, p); err != nil {
		return fmt.Errorf("persist transition: %w", err)
	}

	if err := m.recordTransition(ctx, p, from, to, actor, ""); err != nil {
		return err
	}
	m.logger.InfoContext(ctx, "status transition",
		logging.String(logging.FieldBriefID, p.BriefID),
		logging.String(logging.FieldStatus, string(to)),
		logging.String("from", string(from)))
	return nil
}

// Override performs the sole exception path, qa_failed to ready_for_publish.
// It is rejected when any strict gate failed in the most recent run, requires
// an identified approver, and documents itself in the Approval Record before
// the status changes.
func (m *Manager) Override(ctx context.Context, briefID, approver, justification string) (*production.Production, error) {
	approver = strings.TrimSpace(approver)
	if approver == "" {
		return nil, services.Wrap(services.ErrValidation, "lifecycle", "override", "an identified approver is required", nil)
	}

	guard, err := proclock.Acquire(m.cfg.LocksDir(), briefID)
	if err != nil {
		return nil, err
	}
	defer guard.Release()

	p, err := m.store.GetByBrief(ctx, briefID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, services.Wrap(services.ErrNotFound, "lifecycle", "override", fmt.Sprintf("no production for brief %s", briefID), nil)
	}
	if p.Status != production.StatusQAFailed {
		return nil, services.Wrap(services.ErrIllegalTransition, "lifecycle", "override", fmt.Sprintf("override applies only to qa_failed productions, not %s", p.Status), nil)
	}

	results, err := gates.DecodeResults(p.GateResultsJSON)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, services.Wrap(services.ErrIllegalTransition, "lifecycle", "override", "no gate run on record to override", nil)
	}
	defs := gates.Definitions(m.cfg)
	for _, result := range results {
		if result.Verdict != gates.VerdictFail {
			continue
		}
		def, ok := gates.DefinitionFor(defs, result.Gate)
		if ok && def.Strict {
			return nil, services.Wrap(services.ErrIllegalTransition, "lifecycle", "override", fmt.Sprintf("strict gate %s failed and cannot be overridden", result.Gate), nil)
		}
	}

	record, err := p.ApprovalRecord()
	if err != nil {
		return nil, err
	}
	if record == nil {
		record = &artefact.ApprovalRecord{}
	}
	record.Entries = append(record.Entries, artefact.Approval{
		Stage:      artefact.OverrideStage,
		Approver:   approver,
		Note:       justification,
		ApprovedAt: time.Now().UTC(),
	})
	if err := p.SetApprovalRecord(record); err != nil {
		return nil, err
	}

	// Ready-for-publish still requires the full artefact set: an override
	// forgives a soft gate failure, never a missing artefact. Checked after
	// the approval entry is appended so the override itself can complete a
	// previously empty Approval Record.
	missing, err := missingArtefacts(p)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, services.Wrap(services.ErrIllegalTransition, "lifecycle", "override", fmt.Sprintf("missing artefacts: %s", strings.Join(missing, ", ")), nil)
	}

	from := p.Status
	p.Status = production.StatusReadyForPublish
	if err := m.store.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("persist override: %w", err)
	}

	if err := m.recordOverride(ctx, p, from, approver, justification); err != nil {
		return nil, err
	}
	m.logger.InfoContext(ctx, "manual override recorded",
		logging.String(logging.FieldBriefID, p.BriefID),
		logging.String("approver", approver))
	return p, nil
}

// checkPublishGate enforces the publish precondition: a most-recent run with a
// non-blocking aggregate, and all five mandatory artefacts present.
func (m *Manager) checkPublishGate(p *production.Production) error {
	results, err := gates.DecodeResults(p.GateResultsJSON)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return services.Wrap(services.ErrIllegalTransition, "lifecycle", "publish gate", "no gate run on record", nil)
	}
	defs := gates.Definitions(m.cfg)
	if aggregate := gates.AggregateVerdict(defs, results); aggregate.Blocking() {
		return services.Wrap(services.ErrIllegalTransition, "lifecycle", "publish gate", "most recent gate run failed", nil)
	}

	missing, err := missingArtefacts(p)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return services.Wrap(services.ErrIllegalTransition, "lifecycle", "publish gate", fmt.Sprintf("missing artefacts: %s", strings.Join(missing, ", ")), nil)
	}
	return nil
}

// missingArtefacts returns display labels for absent or malformed artefacts.
func missingArtefacts(p *production.Production) ([]string, error) {
	set, err := artefactSet(p)
	if err != nil {
		return nil, err
	}
	missing := set.Missing()
	labels := make([]string, len(missing))
	for i, kind := range missing {
		labels[i] = string(kind)
	}
	return labels, nil
}

func artefactSet(p *production.Production) (artefact.Set, error) {
	claimTable, err := p.ClaimTable()
	if err != nil {
		return artefact.Set{}, err
	}
	evidencePack, err := p.EvidencePack()
	if err != nil {
		return artefact.Set{}, err
	}
	disclaimerPlan, err := p.DisclaimerPlan()
	if err != nil {
		return artefact.Set{}, err
	}
	approvalRecord, err := p.ApprovalRecord()
	if err != nil {
		return artefact.Set{}, err
	}
	contract, err := p.KnowledgeContract()
	if err != nil {
		return artefact.Set{}, err
	}
	return artefact.ValidateAll(claimTable, evidencePack, disclaimerPlan, approvalRecord, contract), nil
}

func encodePayload(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encode audit payload: %w", err)
	}
	return string(data), nil
}

type transitionPayload struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Reason string `json:"reason,omitempty"`
}

func (m *Manager) recordTransition(ctx context.Context, p *production.Production, from, to production.Status, actor, reason string) error {
	payload, err := encodePayload(transitionPayload{From: string(from), To: string(to), Reason: reason})
	if err != nil {
		return err
	}
	return m.audits.Record(ctx, audit.Event{
		ProductionID: p.ID,
		BriefID:      p.BriefID,
		Kind:         audit.KindTransition,
		PayloadJSON:  payload,
		Actor:        actor,
	})
}

type overridePayload struct {
	From          string `json:"from"`
	To            string `json:"to"`
	Approver      string `json:"approver"`
	Justification string `json:"justification,omitempty"`
}

func (m *Manager) recordOverride(ctx context.Context, p *production.Production, from production.Status, approver, justification string) error {
	payload, err := encodePayload(overridePayload{
		From:          string(from),
		To:            string(production.StatusReadyForPublish),
		Approver:      approver,
		Justification: justification,
	})
	if err != nil {
		return err
	}
	return m.audits.Record(ctx, audit.Event{
		ProductionID: p.ID,
		BriefID:      p.BriefID,
		Kind:         audit.KindOverride,
		PayloadJSON:  payload,
		Actor:        approver,
	})
}
