package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"greenlight/internal/audit"
	"greenlight/internal/config"
	"greenlight/internal/gates"
	"greenlight/internal/knowledge"
	"greenlight/internal/lifecycle"
	"greenlight/internal/logging"
	"greenlight/internal/notifications"
	"greenlight/internal/proclock"
	"greenlight/internal/production"
	"greenlight/internal/services"
)

// RunOptions controls one gate run invocation.
type RunOptions struct {
	// Commit applies the qa outcome transition after the run. Without it the
	// run is a dry run: results and audit events persist, status never moves.
	Commit bool
	Actor  string
}

// Orchestrator coordinates gate runs for productions.
type Orchestrator struct {
	cfg       *config.Config
	store     *production.Store
	audits    *audit.Store
	lifecycle *lifecycle.Manager
	notifier  notifications.Service
	executors []gates.Executor
	defs      []gates.Definition
	backoff   time.Duration
	logger    *slog.Logger
}

// New wires an orchestrator with the six primary gate executors. The corpus
// backs the truth gate; everything else evaluates pure configuration.
func New(
	cfg *config.Config,
	store *production.Store,
	audits *audit.Store,
	manager *lifecycle.Manager,
	notifier notifications.Service,
	corpus knowledge.Corpus,
	logger *slog.Logger,
) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	backoff := time.Duration(cfg.Gates.BackoffMillis) * time.Millisecond
	if backoff <= 0 {
		backoff = 250 * time.Millisecond
	}
	return &Orchestrator{
		cfg:       cfg,
		store:     store,
		audits:    audits,
		lifecycle: manager,
		notifier:  notifier,
		executors: []gates.Executor{
			gates.NewTruthGate(corpus),
			gates.NewSafetyGate(),
			gates.NewBrandGate(cfg.Brand),
			gates.NewPlatformGate(cfg.Platforms),
			gates.NewReuseRiskGate(cfg.ReuseRisk.MaxAssetUses),
			gates.NewVisualRoleGate(),
		},
		defs:    gates.Definitions(cfg),
		backoff: backoff,
		logger:  logging.NewComponentLogger(logger, "orchestrator"),
	}
}

// RunAll executes all seven gates for the production identified by briefID.
// At most one run is in flight per production; a concurrent attempt surfaces
// as a retryable conflict. When opts.Commit is set and the production is in
// qa, the run outcome drives the qa_failed / ready_for_publish transition.
func (o *Orchestrator) RunAll(ctx context.Context, briefID string, opts RunOptions) (*gates.Run, error) {
	guard, err := proclock.Acquire(o.cfg.LocksDir(), briefID)
	if err != nil {
		return nil, err
	}
	defer guard.Release()

	p, err := o.store.GetByBrief(ctx, briefID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, services.Wrap(services.ErrNotFound, "orchestrator", "run", fmt.Sprintf("no production for brief %s", briefID), nil)
	}
	if p.Status.IsTerminal() {
		return nil, services.Wrap(services.ErrIllegalTransition, "orchestrator", "run", fmt.Sprintf("production %s is archived", briefID), nil)
	}
	if opts.Commit && p.Status != production.StatusQA {
		return nil, services.Wrap(services.ErrIllegalTransition, "orchestrator", "run", fmt.Sprintf("committing run requires qa status, production is %s", p.Status), nil)
	}

	snap, err := gates.NewSnapshot(p)
	if err != nil {
		return nil, err
	}

	run := &gates.Run{
		RunID:     uuid.NewString(),
		BriefID:   p.BriefID,
		StartedAt: time.Now().UTC(),
	}

	results, degraded, err := o.fanOut(ctx, snap)
	if err != nil {
		return nil, err
	}
	if degraded == len(o.executors) {
		return nil, services.Wrap(services.ErrDependency, "orchestrator", "run", "every gate degraded; no trustworthy evaluation possible", nil)
	}

	results = append(results, gates.FinalQA(o.defs, results, snap.Artefacts()))

	run.Results = results
	run.Aggregate = gates.AggregateVerdict(o.defs, results)
	run.QualityScore = gates.QualityScore(o.defs, results)
	run.Flags = gates.WarnFlags(o.defs, results)
	run.CompletedAt = time.Now().UTC()

	// The production may have been archived or deleted while gates were in
	// flight. In-flight executors run to completion; their results are
	// discarded here rather than partially applied.
	fresh, err := o.store.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if fresh == nil || fresh.Status.IsTerminal() {
		o.logger.WarnContext(ctx, "production gone mid-run, results discarded",
			logging.String(logging.FieldBriefID, briefID))
		return run, nil
	}

	if err := o.persist(ctx, fresh, run); err != nil {
		return nil, err
	}

	if opts.Commit && fresh.Status == production.StatusQA {
		target := production.StatusReadyForPublish
		if run.Aggregate.Blocking() {
			target = production.StatusQAFailed
		}
		if err := o.lifecycle.Apply(ctx, fresh, target, opts.Actor); err != nil {
			return run, err
		}
	}

	o.logger.InfoContext(ctx, "gate run completed",
		logging.String(logging.FieldBriefID, briefID),
		logging.String(logging.FieldVerdict, string(run.Aggregate)),
		logging.Float64("quality_score", run.QualityScore),
		logging.Bool("committed", opts.Commit))

	if o.notifier != nil {
		if err := o.notifier.NotifyGateRunCompleted(ctx, briefID, string(run.Aggregate), run.QualityScore); err != nil {
			o.logger.WarnContext(ctx, "gate run notification failed", logging.Error(err))
		}
	}
	return run, nil
}

// fanOut evaluates the six primary gates concurrently, each against its own
// snapshot clone, and returns results in definition order plus the count of
// gates that degraded after exhausting retries.
func (o *Orchestrator) fanOut(ctx context.Context, snap *gates.Snapshot) ([]gates.Result, int, error) {
	results := make([]gates.Result, len(o.executors))
	degradedFlags := make([]bool, len(o.executors))

	var wg sync.WaitGroup
	for i, exec := range o.executors {
		def, ok := gates.DefinitionFor(o.defs, exec.ID())
		if !ok {
			return nil, 0, fmt.Errorf("no definition for gate %s", exec.ID())
		}
		wg.Add(1)
		go func(i int, exec gates.Executor, def gates.Definition) {
			defer wg.Done()
			results[i], degradedFlags[i] = o.runGate(ctx, exec, def, snap.Clone())
		}(i, exec, def)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	degraded := 0
	for _, flag := range degradedFlags {
		if flag {
			degraded++
		}
	}
	return results, degraded, nil
}

// runGate executes one gate with per-attempt timeout and bounded exponential
// backoff. An exhausted gate degrades to WARN rather than blocking the run.
func (o *Orchestrator) runGate(ctx context.Context, exec gates.Executor, def gates.Definition, snap *gates.Snapshot) (gates.Result, bool) {
	attempts := def.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		gateCtx := ctx
		cancel := context.CancelFunc(func() {})
		if def.Timeout > 0 {
			gateCtx, cancel = context.WithTimeout(ctx, def.Timeout)
		}
		outcome, err := exec.Evaluate(gateCtx, snap)
		cancel()

		if err == nil {
			return gates.Result{
				Gate:          def.ID,
				Verdict:       gates.VerdictFor(outcome.Measured, def),
				Details:       outcome.Details,
				Measured:      outcome.Measured,
				WarnThreshold: def.WarnThreshold,
				FailThreshold: def.FailThreshold,
			}, false
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
		if !retryableGateError(err) {
			break
		}
		if attempt < attempts {
			o.logger.DebugContext(ctx, "gate attempt failed, backing off",
				logging.String(logging.FieldGate, string(def.ID)),
				logging.Int("attempt", attempt),
				logging.Error(err))
			if !sleep(ctx, o.backoff<<(attempt-1)) {
				break
			}
		}
	}

	o.logger.WarnContext(ctx, "gate degraded after exhausting retries",
		logging.String(logging.FieldGate, string(def.ID)),
		logging.Error(lastErr))
	// The WARN verdict is authoritative, not derived from the recorded
	// numbers: a degraded evaluation has no trustworthy measurement, so
	// Measured is pinned to the fail threshold only as a conservative
	// quality-score input.
	return gates.Result{
		Gate:          def.ID,
		Verdict:       gates.VerdictWarn,
		Details:       []string{fmt.Sprintf("degraded evaluation: %v", lastErr)},
		Measured:      def.FailThreshold,
		WarnThreshold: def.WarnThreshold,
		FailThreshold: def.FailThreshold,
	}, true
}

func retryableGateError(err error) bool {
	return services.Retryable(err) || errors.Is(err, context.DeadlineExceeded)
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

type runPayload struct {
	RunID        string                     `json:"run_id"`
	Aggregate    gates.Verdict              `json:"aggregate"`
	QualityScore float64                    `json:"quality_score"`
	Verdicts     map[gates.ID]gates.Verdict `json:"verdicts"`
}

// persist writes the result set, score, and accumulated flags onto the
// production record and appends the gate_run audit event.
func (o *Orchestrator) persist(ctx context.Context, p *production.Production, run *gates.Run) error {
	encoded, err := gates.EncodeResults(run.Results)
	if err != nil {
		return err
	}
	p.GateResultsJSON = encoded
	score := run.QualityScore
	p.QualityScore = &score
	p.AddQualityFlags(run.Flags...)
	if err := o.store.Update(ctx, p); err != nil {
		return fmt.Errorf("persist gate run: %w", err)
	}

	verdicts := make(map[gates.ID]gates.Verdict, len(run.Results))
	for _, result := range run.Results {
		verdicts[result.Gate] = result.Verdict
	}
	payload, err := json.Marshal(runPayload{
		RunID:        run.RunID,
		Aggregate:    run.Aggregate,
		QualityScore: run.QualityScore,
		Verdicts:     verdicts,
	})
	if err != nil {
		return fmt.Errorf("encode run payload: %w", err)
	}
	return o.audits.Record(ctx, audit.Event{
		ID:           run.RunID,
		ProductionID: p.ID,
		BriefID:      p.BriefID,
		Kind:         audit.KindGateRun,
		PayloadJSON:  string(payload),
	})
}
