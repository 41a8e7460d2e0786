package gates

import "context"

// Outcome is what a gate executor reports: a measured score on the 0-100
// scale plus ordered human-readable findings. The verdict is derived by the
// caller from the gate's configured thresholds.
type Outcome struct {
	Measured float64
	Details  []string
}

// Executor runs one gate against a production snapshot. Executors must not
// mutate the snapshot and must honor context cancellation when they perform
// external lookups.
type Executor interface {
	ID() ID
	Evaluate(ctx context.Context, snap *Snapshot) (Outcome, error)
}
