// Package gates implements the seven quality gates and their shared
// vocabulary: verdicts, results, static gate definitions, and the immutable
// production snapshot gates evaluate against.
//
// Gates are pure functions over the snapshot. Each executor reports a
// measured score and findings; the verdict falls out of the gate's configured
// thresholds. Strictness is data on the definition, consulted by the
// aggregation rules and the override policy rather than hard-coded by name.
package gates
