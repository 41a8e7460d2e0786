// Package orchestrator executes gate runs: it leases the production, snapshots
// its state, fans the six primary gates out across goroutines, joins them into
// Final QA, and persists the aggregated result set atomically.
package orchestrator
