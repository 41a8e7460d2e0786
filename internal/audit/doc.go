// Package audit persists the append-only event trail for the gate pipeline.
//
// Each gate run, lifecycle transition, and manual override is a discrete
// immutable event keyed by production with a monotonically increasing
// per-production sequence number. The trail is independently owned: it
// outlives production mutations and is never edited, only appended.
package audit
