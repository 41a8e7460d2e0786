// Package proclock serializes gate runs and status transitions per
// production.
//
// The lease is a flock-backed lock file named after the brief id. File locks
// are released by the kernel when the holding process dies, which gives the
// lease its auto-expiry property without a background reaper.
package proclock
