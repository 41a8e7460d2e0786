// Package services defines shared utilities consumed by the gate pipeline
// and its callers.
//
// Key responsibilities:
//   - Context helpers that stamp production identifiers, gate names, and
//     correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     into the pipeline's error taxonomy (validation, dependency, conflict,
//     illegal transition).
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability, retries) stays uniform across the system.
package services
