// Package logging centralizes slog construction and the structured field
// vocabulary used across the pipeline.
//
// Loggers are built from config (console or JSON handler, optional log file
// fanned in alongside stdout) and enriched with context-derived attributes:
// brief id, gate, and correlation id. Components should use the typed attr
// helpers rather than raw slog calls so field names stay consistent.
package logging
