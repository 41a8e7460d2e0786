// Package config loads, normalizes, and validates greenlight configuration.
//
// Configuration sections by subsystem:
//   - Paths: data/log directories and the knowledge corpus location
//   - Gates: per-gate thresholds, weights, timeouts, and retry budgets
//   - Brand: palette, voice roster, and asset naming rules consumed by G3
//   - Platforms: per-platform output constraints consumed by G4
//   - ReuseRisk: asset reuse ceiling consumed by G5
//   - Notifications: ntfy push notification settings
//   - Logging: log format and level
//
// Load applies defaults, decodes an optional TOML file, expands paths, and
// validates the result. Threshold and weight values are tunable operational
// constants, not business rules baked into the gates.
package config
