// Package api exposes the one-shot workflows the CLI calls: importing a
// production brief, running gates, inspecting results and audit history,
// recording overrides, and advancing lifecycle status. Each workflow opens
// the stores it needs, performs one operation, and releases everything, so
// commands stay independent of process lifetime.
//
// DTOs carry camelCase JSON tags so `--json` output is consumable without
// coupling callers to internal types.
package api
