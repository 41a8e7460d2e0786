package gates

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"greenlight/internal/config"
)

// ID identifies one of the seven quality gates.
type ID string

const (
	GateTruth      ID = "truth"
	GateSafety     ID = "safety"
	GateBrand      ID = "brand"
	GatePlatform   ID = "platform"
	GateReuseRisk  ID = "reuse_risk"
	GateVisualRole ID = "visual_role"
	GateFinalQA    ID = "final_qa"
)

// Verdict is the outcome of one gate execution.
type Verdict string

const (
	VerdictPass Verdict = "pass"
	VerdictWarn Verdict = "warn"
	VerdictFail Verdict = "fail"
)

// ParseVerdict converts a string into a known Verdict.
func ParseVerdict(value string) (Verdict, bool) {
	switch Verdict(strings.ToLower(strings.TrimSpace(value))) {
	case VerdictPass:
		return VerdictPass, true
	case VerdictWarn:
		return VerdictWarn, true
	case VerdictFail:
		return VerdictFail, true
	default:
		return "", false
	}
}

// Blocking reports whether the verdict blocks publication.
func (v Verdict) Blocking() bool {
	return v == VerdictFail
}

// Result is the immutable outcome of one gate execution.
type Result struct {
	Gate          ID       `json:"gate"`
	Verdict       Verdict  `json:"verdict"`
	Details       []string `json:"details,omitempty"`
	Measured      float64  `json:"measured"`
	WarnThreshold float64  `json:"warn_threshold"`
	FailThreshold float64  `json:"fail_threshold"`
}

// Run is the aggregate of all seven gate results produced atomically for one
// production snapshot.
type Run struct {
	RunID        string    `json:"run_id"`
	BriefID      string    `json:"brief_id"`
	Results      []Result  `json:"results"`
	Aggregate    Verdict   `json:"aggregate"`
	QualityScore float64   `json:"quality_score"`
	Flags        []string  `json:"flags,omitempty"`
	StartedAt    time.Time `json:"started_at"`
	CompletedAt  time.Time `json:"completed_at"`
}

// ResultFor returns the run's result for one gate.
func (r *Run) ResultFor(gate ID) (Result, bool) {
	for _, result := range r.Results {
		if result.Gate == gate {
			return result, true
		}
	}
	return Result{}, false
}

// Definition is the static declaration of one gate: identity, strictness,
// scoring weight, thresholds, and execution limits. The ordered definition
// set is fixed at orchestrator construction, never mutated at runtime.
type Definition struct {
	ID            ID
	Label         string
	Strict        bool
	Weight        float64
	WarnThreshold float64
	FailThreshold float64
	Timeout       time.Duration
	MaxAttempts   int
}

// Definitions returns the canonical ordered gate definition set built from
// configuration. Final QA is always last: it aggregates the other six.
func Definitions(cfg *config.Config) []Definition {
	build := func(id ID, label string, strict bool, settings config.GateSettings) Definition {
		return Definition{
			ID:            id,
			Label:         label,
			Strict:        strict,
			Weight:        settings.Weight,
			WarnThreshold: settings.WarnThreshold,
			FailThreshold: settings.FailThreshold,
			Timeout:       time.Duration(settings.TimeoutSeconds) * time.Second,
			MaxAttempts:   settings.MaxAttempts,
		}
	}
	return []Definition{
		build(GateTruth, "Truth", false, cfg.Gates.Truth),
		build(GateSafety, "Safety", true, cfg.Gates.Safety),
		build(GateBrand, "Brand", false, cfg.Gates.Brand),
		build(GatePlatform, "Platform", false, cfg.Gates.Platform),
		build(GateReuseRisk, "Reuse Risk", false, cfg.Gates.ReuseRisk),
		build(GateVisualRole, "Visual Role", true, cfg.Gates.VisualRole),
		build(GateFinalQA, "Final QA", false, cfg.Gates.FinalQA),
	}
}

// DefinitionFor returns the definition matching the gate id.
func DefinitionFor(defs []Definition, gate ID) (Definition, bool) {
	for _, def := range defs {
		if def.ID == gate {
			return def, true
		}
	}
	return Definition{}, false
}

// VerdictFor derives a verdict from a measured score and the gate's
// thresholds: below the fail threshold fails, below the warn threshold warns,
// at or above the warn threshold passes.
func VerdictFor(measured float64, def Definition) Verdict {
	switch {
	case measured < def.FailThreshold:
		return VerdictFail
	case measured < def.WarnThreshold:
		return VerdictWarn
	default:
		return VerdictPass
	}
}

// AggregateVerdict derives the run verdict from the full result set. A strict
// gate FAIL or a Final QA FAIL blocks; any other non-PASS result downgrades
// the run to WARN.
func AggregateVerdict(defs []Definition, results []Result) Verdict {
	aggregate := VerdictPass
	for _, result := range results {
		if result.Verdict == VerdictPass {
			continue
		}
		if result.Verdict == VerdictFail {
			def, ok := DefinitionFor(defs, result.Gate)
			if (ok && def.Strict) || result.Gate == GateFinalQA {
				return VerdictFail
			}
		}
		aggregate = VerdictWarn
	}
	return aggregate
}

// QualityScore computes the weighted mean of the measured values across all
// results. Deterministic for a fixed result set; weights come from the
// definitions.
func QualityScore(defs []Definition, results []Result) float64 {
	var sum, weightSum float64
	for _, result := range results {
		def, ok := DefinitionFor(defs, result.Gate)
		if !ok {
			continue
		}
		weight := def.Weight
		if weight <= 0 {
			weight = 1
		}
		sum += weight * clamp(result.Measured, 0, 100)
		weightSum += weight
	}
	if weightSum == 0 {
		return 0
	}
	return sum / weightSum
}

// WarnFlags returns the quality flags contributed by non-passing soft gates.
func WarnFlags(defs []Definition, results []Result) []string {
	var flags []string
	for _, result := range results {
		if result.Verdict == VerdictPass || result.Gate == GateFinalQA {
			continue
		}
		def, ok := DefinitionFor(defs, result.Gate)
		if ok && def.Strict && result.Verdict == VerdictFail {
			continue
		}
		flags = append(flags, fmt.Sprintf("%s_%s", result.Gate, result.Verdict))
	}
	return flags
}

// EncodeResults serializes a result set for the production record.
func EncodeResults(results []Result) (string, error) {
	data, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("encode gate results: %w", err)
	}
	return string(data), nil
}

// DecodeResults deserializes the production record's result column. An empty
// column means no run has happened yet.
func DecodeResults(raw string) ([]Result, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var results []Result
	if err := json.Unmarshal([]byte(raw), &results); err != nil {
		return nil, fmt.Errorf("decode gate results: %w", err)
	}
	return results, nil
}

func clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
