package gates

import (
	"testing"

	"greenlight/internal/config"
)

func defaultDefinitions() []Definition {
	cfg := config.Default()
	return Definitions(&cfg)
}

func TestVerdictFor(t *testing.T) {
	def := Definition{WarnThreshold: 80, FailThreshold: 50}

	tests := []struct {
		name     string
		measured float64
		want     Verdict
	}{
		{"above warn threshold passes", 95, VerdictPass},
		{"exactly warn threshold passes", 80, VerdictPass},
		{"between thresholds warns", 65, VerdictWarn},
		{"exactly fail threshold warns", 50, VerdictWarn},
		{"below fail threshold fails", 20, VerdictFail},
		{"zero fails", 0, VerdictFail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerdictFor(tt.measured, def); got != tt.want {
				t.Fatalf("VerdictFor(%v) = %s, want %s", tt.measured, got, tt.want)
			}
		})
	}
}

func TestAggregateVerdict(t *testing.T) {
	defs := defaultDefinitions()

	tests := []struct {
		name    string
		results []Result
		want    Verdict
	}{
		{
			name: "all passing",
			results: []Result{
				{Gate: GateTruth, Verdict: VerdictPass},
				{Gate: GateSafety, Verdict: VerdictPass},
				{Gate: GateFinalQA, Verdict: VerdictPass},
			},
			want: VerdictPass,
		},
		{
			name: "soft gate warn downgrades",
			results: []Result{
				{Gate: GateTruth, Verdict: VerdictWarn},
				{Gate: GateSafety, Verdict: VerdictPass},
				{Gate: GateFinalQA, Verdict: VerdictPass},
			},
			want: VerdictWarn,
		},
		{
			name: "soft gate fail only warns",
			results: []Result{
				{Gate: GateBrand, Verdict: VerdictFail},
				{Gate: GateSafety, Verdict: VerdictPass},
				{Gate: GateFinalQA, Verdict: VerdictWarn},
			},
			want: VerdictWarn,
		},
		{
			name: "strict gate fail blocks",
			results: []Result{
				{Gate: GateTruth, Verdict: VerdictPass},
				{Gate: GateSafety, Verdict: VerdictFail},
			},
			want: VerdictFail,
		},
		{
			name: "visual role fail blocks",
			results: []Result{
				{Gate: GateVisualRole, Verdict: VerdictFail},
			},
			want: VerdictFail,
		},
		{
			name: "final qa fail blocks",
			results: []Result{
				{Gate: GateTruth, Verdict: VerdictPass},
				{Gate: GateFinalQA, Verdict: VerdictFail},
			},
			want: VerdictFail,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AggregateVerdict(defs, tt.results); got != tt.want {
				t.Fatalf("AggregateVerdict() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestQualityScoreWeighting(t *testing.T) {
	defs := []Definition{
		{ID: GateTruth, Weight: 2},
		{ID: GateBrand, Weight: 1},
	}
	results := []Result{
		{Gate: GateTruth, Measured: 90},
		{Gate: GateBrand, Measured: 60},
	}

	// (2*90 + 1*60) / 3 = 80
	if got := QualityScore(defs, results); got != 80 {
		t.Fatalf("QualityScore() = %v, want 80", got)
	}
}

func TestQualityScoreClampsMeasured(t *testing.T) {
	defs := []Definition{{ID: GateTruth, Weight: 1}}
	results := []Result{{Gate: GateTruth, Measured: 150}}
	if got := QualityScore(defs, results); got != 100 {
		t.Fatalf("QualityScore() = %v, want clamp to 100", got)
	}
}

func TestQualityScoreDeterministic(t *testing.T) {
	defs := defaultDefinitions()
	results := []Result{
		{Gate: GateTruth, Measured: 88},
		{Gate: GateSafety, Measured: 100},
		{Gate: GateBrand, Measured: 72},
		{Gate: GatePlatform, Measured: 100},
		{Gate: GateReuseRisk, Measured: 100},
		{Gate: GateVisualRole, Measured: 100},
		{Gate: GateFinalQA, Measured: 83},
	}

	first := QualityScore(defs, results)
	for i := 0; i < 10; i++ {
		if got := QualityScore(defs, results); got != first {
			t.Fatalf("QualityScore() varied across identical inputs: %v vs %v", got, first)
		}
	}
}

func TestWarnFlags(t *testing.T) {
	defs := defaultDefinitions()
	results := []Result{
		{Gate: GateTruth, Verdict: VerdictWarn},
		{Gate: GateBrand, Verdict: VerdictFail},
		{Gate: GateSafety, Verdict: VerdictFail},
		{Gate: GatePlatform, Verdict: VerdictPass},
		{Gate: GateFinalQA, Verdict: VerdictWarn},
	}

	flags := WarnFlags(defs, results)
	want := []string{"truth_warn", "brand_fail"}
	if len(flags) != len(want) {
		t.Fatalf("WarnFlags() = %v, want %v", flags, want)
	}
	for i, flag := range want {
		if flags[i] != flag {
			t.Fatalf("WarnFlags()[%d] = %s, want %s", i, flags[i], flag)
		}
	}
}

func TestEncodeDecodeResults(t *testing.T) {
	results := []Result{
		{Gate: GateTruth, Verdict: VerdictPass, Measured: 92, WarnThreshold: 80, FailThreshold: 50},
		{Gate: GateSafety, Verdict: VerdictFail, Details: []string{"regulated claim c2 has no disclaimer"}},
	}

	raw, err := EncodeResults(results)
	if err != nil {
		t.Fatalf("EncodeResults: %v", err)
	}
	decoded, err := DecodeResults(raw)
	if err != nil {
		t.Fatalf("DecodeResults: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d results, want 2", len(decoded))
	}
	if decoded[0].Gate != GateTruth || decoded[0].Measured != 92 {
		t.Fatalf("first result mismatch: %+v", decoded[0])
	}
	if decoded[1].Verdict != VerdictFail || len(decoded[1].Details) != 1 {
		t.Fatalf("second result mismatch: %+v", decoded[1])
	}
}

func TestDecodeResultsEmpty(t *testing.T) {
	results, err := DecodeResults("")
	if err != nil {
		t.Fatalf("DecodeResults(\"\"): %v", err)
	}
	if results != nil {
		t.Fatalf("expected nil results for empty column, got %v", results)
	}
}

func TestDefinitionsOrderAndStrictness(t *testing.T) {
	defs := defaultDefinitions()
	if len(defs) != 7 {
		t.Fatalf("expected 7 definitions, got %d", len(defs))
	}
	if defs[len(defs)-1].ID != GateFinalQA {
		t.Fatalf("final qa must be last, got %s", defs[len(defs)-1].ID)
	}
	for _, def := range defs {
		strict := def.ID == GateSafety || def.ID == GateVisualRole
		if def.Strict != strict {
			t.Fatalf("gate %s strictness = %v, want %v", def.ID, def.Strict, strict)
		}
	}
}
