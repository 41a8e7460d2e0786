package gates

import (
	"fmt"

	"greenlight/internal/artefact"
)

// FinalQA derives the seventh gate result from the other six plus the
// artefact validation set. It aggregates; it does not re-derive facts:
//   - any artefact missing or malformed fails the gate,
//   - any strict gate failure fails the gate,
//   - otherwise any non-passing soft gate warns,
//   - otherwise the gate passes.
func FinalQA(defs []Definition, results []Result, artefacts artefact.Set) Result {
	def, _ := DefinitionFor(defs, GateFinalQA)
	result := Result{
		Gate:          GateFinalQA,
		WarnThreshold: def.WarnThreshold,
		FailThreshold: def.FailThreshold,
	}

	blocking := false
	warned := false

	for _, kind := range artefacts.Missing() {
		result.Details = append(result.Details, fmt.Sprintf("mandatory artefact %s is missing or malformed", kind))
		blocking = true
	}
	for _, v := range artefacts.All() {
		if v.OK() {
			continue
		}
		for _, issue := range v.Issues {
			result.Details = append(result.Details, issue)
		}
	}

	passing := 0
	for _, gateResult := range results {
		if gateResult.Gate == GateFinalQA {
			continue
		}
		switch gateResult.Verdict {
		case VerdictPass:
			passing++
		case VerdictFail:
			gateDef, ok := DefinitionFor(defs, gateResult.Gate)
			if ok && gateDef.Strict {
				result.Details = append(result.Details, fmt.Sprintf("strict gate %s failed", gateResult.Gate))
				blocking = true
			} else {
				result.Details = append(result.Details, fmt.Sprintf("gate %s failed", gateResult.Gate))
				warned = true
			}
		case VerdictWarn:
			result.Details = append(result.Details, fmt.Sprintf("gate %s warned", gateResult.Gate))
			warned = true
		}
	}

	if count := len(results); count > 0 {
		result.Measured = 100 * float64(passing) / float64(count)
	}
	if !artefacts.Complete() {
		result.Measured = 0
	}

	switch {
	case blocking:
		result.Verdict = VerdictFail
	case warned:
		result.Verdict = VerdictWarn
	default:
		result.Verdict = VerdictPass
	}
	return result
}
