package gates

import (
	"context"
	"fmt"
)

// SafetyGate checks that no regulated claim category (medical, legal,
// safety-absolute) appears without a covering disclaimer. Strict: a failure
// here can never be overridden.
type SafetyGate struct{}

// NewSafetyGate builds the safety gate.
func NewSafetyGate() *SafetyGate { return &SafetyGate{} }

func (g *SafetyGate) ID() ID { return GateSafety }

func (g *SafetyGate) Evaluate(_ context.Context, snap *Snapshot) (Outcome, error) {
	if snap.ClaimTable == nil || len(snap.ClaimTable.Rows) == 0 {
		return Outcome{Measured: 100, Details: []string{"claim table is missing; no regulated claims to check"}}, nil
	}

	var details []string
	regulated := 0
	covered := 0
	for _, claim := range snap.ClaimTable.Rows {
		if !claim.Regulated() {
			continue
		}
		regulated++
		if snap.DisclaimerPlan != nil && snap.DisclaimerPlan.Covers(claim.ID) {
			covered++
			continue
		}
		details = append(details, fmt.Sprintf("regulated claim %s (%s) has no disclaimer", claim.ID, claim.Category))
	}

	if regulated == 0 {
		return Outcome{Measured: 100}, nil
	}
	return Outcome{Measured: 100 * float64(covered) / float64(regulated), Details: details}, nil
}
