package gates

import (
	"context"
	"fmt"
)

// ReuseRiskGate flags assets used more often across the catalog than the
// configured ceiling allows.
type ReuseRiskGate struct {
	maxUses int
}

// NewReuseRiskGate builds the reuse-risk gate with the configured ceiling.
func NewReuseRiskGate(maxUses int) *ReuseRiskGate {
	return &ReuseRiskGate{maxUses: maxUses}
}

func (g *ReuseRiskGate) ID() ID { return GateReuseRisk }

func (g *ReuseRiskGate) Evaluate(_ context.Context, snap *Snapshot) (Outcome, error) {
	if len(snap.Assets) == 0 {
		return Outcome{Measured: 100}, nil
	}

	var details []string
	fresh := 0
	for _, asset := range snap.Assets {
		if asset.UsageCount <= g.maxUses {
			fresh++
			continue
		}
		details = append(details, fmt.Sprintf("asset %s has been used %d times (ceiling %d)", asset.ID, asset.UsageCount, g.maxUses))
	}

	return Outcome{Measured: 100 * float64(fresh) / float64(len(snap.Assets)), Details: details}, nil
}
