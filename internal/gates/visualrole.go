package gates

import (
	"context"
	"fmt"
	"strings"

	"greenlight/internal/production"
)

// VisualRoleGate verifies that every visual bound to a claim actually plays
// its declared narrative role: the referenced claim must exist and the
// asset's subject must match the claim's subject. Strict: a mismatch shown as
// evidence is never overridable.
type VisualRoleGate struct{}

// NewVisualRoleGate builds the visual-role gate.
func NewVisualRoleGate() *VisualRoleGate { return &VisualRoleGate{} }

func (g *VisualRoleGate) ID() ID { return GateVisualRole }

func (g *VisualRoleGate) Evaluate(_ context.Context, snap *Snapshot) (Outcome, error) {
	var bound []production.Asset
	for _, asset := range snap.Assets {
		if asset.Kind == production.AssetVisual && strings.TrimSpace(asset.ClaimID) != "" {
			bound = append(bound, asset)
		}
	}
	if len(bound) == 0 {
		return Outcome{Measured: 100}, nil
	}
	if snap.ClaimTable == nil {
		return Outcome{Measured: 0, Details: []string{"visuals are bound to claims but the claim table is missing"}}, nil
	}

	claims := make(map[string]string, len(snap.ClaimTable.Rows))
	for _, claim := range snap.ClaimTable.Rows {
		claims[strings.ToLower(strings.TrimSpace(claim.ID))] = claim.Subject
	}

	var details []string
	matched := 0
	for _, asset := range bound {
		subject, ok := claims[strings.ToLower(strings.TrimSpace(asset.ClaimID))]
		if !ok {
			details = append(details, fmt.Sprintf("asset %s is bound to unknown claim %s", asset.ID, asset.ClaimID))
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(subject), strings.TrimSpace(asset.Subject)) {
			details = append(details, fmt.Sprintf("asset %s shown as %q depicts %q but claim %s is about %q", asset.ID, asset.Role, asset.Subject, asset.ClaimID, subject))
			continue
		}
		matched++
	}

	return Outcome{Measured: 100 * float64(matched) / float64(len(bound)), Details: details}, nil
}
