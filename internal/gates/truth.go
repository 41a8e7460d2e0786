package gates

import (
	"context"
	"fmt"

	"greenlight/internal/knowledge"
	"greenlight/internal/services"
)

// TruthGate verifies that every claim is backed by an evidence pack entry,
// corroborated by the knowledge corpus, and consistent with the knowledge
// contract. A contradiction with a contracted fact zeroes the measured score.
type TruthGate struct {
	corpus knowledge.Corpus
}

// NewTruthGate builds the truth gate against a corpus lookup.
func NewTruthGate(corpus knowledge.Corpus) *TruthGate {
	return &TruthGate{corpus: corpus}
}

func (g *TruthGate) ID() ID { return GateTruth }

func (g *TruthGate) Evaluate(ctx context.Context, snap *Snapshot) (Outcome, error) {
	if snap.ClaimTable == nil || len(snap.ClaimTable.Rows) == 0 {
		return Outcome{Measured: 0, Details: []string{"claim table is missing; no claims can be verified"}}, nil
	}

	var details []string
	supported := 0
	contradicted := false
	total := len(snap.ClaimTable.Rows)

	for _, claim := range snap.ClaimTable.Rows {
		backed := false
		if snap.EvidencePack != nil {
			for _, ref := range claim.SupportRefs {
				if snap.EvidencePack.HasRef(ref) {
					backed = true
					break
				}
			}
		}
		if !backed {
			details = append(details, fmt.Sprintf("claim %s has no resolvable evidence pack entry", claim.ID))
		}

		refs, err := g.corpus.FindSupport(ctx, claim.Text)
		if err != nil {
			return Outcome{}, services.Wrap(services.ErrDependency, "truth", "find support", fmt.Sprintf("claim %s", claim.ID), err)
		}
		corroborated := len(refs) > 0
		if !corroborated {
			details = append(details, fmt.Sprintf("claim %s is not corroborated by the knowledge corpus", claim.ID))
		}

		if snap.KnowledgeContract != nil {
			for key, asserted := range claim.Assertions {
				contracted, ok := snap.KnowledgeContract.Lookup(key)
				if ok && contracted != asserted {
					contradicted = true
					details = append(details, fmt.Sprintf("claim %s contradicts contract fact %s: asserts %q, contract says %q", claim.ID, key, asserted, contracted))
				}
			}
		}

		if backed && corroborated {
			supported++
		}
	}

	measured := 100 * float64(supported) / float64(total)
	if contradicted {
		measured = 0
	}
	return Outcome{Measured: measured, Details: details}, nil
}
