package testsupport

import (
	"testing"
	"time"

	"greenlight/internal/artefact"
	"greenlight/internal/production"
)

// ProductionOption customizes the seeded production.
type ProductionOption func(*production.Production)

// SeedProduction builds a fully-populated production in qa status: complete
// artefact set, two claims (one regulated and disclaimed), brand-conforming
// assets, and render metadata that satisfies the default youtube target.
func SeedProduction(t testing.TB, briefID string, opts ...ProductionOption) *production.Production {
	t.Helper()

	p := &production.Production{
		BriefID:    briefID,
		Title:      "Alternator Deep Dive",
		VideoType:  production.VideoFoundational,
		Vertical:   "automotive",
		Status:     production.StatusQA,
		ScriptText: "The alternator ships with a two-year warranty. Relieves squealing within a week of replacement.",
		CreatedBy:  "producer-1",
	}

	if err := p.SetRenderMeta(production.RenderMeta{
		Format:          "mp4",
		DurationSeconds: 120,
		Width:           1920,
		Height:          1080,
		Platform:        "youtube",
	}); err != nil {
		t.Fatalf("seed render meta: %v", err)
	}

	if err := p.SetAssets([]production.Asset{
		{
			ID:            "a1",
			Name:          "gl-alternator-closeup",
			Kind:          production.AssetVisual,
			Role:          "the defective part",
			ClaimID:       "c1",
			Subject:       "alternator",
			PaletteColors: []string{"#0B1F3A", "#F2A900"},
			UsageCount:    2,
		},
		{
			ID:         "a2",
			Name:       "gl-voiceover-main",
			Kind:       production.AssetVoice,
			Voice:      "aria",
			UsageCount: 1,
		},
	}); err != nil {
		t.Fatalf("seed assets: %v", err)
	}

	if err := p.SetClaimTable(&artefact.ClaimTable{Rows: []artefact.Claim{
		{
			ID:          "c1",
			Text:        "The alternator ships with a two-year warranty",
			Subject:     "alternator",
			SupportRefs: []string{"ev1"},
			Assertions:  map[string]string{"warranty_years": "2"},
		},
		{
			ID:          "c2",
			Text:        "Relieves squealing within a week of replacement",
			Category:    artefact.CategorySafetyAbsolute,
			Subject:     "alternator",
			SupportRefs: []string{"ev2"},
		},
	}}); err != nil {
		t.Fatalf("seed claim table: %v", err)
	}

	if err := p.SetEvidencePack(&artefact.EvidencePack{Entries: []artefact.Evidence{
		{Ref: "ev1", Source: "manufacturer spec sheet"},
		{Ref: "ev2", Source: "service bulletin 2026-14"},
	}}); err != nil {
		t.Fatalf("seed evidence pack: %v", err)
	}

	if err := p.SetDisclaimerPlan(&artefact.DisclaimerPlan{Entries: []artefact.Disclaimer{
		{ClaimID: "c2", Text: "Results depend on correct installation.", Placement: "on-screen"},
	}}); err != nil {
		t.Fatalf("seed disclaimer plan: %v", err)
	}

	if err := p.SetApprovalRecord(&artefact.ApprovalRecord{Entries: []artefact.Approval{
		{Stage: "script", Approver: "dana", ApprovedAt: time.Now().UTC()},
	}}); err != nil {
		t.Fatalf("seed approval record: %v", err)
	}

	if err := p.SetKnowledgeContract(&artefact.KnowledgeContract{Facts: []artefact.Fact{
		{Key: "warranty_years", Value: "2", Subject: "alternator"},
	}}); err != nil {
		t.Fatalf("seed knowledge contract: %v", err)
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithStatus overrides the seeded production's status.
func WithStatus(status production.Status) ProductionOption {
	return func(p *production.Production) {
		p.Status = status
	}
}

// WithoutEvidencePack removes the evidence pack artefact.
func WithoutEvidencePack() ProductionOption {
	return func(p *production.Production) {
		p.EvidencePackJSON = ""
	}
}
