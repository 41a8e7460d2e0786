package api

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"greenlight/internal/artefact"
	"greenlight/internal/config"
	"greenlight/internal/production"
	"greenlight/internal/services"
)

// Brief is the JSON document a producer hands to `greenlight add`. It carries
// the production fields plus whichever artefacts exist at import time; the
// rest arrive later through the surrounding workflow.
type Brief struct {
	BriefID    string                `json:"brief_id"`
	Title      string                `json:"title"`
	VideoType  string                `json:"video_type"`
	Vertical   string                `json:"vertical"`
	ScriptText string                `json:"script_text"`
	Render     production.RenderMeta `json:"render"`
	Assets     []production.Asset    `json:"assets"`

	ClaimTable        *artefact.ClaimTable        `json:"claim_table,omitempty"`
	EvidencePack      *artefact.EvidencePack      `json:"evidence_pack,omitempty"`
	DisclaimerPlan    *artefact.DisclaimerPlan    `json:"disclaimer_plan,omitempty"`
	ApprovalRecord    *artefact.ApprovalRecord    `json:"approval_record,omitempty"`
	KnowledgeContract *artefact.KnowledgeContract `json:"knowledge_contract,omitempty"`

	CreatedBy string `json:"created_by"`
}

// ImportProductionRequest carries the inputs for ImportProduction.
type ImportProductionRequest struct {
	Config    *config.Config
	BriefPath string
}

// ImportProduction reads a brief file and creates a draft production from it.
// A brief whose id is already tracked is rejected as a conflict.
func ImportProduction(ctx context.Context, req ImportProductionRequest) (ProductionView, error) {
	cfg := req.Config
	if cfg == nil {
		return ProductionView{}, fmt.Errorf("configuration is required")
	}

	data, err := os.ReadFile(req.BriefPath)
	if err != nil {
		return ProductionView{}, fmt.Errorf("read brief: %w", err)
	}
	var brief Brief
	if err := json.Unmarshal(data, &brief); err != nil {
		return ProductionView{}, services.Wrap(services.ErrValidation, "api", "import", "brief is not valid JSON", err)
	}

	p, err := brief.toProduction()
	if err != nil {
		return ProductionView{}, err
	}

	store, err := production.Open(cfg)
	if err != nil {
		return ProductionView{}, fmt.Errorf("open production store: %w", err)
	}
	defer store.Close()

	existing, err := store.GetByBrief(ctx, p.BriefID)
	if err != nil {
		return ProductionView{}, err
	}
	if existing != nil {
		return ProductionView{}, services.Wrap(services.ErrConflict, "api", "import", fmt.Sprintf("brief %s is already tracked as production %d", p.BriefID, existing.ID), nil)
	}

	if err := store.Create(ctx, p); err != nil {
		return ProductionView{}, err
	}
	return FromProduction(p)
}

func (b *Brief) toProduction() (*production.Production, error) {
	briefID := strings.TrimSpace(b.BriefID)
	if briefID == "" {
		return nil, services.Wrap(services.ErrValidation, "api", "import", "brief_id is required", nil)
	}
	videoType, ok := production.ParseVideoType(b.VideoType)
	if !ok {
		return nil, services.Wrap(services.ErrValidation, "api", "import", fmt.Sprintf("unknown video_type %q", b.VideoType), nil)
	}

	p := &production.Production{
		BriefID:    briefID,
		Title:      strings.TrimSpace(b.Title),
		VideoType:  videoType,
		Vertical:   strings.TrimSpace(b.Vertical),
		Status:     production.StatusDraft,
		ScriptText: b.ScriptText,
		CreatedBy:  strings.TrimSpace(b.CreatedBy),
	}
	if err := p.SetRenderMeta(b.Render); err != nil {
		return nil, err
	}
	if err := p.SetAssets(b.Assets); err != nil {
		return nil, err
	}
	if err := p.SetClaimTable(b.ClaimTable); err != nil {
		return nil, err
	}
	if err := p.SetEvidencePack(b.EvidencePack); err != nil {
		return nil, err
	}
	if err := p.SetDisclaimerPlan(b.DisclaimerPlan); err != nil {
		return nil, err
	}
	if err := p.SetApprovalRecord(b.ApprovalRecord); err != nil {
		return nil, err
	}
	if err := p.SetKnowledgeContract(b.KnowledgeContract); err != nil {
		return nil, err
	}
	return p, nil
}
