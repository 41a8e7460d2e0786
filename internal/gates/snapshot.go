package gates

import (
	"fmt"
	"time"

	"greenlight/internal/artefact"
	"greenlight/internal/production"
)

// Snapshot is the immutable view of a production that a gate run evaluates.
// Each gate receives its own clone so executors cannot observe one another.
type Snapshot struct {
	ProductionID int64
	BriefID      string
	Title        string
	VideoType    production.VideoType
	Vertical     string
	Status       production.Status
	ScriptText   string
	Render       production.RenderMeta
	Assets       []production.Asset

	ClaimTable        *artefact.ClaimTable
	EvidencePack      *artefact.EvidencePack
	DisclaimerPlan    *artefact.DisclaimerPlan
	ApprovalRecord    *artefact.ApprovalRecord
	KnowledgeContract *artefact.KnowledgeContract

	TakenAt time.Time
}

// NewSnapshot captures the production's fields and artefacts as they exist at
// call time.
func NewSnapshot(p *production.Production) (*Snapshot, error) {
	render, err := p.RenderMeta()
	if err != nil {
		return nil, fmt.Errorf("snapshot render metadata: %w", err)
	}
	assets, err := p.Assets()
	if err != nil {
		return nil, fmt.Errorf("snapshot assets: %w", err)
	}
	claimTable, err := p.ClaimTable()
	if err != nil {
		return nil, fmt.Errorf("snapshot claim table: %w", err)
	}
	evidencePack, err := p.EvidencePack()
	if err != nil {
		return nil, fmt.Errorf("snapshot evidence pack: %w", err)
	}
	disclaimerPlan, err := p.DisclaimerPlan()
	if err != nil {
		return nil, fmt.Errorf("snapshot disclaimer plan: %w", err)
	}
	approvalRecord, err := p.ApprovalRecord()
	if err != nil {
		return nil, fmt.Errorf("snapshot approval record: %w", err)
	}
	contract, err := p.KnowledgeContract()
	if err != nil {
		return nil, fmt.Errorf("snapshot knowledge contract: %w", err)
	}

	return &Snapshot{
		ProductionID:      p.ID,
		BriefID:           p.BriefID,
		Title:             p.Title,
		VideoType:         p.VideoType,
		Vertical:          p.Vertical,
		Status:            p.Status,
		ScriptText:        p.ScriptText,
		Render:            render,
		Assets:            assets,
		ClaimTable:        claimTable,
		EvidencePack:      evidencePack,
		DisclaimerPlan:    disclaimerPlan,
		ApprovalRecord:    approvalRecord,
		KnowledgeContract: contract,
		TakenAt:           time.Now().UTC(),
	}, nil
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	cp := *s
	cp.Assets = make([]production.Asset, len(s.Assets))
	copy(cp.Assets, s.Assets)
	for i, asset := range cp.Assets {
		if len(asset.PaletteColors) > 0 {
			colors := make([]string, len(asset.PaletteColors))
			copy(colors, asset.PaletteColors)
			cp.Assets[i].PaletteColors = colors
		}
	}
	if s.ClaimTable != nil {
		table := artefact.ClaimTable{Rows: make([]artefact.Claim, len(s.ClaimTable.Rows))}
		copy(table.Rows, s.ClaimTable.Rows)
		for i, row := range table.Rows {
			if len(row.SupportRefs) > 0 {
				refs := make([]string, len(row.SupportRefs))
				copy(refs, row.SupportRefs)
				table.Rows[i].SupportRefs = refs
			}
			if len(row.Assertions) > 0 {
				assertions := make(map[string]string, len(row.Assertions))
				for k, v := range row.Assertions {
					assertions[k] = v
				}
				table.Rows[i].Assertions = assertions
			}
		}
		cp.ClaimTable = &table
	}
	if s.EvidencePack != nil {
		pack := artefact.EvidencePack{Entries: make([]artefact.Evidence, len(s.EvidencePack.Entries))}
		copy(pack.Entries, s.EvidencePack.Entries)
		cp.EvidencePack = &pack
	}
	if s.DisclaimerPlan != nil {
		plan := artefact.DisclaimerPlan{Entries: make([]artefact.Disclaimer, len(s.DisclaimerPlan.Entries))}
		copy(plan.Entries, s.DisclaimerPlan.Entries)
		cp.DisclaimerPlan = &plan
	}
	if s.ApprovalRecord != nil {
		record := artefact.ApprovalRecord{Entries: make([]artefact.Approval, len(s.ApprovalRecord.Entries))}
		copy(record.Entries, s.ApprovalRecord.Entries)
		cp.ApprovalRecord = &record
	}
	if s.KnowledgeContract != nil {
		contract := artefact.KnowledgeContract{Facts: make([]artefact.Fact, len(s.KnowledgeContract.Facts))}
		copy(contract.Facts, s.KnowledgeContract.Facts)
		cp.KnowledgeContract = &contract
	}
	return &cp
}

// Artefacts validates the snapshot's artefact set.
func (s *Snapshot) Artefacts() artefact.Set {
	return artefact.ValidateAll(s.ClaimTable, s.EvidencePack, s.DisclaimerPlan, s.ApprovalRecord, s.KnowledgeContract)
}
