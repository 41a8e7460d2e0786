package api

import (
	"time"

	"greenlight/internal/audit"
	"greenlight/internal/gates"
	"greenlight/internal/production"
)

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// ProductionView describes a production in a transport-friendly format.
type ProductionView struct {
	ID           int64            `json:"id"`
	BriefID      string           `json:"briefId"`
	Title        string           `json:"title"`
	VideoType    string           `json:"videoType"`
	Vertical     string           `json:"vertical,omitempty"`
	Status       string           `json:"status"`
	QualityScore *float64         `json:"qualityScore,omitempty"`
	QualityFlags []string         `json:"qualityFlags,omitempty"`
	Artefacts    map[string]bool  `json:"artefacts"`
	GateResults  []GateResultView `json:"gateResults,omitempty"`
	CreatedBy    string           `json:"createdBy,omitempty"`
	CreatedAt    string           `json:"createdAt,omitempty"`
	UpdatedAt    string           `json:"updatedAt,omitempty"`
}

// GateResultView describes one gate result.
type GateResultView struct {
	Gate          string   `json:"gate"`
	Verdict       string   `json:"verdict"`
	Measured      float64  `json:"measured"`
	WarnThreshold float64  `json:"warnThreshold"`
	FailThreshold float64  `json:"failThreshold"`
	Details       []string `json:"details,omitempty"`
}

// RunView describes a completed gate run.
type RunView struct {
	RunID        string           `json:"runId"`
	BriefID      string           `json:"briefId"`
	Aggregate    string           `json:"aggregate"`
	QualityScore float64          `json:"qualityScore"`
	Flags        []string         `json:"flags,omitempty"`
	Results      []GateResultView `json:"results"`
	StartedAt    string           `json:"startedAt"`
	CompletedAt  string           `json:"completedAt"`
}

// AuditEventView describes one audit trail entry.
type AuditEventView struct {
	ID        string `json:"id"`
	BriefID   string `json:"briefId"`
	Seq       int64  `json:"seq"`
	Kind      string `json:"kind"`
	Payload   string `json:"payload,omitempty"`
	Actor     string `json:"actor,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// ProductionListResponse wraps a collection of productions.
type ProductionListResponse struct {
	Items []ProductionView `json:"items"`
}

// FromProduction converts a production record into its transport form.
func FromProduction(p *production.Production) (ProductionView, error) {
	view := ProductionView{
		ID:           p.ID,
		BriefID:      p.BriefID,
		Title:        p.Title,
		VideoType:    string(p.VideoType),
		Vertical:     p.Vertical,
		Status:       string(p.Status),
		QualityScore: p.QualityScore,
		QualityFlags: p.QualityFlags,
		CreatedBy:    p.CreatedBy,
		CreatedAt:    formatTime(p.CreatedAt),
		UpdatedAt:    formatTime(p.UpdatedAt),
		Artefacts: map[string]bool{
			"claimTable":        p.ClaimTableJSON != "",
			"evidencePack":      p.EvidencePackJSON != "",
			"disclaimerPlan":    p.DisclaimerPlanJSON != "",
			"approvalRecord":    p.ApprovalRecordJSON != "",
			"knowledgeContract": p.KnowledgeContractJSON != "",
		},
	}

	results, err := gates.DecodeResults(p.GateResultsJSON)
	if err != nil {
		return ProductionView{}, err
	}
	for _, result := range results {
		view.GateResults = append(view.GateResults, fromResult(result))
	}
	return view, nil
}

// FromRun converts a gate run into its transport form.
func FromRun(run *gates.Run) RunView {
	view := RunView{
		RunID:        run.RunID,
		BriefID:      run.BriefID,
		Aggregate:    string(run.Aggregate),
		QualityScore: run.QualityScore,
		Flags:        run.Flags,
		StartedAt:    formatTime(run.StartedAt),
		CompletedAt:  formatTime(run.CompletedAt),
	}
	for _, result := range run.Results {
		view.Results = append(view.Results, fromResult(result))
	}
	return view
}

// FromAuditEvent converts an audit event into its transport form.
func FromAuditEvent(event audit.Event) AuditEventView {
	return AuditEventView{
		ID:        event.ID,
		BriefID:   event.BriefID,
		Seq:       event.Seq,
		Kind:      string(event.Kind),
		Payload:   event.PayloadJSON,
		Actor:     event.Actor,
		CreatedAt: formatTime(event.CreatedAt),
	}
}

func fromResult(result gates.Result) GateResultView {
	return GateResultView{
		Gate:          string(result.Gate),
		Verdict:       string(result.Verdict),
		Measured:      result.Measured,
		WarnThreshold: result.WarnThreshold,
		FailThreshold: result.FailThreshold,
		Details:       result.Details,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}
