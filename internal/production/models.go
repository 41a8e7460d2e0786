package production

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"greenlight/internal/artefact"
)

// Status represents the lifecycle stage of a production.
type Status string

const (
	StatusDraft           Status = "draft"
	StatusPendingReview   Status = "pending_review"
	StatusScriptApproved  Status = "script_approved"
	StatusStoryboard      Status = "storyboard"
	StatusRendering       Status = "rendering"
	StatusQA              Status = "qa"
	StatusQAFailed        Status = "qa_failed"
	StatusReadyForPublish Status = "ready_for_publish"
	StatusPublished       Status = "published"
	StatusArchived        Status = "archived"
)

var allStatuses = []Status{
	StatusDraft,
	StatusPendingReview,
	StatusScriptApproved,
	StatusStoryboard,
	StatusRendering,
	StatusQA,
	StatusQAFailed,
	StatusReadyForPublish,
	StatusPublished,
	StatusArchived,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsTerminal reports whether no further transitions leave the status.
func (s Status) IsTerminal() bool {
	return s == StatusArchived
}

// VideoType is the closed set of production formats.
type VideoType string

const (
	VideoFoundational VideoType = "foundational"
	VideoProductRange VideoType = "product-range"
	VideoShort        VideoType = "short"
)

// ParseVideoType converts a string into a known VideoType.
func ParseVideoType(value string) (VideoType, bool) {
	switch VideoType(strings.ToLower(strings.TrimSpace(value))) {
	case VideoFoundational:
		return VideoFoundational, true
	case VideoProductRange:
		return VideoProductRange, true
	case VideoShort:
		return VideoShort, true
	default:
		return "", false
	}
}

// RenderMeta describes the rendered output as reported by the asset subsystem.
type RenderMeta struct {
	Format          string  `json:"format"`
	DurationSeconds float64 `json:"duration_seconds"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	Platform        string  `json:"platform"`
}

// AspectRatio returns the reduced width:height ratio, or "" when unknown.
func (r RenderMeta) AspectRatio() string {
	if r.Width <= 0 || r.Height <= 0 {
		return ""
	}
	d := gcd(r.Width, r.Height)
	return fmt.Sprintf("%d:%d", r.Width/d, r.Height/d)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// AssetKind distinguishes visual footage from voice tracks.
type AssetKind string

const (
	AssetVisual AssetKind = "visual"
	AssetVoice  AssetKind = "voice"
)

// Asset is one visual or voice element used by the production.
type Asset struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Kind          AssetKind `json:"kind"`
	Role          string    `json:"role,omitempty"`
	ClaimID       string    `json:"claim_id,omitempty"`
	Subject       string    `json:"subject,omitempty"`
	PaletteColors []string  `json:"palette_colors,omitempty"`
	Voice         string    `json:"voice,omitempty"`
	UsageCount    int       `json:"usage_count"`
}

// Production is the unit of work tracked through the gate pipeline.
type Production struct {
	ID           int64
	BriefID      string
	Title        string
	VideoType    VideoType
	Vertical     string
	Status       Status
	QualityScore *float64
	QualityFlags []string
	ScriptText   string

	RenderMetaJSON        string
	AssetsJSON            string
	ClaimTableJSON        string
	EvidencePackJSON      string
	DisclaimerPlanJSON    string
	ApprovalRecordJSON    string
	KnowledgeContractJSON string
	GateResultsJSON       string

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RenderMeta decodes the render metadata column.
func (p *Production) RenderMeta() (RenderMeta, error) {
	var meta RenderMeta
	if strings.TrimSpace(p.RenderMetaJSON) == "" {
		return meta, nil
	}
	if err := json.Unmarshal([]byte(p.RenderMetaJSON), &meta); err != nil {
		return meta, fmt.Errorf("decode render metadata: %w", err)
	}
	return meta, nil
}

// SetRenderMeta encodes the render metadata column.
func (p *Production) SetRenderMeta(meta RenderMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode render metadata: %w", err)
	}
	p.RenderMetaJSON = string(data)
	return nil
}

// Assets decodes the asset list column.
func (p *Production) Assets() ([]Asset, error) {
	if strings.TrimSpace(p.AssetsJSON) == "" {
		return nil, nil
	}
	var assets []Asset
	if err := json.Unmarshal([]byte(p.AssetsJSON), &assets); err != nil {
		return nil, fmt.Errorf("decode assets: %w", err)
	}
	return assets, nil
}

// SetAssets encodes the asset list column.
func (p *Production) SetAssets(assets []Asset) error {
	data, err := json.Marshal(assets)
	if err != nil {
		return fmt.Errorf("encode assets: %w", err)
	}
	p.AssetsJSON = string(data)
	return nil
}

// ClaimTable decodes the claim table artefact, or nil when absent.
func (p *Production) ClaimTable() (*artefact.ClaimTable, error) {
	return decodeArtefact[artefact.ClaimTable](p.ClaimTableJSON, "claim table")
}

// SetClaimTable encodes the claim table artefact. A nil value clears it.
func (p *Production) SetClaimTable(table *artefact.ClaimTable) error {
	return encodeArtefact(&p.ClaimTableJSON, table, "claim table")
}

// EvidencePack decodes the evidence pack artefact, or nil when absent.
func (p *Production) EvidencePack() (*artefact.EvidencePack, error) {
	return decodeArtefact[artefact.EvidencePack](p.EvidencePackJSON, "evidence pack")
}

// SetEvidencePack encodes the evidence pack artefact. A nil value clears it.
func (p *Production) SetEvidencePack(pack *artefact.EvidencePack) error {
	return encodeArtefact(&p.EvidencePackJSON, pack, "evidence pack")
}

// DisclaimerPlan decodes the disclaimer plan artefact, or nil when absent.
func (p *Production) DisclaimerPlan() (*artefact.DisclaimerPlan, error) {
	return decodeArtefact[artefact.DisclaimerPlan](p.DisclaimerPlanJSON, "disclaimer plan")
}

// SetDisclaimerPlan encodes the disclaimer plan artefact. A nil value clears it.
func (p *Production) SetDisclaimerPlan(plan *artefact.DisclaimerPlan) error {
	return encodeArtefact(&p.DisclaimerPlanJSON, plan, "disclaimer plan")
}

// ApprovalRecord decodes the approval record artefact, or nil when absent.
func (p *Production) ApprovalRecord() (*artefact.ApprovalRecord, error) {
	return decodeArtefact[artefact.ApprovalRecord](p.ApprovalRecordJSON, "approval record")
}

// SetApprovalRecord encodes the approval record artefact. A nil value clears it.
func (p *Production) SetApprovalRecord(record *artefact.ApprovalRecord) error {
	return encodeArtefact(&p.ApprovalRecordJSON, record, "approval record")
}

// KnowledgeContract decodes the knowledge contract artefact, or nil when absent.
func (p *Production) KnowledgeContract() (*artefact.KnowledgeContract, error) {
	return decodeArtefact[artefact.KnowledgeContract](p.KnowledgeContractJSON, "knowledge contract")
}

// SetKnowledgeContract encodes the knowledge contract artefact. A nil value clears it.
func (p *Production) SetKnowledgeContract(contract *artefact.KnowledgeContract) error {
	return encodeArtefact(&p.KnowledgeContractJSON, contract, "knowledge contract")
}

// AddQualityFlags merges new soft-warning flags, preserving order and
// discarding duplicates.
func (p *Production) AddQualityFlags(flags ...string) {
	seen := make(map[string]struct{}, len(p.QualityFlags)+len(flags))
	for _, flag := range p.QualityFlags {
		seen[flag] = struct{}{}
	}
	for _, flag := range flags {
		flag = strings.TrimSpace(flag)
		if flag == "" {
			continue
		}
		if _, ok := seen[flag]; ok {
			continue
		}
		seen[flag] = struct{}{}
		p.QualityFlags = append(p.QualityFlags, flag)
	}
}

func decodeArtefact[T any](raw, label string) (*T, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, fmt.Errorf("decode %s: %w", label, err)
	}
	return &value, nil
}

func encodeArtefact[T any](target *string, value *T, label string) error {
	if value == nil {
		*target = ""
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", label, err)
	}
	*target = string(data)
	return nil
}
