package artefact

import (
	"strings"
	"time"
)

// Kind names one of the five mandatory artefacts.
type Kind string

const (
	KindClaimTable        Kind = "claim_table"
	KindEvidencePack      Kind = "evidence_pack"
	KindDisclaimerPlan    Kind = "disclaimer_plan"
	KindApprovalRecord    Kind = "approval_record"
	KindKnowledgeContract Kind = "knowledge_contract"
)

// Kinds returns the ordered list of mandatory artefact kinds.
func Kinds() []Kind {
	return []Kind{
		KindClaimTable,
		KindEvidencePack,
		KindDisclaimerPlan,
		KindApprovalRecord,
		KindKnowledgeContract,
	}
}

// Regulated claim categories that require an on-screen or voiced disclaimer.
const (
	CategoryMedical        = "medical"
	CategoryLegal          = "legal"
	CategorySafetyAbsolute = "safety-absolute"
)

// Claim is one factual assertion the production makes.
type Claim struct {
	ID          string            `json:"id"`
	Text        string            `json:"text"`
	Category    string            `json:"category,omitempty"`
	Subject     string            `json:"subject,omitempty"`
	SupportRefs []string          `json:"support_refs"`
	Assertions  map[string]string `json:"assertions,omitempty"`
}

// Regulated reports whether the claim's category requires a disclaimer.
func (c Claim) Regulated() bool {
	switch strings.ToLower(strings.TrimSpace(c.Category)) {
	case CategoryMedical, CategoryLegal, CategorySafetyAbsolute:
		return true
	default:
		return false
	}
}

// ClaimTable lists the factual claims a production makes and their support.
type ClaimTable struct {
	Rows []Claim `json:"rows"`
}

// Evidence is one source reference backing claims.
type Evidence struct {
	Ref    string `json:"ref"`
	Source string `json:"source"`
	URL    string `json:"url,omitempty"`
}

// EvidencePack lists the source references available to back claims.
type EvidencePack struct {
	Entries []Evidence `json:"entries"`
}

// HasRef reports whether the pack contains an entry with the given reference.
func (p EvidencePack) HasRef(ref string) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return false
	}
	for _, entry := range p.Entries {
		if strings.EqualFold(strings.TrimSpace(entry.Ref), ref) {
			return true
		}
	}
	return false
}

// Disclaimer is one required on-screen or voiced disclaimer.
type Disclaimer struct {
	ClaimID   string `json:"claim_id"`
	Text      string `json:"text"`
	Placement string `json:"placement,omitempty"`
}

// DisclaimerPlan lists the disclaimers the production must carry.
type DisclaimerPlan struct {
	Entries []Disclaimer `json:"entries"`
}

// Covers reports whether the plan carries a disclaimer for the given claim.
func (p DisclaimerPlan) Covers(claimID string) bool {
	claimID = strings.TrimSpace(claimID)
	if claimID == "" {
		return false
	}
	for _, entry := range p.Entries {
		if strings.EqualFold(strings.TrimSpace(entry.ClaimID), claimID) && strings.TrimSpace(entry.Text) != "" {
			return true
		}
	}
	return false
}

// Approval is one stage sign-off by an identified approver.
type Approval struct {
	Stage      string    `json:"stage"`
	Approver   string    `json:"approver"`
	Note       string    `json:"note,omitempty"`
	ApprovedAt time.Time `json:"approved_at"`
}

// ApprovalRecord carries stage-by-stage human sign-offs, including manual
// override entries. Overrides live here, never as ephemeral flags.
type ApprovalRecord struct {
	Entries []Approval `json:"entries"`
}

// OverrideStage is the approval stage name used for manual QA overrides.
const OverrideStage = "qa_override"

// Fact is one structured assertion the production is permitted to make.
type Fact struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Subject string `json:"subject,omitempty"`
}

// KnowledgeContract enumerates the facts the production may assert. A claim
// asserting a contracted key with a different value is a contradiction.
type KnowledgeContract struct {
	Facts []Fact `json:"facts"`
}

// Lookup returns the contracted value for a fact key.
func (k KnowledgeContract) Lookup(key string) (string, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false
	}
	for _, fact := range k.Facts {
		if strings.EqualFold(strings.TrimSpace(fact.Key), key) {
			return fact.Value, true
		}
	}
	return "", false
}
