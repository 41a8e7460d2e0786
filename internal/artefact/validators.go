package artefact

import (
	"fmt"
	"strings"
)

// Validation is the outcome of checking one artefact's presence and shape.
type Validation struct {
	Kind       Kind
	Present    bool
	WellFormed bool
	Issues     []string
}

// OK reports whether the artefact is present and structurally sound.
func (v Validation) OK() bool {
	return v.Present && v.WellFormed
}

// Set holds the validation outcome for all five mandatory artefacts.
type Set struct {
	ClaimTable        Validation
	EvidencePack      Validation
	DisclaimerPlan    Validation
	ApprovalRecord    Validation
	KnowledgeContract Validation
}

// All returns the five validations in canonical order.
func (s Set) All() []Validation {
	return []Validation{
		s.ClaimTable,
		s.EvidencePack,
		s.DisclaimerPlan,
		s.ApprovalRecord,
		s.KnowledgeContract,
	}
}

// Complete reports whether every mandatory artefact is present and well formed.
func (s Set) Complete() bool {
	for _, v := range s.All() {
		if !v.OK() {
			return false
		}
	}
	return true
}

// Missing returns the kinds that are absent or malformed.
func (s Set) Missing() []Kind {
	var missing []Kind
	for _, v := range s.All() {
		if !v.OK() {
			missing = append(missing, v.Kind)
		}
	}
	return missing
}

// ValidateClaimTable checks the claim table's structure. A nil table means the
// artefact is absent.
func ValidateClaimTable(table *ClaimTable) Validation {
	v := Validation{Kind: KindClaimTable}
	if table == nil {
		v.Issues = append(v.Issues, "claim table is missing")
		return v
	}
	v.Present = true
	if len(table.Rows) == 0 {
		v.Issues = append(v.Issues, "claim table has no rows")
		return v
	}
	wellFormed := true
	for i, row := range table.Rows {
		if strings.TrimSpace(row.ID) == "" {
			v.Issues = append(v.Issues, fmt.Sprintf("claim row %d has no id", i+1))
			wellFormed = false
		}
		if strings.TrimSpace(row.Text) == "" {
			v.Issues = append(v.Issues, fmt.Sprintf("claim row %d has no claim text", i+1))
			wellFormed = false
		}
		if len(row.SupportRefs) == 0 {
			v.Issues = append(v.Issues, fmt.Sprintf("claim row %d carries no support reference", i+1))
			wellFormed = false
		}
	}
	v.WellFormed = wellFormed
	return v
}

// ValidateEvidencePack checks the evidence pack's structure.
func ValidateEvidencePack(pack *EvidencePack) Validation {
	v := Validation{Kind: KindEvidencePack}
	if pack == nil {
		v.Issues = append(v.Issues, "evidence pack is missing")
		return v
	}
	v.Present = true
	if len(pack.Entries) == 0 {
		v.Issues = append(v.Issues, "evidence pack has no entries")
		return v
	}
	wellFormed := true
	for i, entry := range pack.Entries {
		if strings.TrimSpace(entry.Ref) == "" {
			v.Issues = append(v.Issues, fmt.Sprintf("evidence entry %d has no reference", i+1))
			wellFormed = false
		}
		if strings.TrimSpace(entry.Source) == "" {
			v.Issues = append(v.Issues, fmt.Sprintf("evidence entry %d has no source", i+1))
			wellFormed = false
		}
	}
	v.WellFormed = wellFormed
	return v
}

// ValidateDisclaimerPlan checks the disclaimer plan against the claim table:
// every regulated claim must be covered by a disclaimer entry. The claim table
// may be nil when it is itself absent; coverage is then unverifiable and only
// the plan's own shape is checked.
func ValidateDisclaimerPlan(plan *DisclaimerPlan, table *ClaimTable) Validation {
	v := Validation{Kind: KindDisclaimerPlan}
	if plan == nil {
		v.Issues = append(v.Issues, "disclaimer plan is missing")
		return v
	}
	v.Present = true
	wellFormed := true
	for i, entry := range plan.Entries {
		if strings.TrimSpace(entry.Text) == "" {
			v.Issues = append(v.Issues, fmt.Sprintf("disclaimer entry %d has no text", i+1))
			wellFormed = false
		}
	}
	if table != nil {
		for _, row := range table.Rows {
			if row.Regulated() && !plan.Covers(row.ID) {
				v.Issues = append(v.Issues, fmt.Sprintf("regulated claim %s has no disclaimer", row.ID))
				wellFormed = false
			}
		}
	}
	v.WellFormed = wellFormed
	return v
}

// ValidateApprovalRecord checks the approval record's structure.
func ValidateApprovalRecord(record *ApprovalRecord) Validation {
	v := Validation{Kind: KindApprovalRecord}
	if record == nil {
		v.Issues = append(v.Issues, "approval record is missing")
		return v
	}
	v.Present = true
	wellFormed := true
	for i, entry := range record.Entries {
		if strings.TrimSpace(entry.Stage) == "" {
			v.Issues = append(v.Issues, fmt.Sprintf("approval entry %d has no stage", i+1))
			wellFormed = false
		}
		if strings.TrimSpace(entry.Approver) == "" {
			v.Issues = append(v.Issues, fmt.Sprintf("approval entry %d has no approver", i+1))
			wellFormed = false
		}
	}
	v.WellFormed = wellFormed
	return v
}

// ValidateKnowledgeContract checks the knowledge contract's structure.
func ValidateKnowledgeContract(contract *KnowledgeContract) Validation {
	v := Validation{Kind: KindKnowledgeContract}
	if contract == nil {
		v.Issues = append(v.Issues, "knowledge contract is missing")
		return v
	}
	v.Present = true
	if len(contract.Facts) == 0 {
		v.Issues = append(v.Issues, "knowledge contract has no facts")
		return v
	}
	wellFormed := true
	for i, fact := range contract.Facts {
		if strings.TrimSpace(fact.Key) == "" {
			v.Issues = append(v.Issues, fmt.Sprintf("contract fact %d has no key", i+1))
			wellFormed = false
		}
		if strings.TrimSpace(fact.Value) == "" {
			v.Issues = append(v.Issues, fmt.Sprintf("contract fact %d has no value", i+1))
			wellFormed = false
		}
	}
	v.WellFormed = wellFormed
	return v
}

// ValidateAll runs the five validators over a production's artefacts.
func ValidateAll(table *ClaimTable, pack *EvidencePack, plan *DisclaimerPlan, record *ApprovalRecord, contract *KnowledgeContract) Set {
	return Set{
		ClaimTable:        ValidateClaimTable(table),
		EvidencePack:      ValidateEvidencePack(pack),
		DisclaimerPlan:    ValidateDisclaimerPlan(plan, table),
		ApprovalRecord:    ValidateApprovalRecord(record),
		KnowledgeContract: ValidateKnowledgeContract(contract),
	}
}
