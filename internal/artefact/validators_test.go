package artefact_test

import (
	"strings"
	"testing"
	"time"

	"greenlight/internal/artefact"
)

func validClaimTable() *artefact.ClaimTable {
	return &artefact.ClaimTable{Rows: []artefact.Claim{
		{ID: "c1", Text: "The alternator ships with a two-year warranty", SupportRefs: []string{"ev1"}},
		{ID: "c2", Text: "Relieves joint pain within a week", Category: artefact.CategoryMedical, SupportRefs: []string{"ev2"}},
	}}
}

func TestValidateClaimTableMissing(t *testing.T) {
	v := artefact.ValidateClaimTable(nil)
	if v.Present || v.WellFormed {
		t.Fatalf("expected absent artefact, got %+v", v)
	}
	if len(v.Issues) == 0 {
		t.Fatal("expected a structural issue for the missing table")
	}
}

func TestValidateClaimTableRequiresSupport(t *testing.T) {
	table := &artefact.ClaimTable{Rows: []artefact.Claim{{ID: "c1", Text: "claim"}}}
	v := artefact.ValidateClaimTable(table)
	if !v.Present || v.WellFormed {
		t.Fatalf("expected malformed table, got %+v", v)
	}
	found := false
	for _, issue := range v.Issues {
		if strings.Contains(issue, "support reference") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected support reference issue, got %v", v.Issues)
	}
}

func TestValidateDisclaimerPlanCoversRegulatedClaims(t *testing.T) {
	table := validClaimTable()

	uncovered := &artefact.DisclaimerPlan{}
	v := artefact.ValidateDisclaimerPlan(uncovered, table)
	if v.WellFormed {
		t.Fatal("expected uncovered regulated claim to be flagged")
	}

	covered := &artefact.DisclaimerPlan{Entries: []artefact.Disclaimer{
		{ClaimID: "c2", Text: "Results vary. Consult a physician.", Placement: "on-screen"},
	}}
	v = artefact.ValidateDisclaimerPlan(covered, table)
	if !v.OK() {
		t.Fatalf("expected covered plan to validate, got %+v", v)
	}
}

func TestValidateApprovalRecordEntries(t *testing.T) {
	record := &artefact.ApprovalRecord{Entries: []artefact.Approval{
		{Stage: "script", Approver: "dana", ApprovedAt: time.Now()},
		{Stage: "", Approver: ""},
	}}
	v := artefact.ValidateApprovalRecord(record)
	if v.WellFormed {
		t.Fatal("expected malformed approval record")
	}
	if len(v.Issues) != 2 {
		t.Fatalf("expected two issues, got %v", v.Issues)
	}
}

func TestValidateKnowledgeContract(t *testing.T) {
	contract := &artefact.KnowledgeContract{Facts: []artefact.Fact{
		{Key: "warranty_years", Value: "2"},
	}}
	if v := artefact.ValidateKnowledgeContract(contract); !v.OK() {
		t.Fatalf("expected valid contract, got %+v", v)
	}
	if v := artefact.ValidateKnowledgeContract(&artefact.KnowledgeContract{}); v.WellFormed {
		t.Fatal("expected empty contract to be malformed")
	}
}

func TestSetCompleteAndMissing(t *testing.T) {
	table := validClaimTable()
	set := artefact.ValidateAll(
		table,
		&artefact.EvidencePack{Entries: []artefact.Evidence{{Ref: "ev1", Source: "spec sheet"}, {Ref: "ev2", Source: "trial report"}}},
		&artefact.DisclaimerPlan{Entries: []artefact.Disclaimer{{ClaimID: "c2", Text: "Consult a physician."}}},
		&artefact.ApprovalRecord{Entries: []artefact.Approval{{Stage: "script", Approver: "dana"}}},
		&artefact.KnowledgeContract{Facts: []artefact.Fact{{Key: "warranty_years", Value: "2"}}},
	)
	if !set.Complete() {
		t.Fatalf("expected complete artefact set, missing: %v", set.Missing())
	}

	set = artefact.ValidateAll(table, nil, nil, nil, nil)
	if set.Complete() {
		t.Fatal("expected incomplete set")
	}
	if len(set.Missing()) != 4 {
		t.Fatalf("expected four missing artefacts, got %v", set.Missing())
	}
}

func TestClaimRegulated(t *testing.T) {
	cases := []struct {
		category string
		want     bool
	}{
		{artefact.CategoryMedical, true},
		{artefact.CategoryLegal, true},
		{artefact.CategorySafetyAbsolute, true},
		{"Medical", true},
		{"marketing", false},
		{"", false},
	}
	for _, tc := range cases {
		claim := artefact.Claim{Category: tc.category}
		if got := claim.Regulated(); got != tc.want {
			t.Fatalf("category %q: expected %v, got %v", tc.category, tc.want, got)
		}
	}
}
