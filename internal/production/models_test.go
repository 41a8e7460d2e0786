package production

import (
	"testing"

	"greenlight/internal/artefact"
)

func TestParseStatus(t *testing.T) {
	if status, ok := ParseStatus("  Ready_For_Publish "); !ok || status != StatusReadyForPublish {
		t.Fatalf("ParseStatus = %q, %v", status, ok)
	}
	if _, ok := ParseStatus("shipping"); ok {
		t.Fatal("unknown status should not parse")
	}
	if _, ok := ParseStatus(""); ok {
		t.Fatal("empty status should not parse")
	}
}

func TestIsTerminal(t *testing.T) {
	if !StatusArchived.IsTerminal() {
		t.Fatal("archived should be terminal")
	}
	for _, status := range AllStatuses() {
		if status == StatusArchived {
			continue
		}
		if status.IsTerminal() {
			t.Fatalf("%s should not be terminal", status)
		}
	}
}

func TestParseVideoType(t *testing.T) {
	if vt, ok := ParseVideoType("Product-Range"); !ok || vt != VideoProductRange {
		t.Fatalf("ParseVideoType = %q, %v", vt, ok)
	}
	if _, ok := ParseVideoType("infomercial"); ok {
		t.Fatal("unknown video type should not parse")
	}
}

func TestAspectRatio(t *testing.T) {
	cases := []struct {
		width, height int
		want          string
	}{
		{1920, 1080, "16:9"},
		{1440, 1080, "4:3"},
		{1080, 1920, "9:16"},
		{0, 1080, ""},
	}
	for _, tc := range cases {
		meta := RenderMeta{Width: tc.width, Height: tc.height}
		if got := meta.AspectRatio(); got != tc.want {
			t.Errorf("AspectRatio(%dx%d) = %q, want %q", tc.width, tc.height, got, tc.want)
		}
	}
}

func TestAddQualityFlags(t *testing.T) {
	p := &Production{QualityFlags: []string{"truth_warn"}}
	p.AddQualityFlags("brand_warn", "truth_warn", "  ", "brand_warn", "platform_warn")
	want := []string{"truth_warn", "brand_warn", "platform_warn"}
	if len(p.QualityFlags) != len(want) {
		t.Fatalf("flags = %v, want %v", p.QualityFlags, want)
	}
	for i := range want {
		if p.QualityFlags[i] != want[i] {
			t.Fatalf("flags = %v, want %v", p.QualityFlags, want)
		}
	}
}

func TestArtefactAccessors(t *testing.T) {
	p := &Production{}

	table, err := p.ClaimTable()
	if err != nil {
		t.Fatalf("empty claim table: %v", err)
	}
	if table != nil {
		t.Fatal("empty column should decode to nil")
	}

	if err := p.SetClaimTable(&artefact.ClaimTable{Rows: []artefact.Claim{{ID: "c1", Text: "claim"}}}); err != nil {
		t.Fatalf("set claim table: %v", err)
	}
	table, err = p.ClaimTable()
	if err != nil {
		t.Fatalf("decode claim table: %v", err)
	}
	if table == nil || len(table.Rows) != 1 || table.Rows[0].ID != "c1" {
		t.Fatalf("claim table = %+v", table)
	}

	if err := p.SetClaimTable(nil); err != nil {
		t.Fatalf("clear claim table: %v", err)
	}
	if p.ClaimTableJSON != "" {
		t.Fatal("nil artefact should clear the column")
	}

	p.EvidencePackJSON = "{not json"
	if _, err := p.EvidencePack(); err == nil {
		t.Fatal("malformed artefact should error")
	}
}
