package production_test

import (
	"context"
	"testing"

	"greenlight/internal/production"
	"greenlight/internal/testsupport"
)

func TestCreateAndFetch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	p := testsupport.SeedProduction(t, "brief-store-1")
	if err := store.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == 0 {
		t.Fatal("expected assigned id")
	}

	byID, err := store.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID == nil || byID.BriefID != "brief-store-1" {
		t.Fatalf("unexpected production: %+v", byID)
	}
	if byID.Status != production.StatusQA {
		t.Fatalf("status = %s, want qa", byID.Status)
	}
	if byID.ClaimTableJSON == "" || byID.KnowledgeContractJSON == "" {
		t.Fatal("artefact columns should round-trip")
	}

	byBrief, err := store.GetByBrief(ctx, "brief-store-1")
	if err != nil {
		t.Fatalf("get by brief: %v", err)
	}
	if byBrief == nil || byBrief.ID != p.ID {
		t.Fatalf("brief lookup mismatch: %+v", byBrief)
	}

	missing, err := store.GetByBrief(ctx, "brief-store-unknown")
	if err != nil {
		t.Fatalf("get unknown brief: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown brief, got %+v", missing)
	}
}

func TestCreateRejectsDuplicateBrief(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := store.Create(ctx, testsupport.SeedProduction(t, "brief-store-2")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := store.Create(ctx, testsupport.SeedProduction(t, "brief-store-2")); err == nil {
		t.Fatal("expected unique constraint violation")
	}
}

func TestUpdatePersistsScoreAndFlags(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	p := testsupport.SeedProduction(t, "brief-store-3")
	if err := store.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	score := 87.5
	p.QualityScore = &score
	p.AddQualityFlags("platform_warn", "platform_warn", "brand_warn")
	p.Status = production.StatusReadyForPublish
	if err := store.Update(ctx, p); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := store.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.QualityScore == nil || *got.QualityScore != 87.5 {
		t.Fatalf("score = %v, want 87.5", got.QualityScore)
	}
	if len(got.QualityFlags) != 2 || got.QualityFlags[0] != "platform_warn" || got.QualityFlags[1] != "brand_warn" {
		t.Fatalf("flags = %v", got.QualityFlags)
	}
	if got.Status != production.StatusReadyForPublish {
		t.Fatalf("status = %s", got.Status)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Fatalf("updated_at %s should trail created_at %s", got.UpdatedAt, got.CreatedAt)
	}
}

func TestListFiltersAndPaginates(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	seeds := []struct {
		brief    string
		status   production.Status
		vertical string
	}{
		{"brief-list-1", production.StatusDraft, "automotive"},
		{"brief-list-2", production.StatusQA, "automotive"},
		{"brief-list-3", production.StatusQA, "garden"},
	}
	for _, seed := range seeds {
		p := testsupport.SeedProduction(t, seed.brief, testsupport.WithStatus(seed.status))
		p.Vertical = seed.vertical
		if err := store.Create(ctx, p); err != nil {
			t.Fatalf("create %s: %v", seed.brief, err)
		}
	}

	all, err := store.List(ctx, production.Filter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}

	qa, err := store.List(ctx, production.Filter{Status: production.StatusQA})
	if err != nil {
		t.Fatalf("list qa: %v", err)
	}
	if len(qa) != 2 {
		t.Fatalf("len(qa) = %d, want 2", len(qa))
	}

	garden, err := store.List(ctx, production.Filter{Status: production.StatusQA, Vertical: "garden"})
	if err != nil {
		t.Fatalf("list garden: %v", err)
	}
	if len(garden) != 1 || garden[0].BriefID != "brief-list-3" {
		t.Fatalf("garden filter = %+v", garden)
	}

	paged, err := store.List(ctx, production.Filter{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("list paged: %v", err)
	}
	if len(paged) != 1 || paged[0].BriefID != "brief-list-2" {
		t.Fatalf("paged = %+v", paged)
	}
}

func TestStatsGroupsByStatus(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	for i, status := range []production.Status{production.StatusDraft, production.StatusDraft, production.StatusQA} {
		p := testsupport.SeedProduction(t, "brief-stats-"+string(rune('a'+i)), testsupport.WithStatus(status))
		if err := store.Create(ctx, p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats[production.StatusDraft] != 2 || stats[production.StatusQA] != 1 {
		t.Fatalf("stats = %v", stats)
	}
}

func TestRemove(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	p := testsupport.SeedProduction(t, "brief-remove-1")
	if err := store.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	removed, err := store.Remove(ctx, p.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !removed {
		t.Fatal("expected removal")
	}
	again, err := store.Remove(ctx, p.ID)
	if err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if again {
		t.Fatal("second remove should report nothing deleted")
	}
}

func TestCheckHealth(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := store.Create(ctx, testsupport.SeedProduction(t, "brief-health-1")); err != nil {
		t.Fatalf("create: %v", err)
	}

	health, err := store.CheckHealth(ctx)
	if err != nil {
		t.Fatalf("check health: %v", err)
	}
	if !health.DatabaseReadable || !health.IntegrityCheck {
		t.Fatalf("health = %+v", health)
	}
	if health.TotalProductions != 1 {
		t.Fatalf("total = %d, want 1", health.TotalProductions)
	}
}
