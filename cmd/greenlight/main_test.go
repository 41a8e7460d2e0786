package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"greenlight/internal/api"
	"greenlight/internal/artefact"
	"greenlight/internal/config"
	"greenlight/internal/production"
	"greenlight/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	dataDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		dataDir:    filepath.Join(base, "data"),
	}

	content := fmt.Sprintf(
		"[paths]\ndata_dir = %q\nlog_dir = %q\nknowledge_path = %q\n",
		env.dataDir,
		filepath.Join(base, "logs"),
		filepath.Join(base, "knowledge.json"),
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeBriefFile(t *testing.T, env *cliTestEnv, briefID string) string {
	t.Helper()
	brief := api.Brief{
		BriefID:    briefID,
		Title:      "Alternator Deep Dive",
		VideoType:  "foundational",
		Vertical:   "automotive",
		ScriptText: "The alternator ships with a two-year warranty.",
		Render: production.RenderMeta{
			Format:          "mp4",
			DurationSeconds: 120,
			Width:           1920,
			Height:          1080,
			Platform:        "youtube",
		},
		Assets: []production.Asset{
			{ID: "a1", Name: "gl-alternator-closeup", Kind: production.AssetVisual, ClaimID: "c1", Subject: "alternator", PaletteColors: []string{"#0B1F3A"}, UsageCount: 1},
		},
		ClaimTable: &artefact.ClaimTable{Rows: []artefact.Claim{
			{ID: "c1", Text: "The alternator ships with a two-year warranty", Subject: "alternator", SupportRefs: []string{"ev1"}},
		}},
		EvidencePack: &artefact.EvidencePack{Entries: []artefact.Evidence{
			{Ref: "ev1", Source: "manufacturer spec sheet"},
		}},
		CreatedBy: "producer-1",
	}
	data, err := json.Marshal(brief)
	if err != nil {
		t.Fatalf("marshal brief: %v", err)
	}
	path := filepath.Join(env.baseDir, briefID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write brief: %v", err)
	}
	return path
}

func seedQAProduction(t *testing.T, env *cliTestEnv, briefID string) {
	t.Helper()
	cfg, _, _, err := config.Load(env.configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure dirs: %v", err)
	}

	store := testsupport.MustOpenStore(t, cfg)
	p := testsupport.SeedProduction(t, briefID)
	if err := store.Create(context.Background(), p); err != nil {
		t.Fatalf("seed production: %v", err)
	}

	corpus := `[
  {"id": "kb1", "title": "Warranty terms", "source": "spec sheet", "keywords": ["alternator", "warranty"]},
  {"id": "kb2", "title": "Belt noise bulletin", "source": "service bulletin", "keywords": ["squealing", "replacement"]}
]`
	if err := os.WriteFile(cfg.Paths.KnowledgePath, []byte(corpus), 0o644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestCLIAddListShowCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	briefPath := writeBriefFile(t, env, "brief-cli-1")

	out, _, err := runCLI(t, env, "add", briefPath)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	requireContains(t, out, "Imported brief-cli-1")
	requireContains(t, out, "Draft")

	if _, _, err := runCLI(t, env, "add", briefPath); err == nil {
		t.Fatal("expected duplicate add to fail")
	}

	out, _, err = runCLI(t, env, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "brief-cli-1")
	requireContains(t, out, "Alternator Deep Dive")

	out, _, err = runCLI(t, env, "list", "--status", "published")
	if err != nil {
		t.Fatalf("list --status: %v", err)
	}
	requireContains(t, out, "No productions found")

	out, _, err = runCLI(t, env, "show", "brief-cli-1")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	requireContains(t, out, "Status:    Draft")
	requireContains(t, out, "Claim Table")
	requireContains(t, out, "Missing:")
}

func TestCLIRunCommitAndHistory(t *testing.T) {
	env := setupCLITestEnv(t)
	seedQAProduction(t, env, "brief-cli-2")

	out, _, err := runCLI(t, env, "run", "brief-cli-2", "--commit", "--actor", "pipeline")
	if err != nil {
		t.Fatalf("run --commit: %v", err)
	}
	requireContains(t, out, "Aggregate: PASS")
	requireContains(t, out, "Quality score: 100.0")

	out, _, err = runCLI(t, env, "show", "brief-cli-2")
	if err != nil {
		t.Fatalf("show after run: %v", err)
	}
	requireContains(t, out, "Ready For Publish")

	out, _, err = runCLI(t, env, "history", "brief-cli-2")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "gate_run")
	requireContains(t, out, "transition")
}

func TestCLIRunJSONOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	seedQAProduction(t, env, "brief-cli-3")

	out, _, err := runCLI(t, env, "run", "brief-cli-3", "--json")
	if err != nil {
		t.Fatalf("run --json: %v", err)
	}
	var view api.RunView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode run JSON: %v\noutput: %s", err, out)
	}
	if view.Aggregate != "pass" {
		t.Fatalf("aggregate = %s, want pass", view.Aggregate)
	}
	if len(view.Results) != 7 {
		t.Fatalf("results = %d, want 7", len(view.Results))
	}
}

func TestCLIAdvanceCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	briefPath := writeBriefFile(t, env, "brief-cli-4")

	if _, _, err := runCLI(t, env, "add", briefPath); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, _, err := runCLI(t, env, "advance", "brief-cli-4", "pending_review", "--actor", "dana")
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	requireContains(t, out, "Pending Review")

	if _, _, err := runCLI(t, env, "advance", "brief-cli-4", "published"); err == nil {
		t.Fatal("expected illegal transition to fail")
	}
}

func TestCLIHealthCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	briefPath := writeBriefFile(t, env, "brief-cli-5")
	if _, _, err := runCLI(t, env, "add", briefPath); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, _, err := runCLI(t, env, "health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	requireContains(t, out, "Database readable: yes")
	requireContains(t, out, "Integrity check:   yes")
	requireContains(t, out, "Productions:       1")
}

func TestCLIConfigInit(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.baseDir, "fresh", "config.toml")

	out, _, err := runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config missing: %v", err)
	}

	if _, _, err := runCLI(t, env, "config", "init", "--path", target); err == nil {
		t.Fatal("expected second init to refuse overwrite")
	}
}
