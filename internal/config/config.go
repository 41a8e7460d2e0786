package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir       string `toml:"data_dir"`
	LogDir        string `toml:"log_dir"`
	KnowledgePath string `toml:"knowledge_path"`
}

// GateSettings holds the tunable execution parameters for one gate.
type GateSettings struct {
	WarnThreshold  float64 `toml:"warn_threshold"`
	FailThreshold  float64 `toml:"fail_threshold"`
	Weight         float64 `toml:"weight"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	MaxAttempts    int     `toml:"max_attempts"`
}

// Gates contains the per-gate settings for the seven quality gates.
type Gates struct {
	Truth         GateSettings `toml:"truth"`
	Safety        GateSettings `toml:"safety"`
	Brand         GateSettings `toml:"brand"`
	Platform      GateSettings `toml:"platform"`
	ReuseRisk     GateSettings `toml:"reuse_risk"`
	VisualRole    GateSettings `toml:"visual_role"`
	FinalQA       GateSettings `toml:"final_qa"`
	BackoffMillis int          `toml:"backoff_millis"`
}

// Brand contains the brand guideline configuration consumed by G3.
type Brand struct {
	Palette     []string `toml:"palette"`
	VoiceRoster []string `toml:"voice_roster"`
	AssetPrefix string   `toml:"asset_prefix"`
}

// PlatformTarget describes one publish target's output constraints for G4.
type PlatformTarget struct {
	Formats     []string `toml:"formats"`
	MinSeconds  float64  `toml:"min_seconds"`
	MaxSeconds  float64  `toml:"max_seconds"`
	AspectRatio string   `toml:"aspect_ratio"`
}

// ReuseRisk contains the asset reuse policy consumed by G5.
type ReuseRisk struct {
	MaxAssetUses int `toml:"max_asset_uses"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	GateRuns       bool   `toml:"gate_runs"`
	Overrides      bool   `toml:"overrides"`
	Errors         bool   `toml:"errors"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for greenlight.
type Config struct {
	Paths         Paths                     `toml:"paths"`
	Gates         Gates                     `toml:"gates"`
	Brand         Brand                     `toml:"brand"`
	Platforms     map[string]PlatformTarget `toml:"platforms"`
	ReuseRisk     ReuseRisk                 `toml:"reuse_risk"`
	Notifications Notifications             `toml:"notifications"`
	Logging       Logging                   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/greenlight/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized. The boolean reports whether a
// config file was found at the resolved path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("greenlight.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories required for pipeline operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir, c.LocksDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LocksDir returns the directory holding per-production lease files.
func (c *Config) LocksDir() string {
	return filepath.Join(c.Paths.DataDir, "locks")
}

// SampleConfig returns the embedded sample configuration text.
func SampleConfig() string {
	return sampleConfig
}

// WriteSample writes the sample configuration to the given path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
