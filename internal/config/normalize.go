package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeGates()
	c.normalizeBrand()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.KnowledgePath) == "" {
		c.Paths.KnowledgePath = defaultKnowledgePath
	}
	if c.Paths.KnowledgePath, err = expandPath(c.Paths.KnowledgePath); err != nil {
		return fmt.Errorf("paths.knowledge_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeGates() {
	for _, settings := range c.gateSettings() {
		if settings.TimeoutSeconds <= 0 {
			settings.TimeoutSeconds = defaultGateTimeout
		}
		if settings.MaxAttempts <= 0 {
			settings.MaxAttempts = defaultGateAttempts
		}
		if settings.Weight <= 0 {
			settings.Weight = defaultSoftGateWeight
		}
	}
	if c.Gates.BackoffMillis <= 0 {
		c.Gates.BackoffMillis = defaultBackoffMillis
	}
}

func (c *Config) normalizeBrand() {
	palette := make([]string, 0, len(c.Brand.Palette))
	for _, color := range c.Brand.Palette {
		color = strings.ToUpper(strings.TrimSpace(color))
		if color != "" {
			palette = append(palette, color)
		}
	}
	c.Brand.Palette = palette

	roster := make([]string, 0, len(c.Brand.VoiceRoster))
	for _, voice := range c.Brand.VoiceRoster {
		voice = strings.ToLower(strings.TrimSpace(voice))
		if voice != "" {
			roster = append(roster, voice)
		}
	}
	c.Brand.VoiceRoster = roster
	c.Brand.AssetPrefix = strings.TrimSpace(c.Brand.AssetPrefix)
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) gateSettings() map[string]*GateSettings {
	return map[string]*GateSettings{
		"truth":       &c.Gates.Truth,
		"safety":      &c.Gates.Safety,
		"brand":       &c.Gates.Brand,
		"platform":    &c.Gates.Platform,
		"reuse_risk":  &c.Gates.ReuseRisk,
		"visual_role": &c.Gates.VisualRole,
		"final_qa":    &c.Gates.FinalQA,
	}
}
