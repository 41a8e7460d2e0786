package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateGates(); err != nil {
		return err
	}
	if err := c.validatePlatforms(); err != nil {
		return err
	}
	if err := c.validateReuseRisk(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateGates() error {
	for name, settings := range c.gateSettings() {
		if settings.WarnThreshold < 0 || settings.WarnThreshold > 100 {
			return fmt.Errorf("gates.%s.warn_threshold must be between 0 and 100", name)
		}
		if settings.FailThreshold < 0 || settings.FailThreshold > 100 {
			return fmt.Errorf("gates.%s.fail_threshold must be between 0 and 100", name)
		}
		if settings.FailThreshold > settings.WarnThreshold {
			return fmt.Errorf("gates.%s.fail_threshold must not exceed warn_threshold", name)
		}
		if settings.MaxAttempts > 10 {
			return fmt.Errorf("gates.%s.max_attempts must be at most 10", name)
		}
	}
	return nil
}

func (c *Config) validatePlatforms() error {
	if len(c.Platforms) == 0 {
		return errors.New("at least one platform target must be configured")
	}
	for name, target := range c.Platforms {
		if len(target.Formats) == 0 {
			return fmt.Errorf("platforms.%s.formats must not be empty", name)
		}
		if target.MinSeconds < 0 {
			return fmt.Errorf("platforms.%s.min_seconds must not be negative", name)
		}
		if target.MaxSeconds > 0 && target.MaxSeconds < target.MinSeconds {
			return fmt.Errorf("platforms.%s.max_seconds must not be below min_seconds", name)
		}
	}
	return nil
}

func (c *Config) validateReuseRisk() error {
	if c.ReuseRisk.MaxAssetUses <= 0 {
		return errors.New("reuse_risk.max_asset_uses must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
