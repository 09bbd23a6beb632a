package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

// RequireUsername reports an error when no player identity is configured.
// Load does not demand one because only the analyze command needs it.
func (c *Config) RequireUsername() error {
	if c.Player.Username == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("player.username is required. Pass it as an argument, set %s, or edit %s (create with 'pgnlens config init')", usernameEnv, defaultPath)
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.LossBucket == "" {
		return errors.New("analysis.loss_bucket must be set")
	}
	if len(c.Analysis.Extensions) == 0 {
		return errors.New("analysis.extensions must list at least one extension")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
