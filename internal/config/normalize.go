package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePlayer()
	c.normalizeAnalysis()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		c.Paths.InputDir = defaultInputDir
	}
	if c.Paths.InputDir, err = expandPath(strings.TrimSpace(c.Paths.InputDir)); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputFile) == "" {
		c.Paths.OutputFile = defaultOutputFile
	}
	if c.Paths.OutputFile, err = expandPath(strings.TrimSpace(c.Paths.OutputFile)); err != nil {
		return fmt.Errorf("paths.output_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.Database) == "" {
		c.Paths.Database = defaultDatabase
	}
	if c.Paths.Database, err = expandPath(strings.TrimSpace(c.Paths.Database)); err != nil {
		return fmt.Errorf("paths.database: %w", err)
	}
	return nil
}

func (c *Config) normalizePlayer() {
	c.Player.Username = strings.TrimSpace(c.Player.Username)
	if c.Player.Username == "" {
		if value, ok := os.LookupEnv(usernameEnv); ok {
			c.Player.Username = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeAnalysis() {
	// The bucket is compared verbatim, so only surrounding space is removed.
	c.Analysis.LossBucket = strings.TrimSpace(c.Analysis.LossBucket)

	seen := make(map[string]struct{}, len(c.Analysis.Extensions))
	exts := make([]string, 0, len(c.Analysis.Extensions))
	for _, ext := range c.Analysis.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, dup := seen[ext]; dup {
			continue
		}
		seen[ext] = struct{}{}
		exts = append(exts, ext)
	}
	c.Analysis.Extensions = exts
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
