package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"pgnlens/internal/config"
)

func TestLoadDefaultConfigUsesEnvUsernameAndExpandsPaths(t *testing.T) {
	t.Setenv("PGNLENS_USERNAME", " magnus ")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if cfg.Player.Username != "magnus" {
		t.Fatalf("expected username from env, got %q", cfg.Player.Username)
	}
	wantLogDir := filepath.Join(tempHome, ".local", "share", "pgnlens", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	if !filepath.IsAbs(cfg.Paths.InputDir) || filepath.Base(cfg.Paths.InputDir) != "chess_games" {
		t.Fatalf("unexpected input dir: %q", cfg.Paths.InputDir)
	}
	if filepath.Base(cfg.Paths.OutputFile) != "chess_analytics.csv" {
		t.Fatalf("unexpected output file: %q", cfg.Paths.OutputFile)
	}
	if cfg.Analysis.LossBucket != "loss" {
		t.Fatalf("unexpected loss bucket: %q", cfg.Analysis.LossBucket)
	}
	if !cfg.History.Enabled {
		t.Fatal("expected history enabled by default")
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("PGNLENS_USERNAME", "")

	configPath := filepath.Join(t.TempDir(), "config.toml")
	content := `
[paths]
input_dir = "~/games"
output_file = "~/out/report.csv"

[player]
username = "hikaru"

[analysis]
loss_bucket = "lost"
extensions = ["PGN", ".txt", ".pgn"]

[history]
enabled = false

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected config to exist at %q, got %q exists=%v", configPath, resolved, exists)
	}
	if cfg.Paths.InputDir != filepath.Join(tempHome, "games") {
		t.Fatalf("unexpected input dir %q", cfg.Paths.InputDir)
	}
	if cfg.Paths.OutputFile != filepath.Join(tempHome, "out", "report.csv") {
		t.Fatalf("unexpected output file %q", cfg.Paths.OutputFile)
	}
	if cfg.Player.Username != "hikaru" || cfg.Analysis.LossBucket != "lost" {
		t.Fatalf("unexpected player/analysis: %+v %+v", cfg.Player, cfg.Analysis)
	}
	if got := strings.Join(cfg.Analysis.Extensions, ","); got != ".pgn,.txt" {
		t.Fatalf("unexpected extensions %q", got)
	}
	if cfg.History.Enabled {
		t.Fatal("expected history disabled")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging %+v", cfg.Logging)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"empty loss bucket", func(c *config.Config) { c.Analysis.LossBucket = "" }},
		{"no extensions", func(c *config.Config) { c.Analysis.Extensions = nil }},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "chatty" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestRequireUsername(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := config.Default()
	if err := cfg.RequireUsername(); err == nil || !strings.Contains(err.Error(), "player.username") {
		t.Fatalf("expected username error, got %v", err)
	}
	cfg.Player.Username = "bob"
	if err := cfg.RequireUsername(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSampleConfigDecodesAndValidates(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sample config is not valid TOML: %v", err)
	}
	if decoded.Analysis.LossBucket != "loss" || decoded.Paths.InputDir != "chess_games" {
		t.Fatalf("unexpected sample values %+v", decoded)
	}
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("Load(sample): %v", err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.OutputFile = filepath.Join(base, "out", "games.csv")
	cfg.Paths.Database = filepath.Join(base, "state", "history.db")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{"logs", "out", "state"} {
		if info, err := os.Stat(filepath.Join(base, dir)); err != nil || !info.IsDir() {
			t.Fatalf("expected %s directory: %v", dir, err)
		}
	}
}
