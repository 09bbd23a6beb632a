package testsupport

import (
	"path/filepath"
	"testing"

	"pgnlens/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Player.Username = "bob"
	cfgVal.Paths.InputDir = filepath.Join(base, "games")
	cfgVal.Paths.OutputFile = filepath.Join(base, "out", "analytics.csv")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.Database = filepath.Join(base, "state", "history.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithUsername sets the analysed player on the test config.
func WithUsername(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Player.Username = name
	}
}

// WithoutHistory disables the SQLite run history.
func WithoutHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.InputDir)
}
