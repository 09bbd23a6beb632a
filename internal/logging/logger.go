package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pgnlens/internal/config"
)

// LogFileName is the file written inside the configured log directory.
const LogFileName = "pgnlens.log"

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// File receives every line in append mode when set.
	File string
	// Stderr mirrors File to standard error. Without a File, output always
	// goes to stderr.
	Stderr bool
}

// New constructs a console or JSON logger. Debug level adds caller locations.
func New(opts Options) (*slog.Logger, error) {
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}
	if format != "console" && format != "json" {
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	w, err := openOutput(opts)
	if err != nil {
		return nil, err
	}
	level := parseLevel(opts.Level)
	addSource := level <= slog.LevelDebug

	if format == "json" {
		return slog.New(newJSONHandler(w, level, addSource)), nil
	}
	return slog.New(newConsoleHandler(w, level, addSource)), nil
}

// NewFromConfig logs to stderr and to LogFileName under cfg.Paths.LogDir, so
// command output on stdout stays clean.
func NewFromConfig(cfg *config.Config) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{Stderr: true})
	}
	opts := Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Stderr: true,
	}
	if cfg.Paths.LogDir != "" {
		opts.File = filepath.Join(cfg.Paths.LogDir, LogFileName)
	}
	return New(opts)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openOutput(opts Options) (io.Writer, error) {
	if opts.File == "" {
		return os.Stderr, nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}
	file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", opts.File, err)
	}
	if opts.Stderr {
		return io.MultiWriter(os.Stderr, file), nil
	}
	return file, nil
}

func newJSONHandler(w io.Writer, level slog.Level, addSource bool) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return attr
			}
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
				attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
			case slog.LevelKey:
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
			case slog.SourceKey:
				if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
					attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
				}
			}
			return attr
		},
	})
}
