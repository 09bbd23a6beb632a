package logging_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pgnlens/internal/config"
	"pgnlens/internal/logging"
)

func newFileLogger(t *testing.T, format, level string) (string, func() string) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "test.log")
	logger, err := logging.New(logging.Options{
		Format: format,
		Level:  level,
		File:   logPath,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger = logging.NewComponentLogger(logger, "analysis")
	ctx := logging.WithGame(logging.WithRunID(context.Background(), "run-1"), "loss", "game_1.pgn")
	logging.WithContext(ctx, logger).Info("game classified", logging.Int("move_count", 31))
	return logPath, func() string {
		data, err := os.ReadFile(logPath)
		if err != nil {
			t.Fatalf("read log file: %v", err)
		}
		return string(data)
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello")

	data, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, logging.LogFileName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("expected message in log file, got %q", data)
	}
}

func TestConsoleLoggerLiftsGameIdentity(t *testing.T) {
	_, read := newFileLogger(t, "console", "info")
	content := strings.TrimSpace(read())
	want := "INFO  [analysis] (run-1) loss/game_1.pgn: game classified move_count=31"
	if !strings.HasSuffix(content, want) {
		t.Fatalf("expected line ending %q, got %q", want, content)
	}
	for _, lifted := range []string{"run_id=", "bucket=", "source=", "component="} {
		if strings.Contains(content, lifted) {
			t.Fatalf("expected %q to be lifted into the prefix, got %q", lifted, content)
		}
	}
	if strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestConsoleLoggerShortensRunIDAndGroupsKeys(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "group.log")
	logger, err := logging.New(logging.Options{Format: "console", File: logPath})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := logging.WithRunID(context.Background(), "0123456789abcdef")
	logging.WithContext(ctx, logger).WithGroup("csv").Info("written",
		logging.Int("rows", 2), logging.String(logging.FieldSource, "x.pgn"))
	data, _ := os.ReadFile(logPath)
	content := string(data)
	for _, want := range []string{"(01234567) written", "csv.rows=2", "csv.source=x.pgn"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in %q", want, content)
		}
	}
}

func TestConsoleLoggerIncludesSourceAtDebug(t *testing.T) {
	_, read := newFileLogger(t, "console", "debug")
	if !strings.Contains(read(), "logger_test.go:") {
		t.Fatal("expected caller information at debug level")
	}
}

func TestJSONLoggerRenamesKeys(t *testing.T) {
	_, read := newFileLogger(t, "json", "info")
	var payload map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(read())), &payload); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if payload["level"] != "info" || payload["msg"] != "game classified" {
		t.Fatalf("unexpected payload %v", payload)
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts key in %v", payload)
	}
	if payload[logging.FieldRunID] != "run-1" || payload[logging.FieldComponent] != "analysis" {
		t.Fatalf("missing fields in %v", payload)
	}
}

func TestDebugSuppressedAtInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "level.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", File: logPath})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("hidden")
	logger.Warn("shown")
	data, _ := os.ReadFile(logPath)
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Fatalf("unexpected level filtering: %q", data)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", File: logPath})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logging.WarnWithContext(logger, "game unreadable", "game_unreadable",
		logging.String(logging.FieldErrorHint, "check file permissions"))
	data, _ := os.ReadFile(logPath)
	content := string(data)
	for _, want := range []string{"event_type=game_unreadable", `error_hint="check file permissions"`, "impact="} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in %q", want, content)
		}
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger should never be enabled")
	}
	logging.WithContext(context.Background(), nil).Info("nothing")
}
