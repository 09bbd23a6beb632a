package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// shortRunIDLen is how much of a run ID the console shows.
const shortRunIDLen = 8

// consoleHandler renders one line per record:
//
//	2026-01-02T15:04:05Z WARN  [analysis] (1f0c2a9e) loss/game_1.pgn: game unreadable event_type=game_unreadable
//
// The component, run ID and game identity are lifted out of the attributes
// into the line prefix; everything else follows as key=value pairs.
type consoleHandler struct {
	mu        *sync.Mutex
	w         io.Writer
	level     slog.Leveler
	addSource bool
	group     string
	game      gameFields
	fields    []field
}

type field struct {
	key   string
	value string
}

type gameFields struct {
	component string
	runID     string
	bucket    string
	source    string
}

func newConsoleHandler(w io.Writer, level slog.Leveler, addSource bool) *consoleHandler {
	return &consoleHandler{mu: new(sync.Mutex), w: w, level: level, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	game := h.game
	fields := slices.Clone(h.fields)
	record.Attrs(func(attr slog.Attr) bool {
		fields = game.collect(fields, h.group, attr)
		return true
	})

	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var b strings.Builder
	b.WriteString(ts.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, " %-5s", levelLabel(record.Level))
	if game.component != "" {
		b.WriteString(" [" + game.component + "]")
	}
	if game.runID != "" {
		b.WriteString(" (" + shortRunID(game.runID) + ")")
	}
	if id := game.identity(); id != "" {
		b.WriteString(" " + id + ":")
	}
	b.WriteByte(' ')
	if msg := strings.TrimSpace(record.Message); msg != "" {
		b.WriteString(msg)
	} else {
		b.WriteString("(no message)")
	}
	if h.addSource {
		if src := record.Source(); src != nil {
			fmt.Fprintf(&b, " [%s:%d]", filepath.Base(src.File), src.Line)
		}
	}
	for _, f := range fields {
		b.WriteString(" " + f.key + "=" + f.value)
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.fields = slices.Clone(h.fields)
	for _, attr := range attrs {
		clone.fields = clone.game.collect(clone.fields, h.group, attr)
	}
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.group = joinKey(h.group, name)
	return &clone
}

// collect routes the well-known game fields into g and appends the rest to dst.
// Grouped attributes are never treated as game fields.
func (g *gameFields) collect(dst []field, group string, attr slog.Attr) []field {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return dst
	}
	if attr.Value.Kind() == slog.KindGroup {
		inner := group
		if attr.Key != "" {
			inner = joinKey(group, attr.Key)
		}
		for _, member := range attr.Value.Group() {
			dst = g.collect(dst, inner, member)
		}
		return dst
	}
	if group == "" {
		switch attr.Key {
		case FieldComponent:
			g.component = attr.Value.String()
			return dst
		case FieldRunID:
			g.runID = attr.Value.String()
			return dst
		case FieldBucket:
			g.bucket = attr.Value.String()
			return dst
		case FieldSource:
			g.source = attr.Value.String()
			return dst
		}
	}
	return append(dst, field{key: joinKey(group, attr.Key), value: renderValue(attr.Value)})
}

func (g gameFields) identity() string {
	switch {
	case g.bucket != "" && g.source != "":
		return g.bucket + "/" + g.source
	case g.source != "":
		return g.source
	default:
		return g.bucket
	}
}

func shortRunID(id string) string {
	if len(id) > shortRunIDLen {
		return id[:shortRunIDLen]
	}
	return id
}

func joinKey(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}

func renderValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindTime:
		s = v.Time().UTC().Format(time.RFC3339)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		s = v.String()
	}
	if s == "" || strings.ContainsFunc(s, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.Quote(s)
	}
	return s
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
