package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Game describes a minimal PGN record for fixtures.
type Game struct {
	White       string
	Black       string
	WhiteElo    string
	BlackElo    string
	ECO         string
	Termination string
	Moves       string
}

// PGN renders g as record text with a tag section, a blank line and movetext.
// Empty fields are left out of the tag section.
func (g Game) PGN() string {
	var b strings.Builder
	b.WriteString("[Event \"Live Chess\"]\n[Site \"Chess.com\"]\n")
	for _, tag := range []struct{ key, value string }{
		{"White", g.White},
		{"Black", g.Black},
		{"WhiteElo", g.WhiteElo},
		{"BlackElo", g.BlackElo},
		{"ECO", g.ECO},
		{"Termination", g.Termination},
	} {
		if tag.value != "" {
			fmt.Fprintf(&b, "[%s %q]\n", tag.key, tag.value)
		}
	}
	b.WriteString("\n")
	b.WriteString(g.Moves)
	b.WriteString("\n")
	return b.String()
}

// WriteGame writes g to dir/bucket/name and returns the path.
func WriteGame(t testing.TB, dir, bucket, name string, g Game) string {
	t.Helper()
	return WriteText(t, filepath.Join(dir, bucket, name), g.PGN())
}

// WriteText writes content to path, creating parent directories.
func WriteText(t testing.TB, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
