package pgn_test

import (
	"math"
	"strings"
	"testing"

	"pgnlens/internal/pgn"
)

func TestParseExtractsTagsAndMoveCount(t *testing.T) {
	lines := []string{
		`[White "bob"]`,
		`[Black "alice"]`,
		`[WhiteElo "1500"]`,
		`[BlackElo "1600"]`,
		``,
		`1. e4 e5 2. Nf3 Nc6 3. Bb5 1-0`,
	}

	game := pgn.Parse(lines)

	if got := game.Tags.Get(pgn.TagWhite); got != "bob" {
		t.Fatalf("White = %q, want bob", got)
	}
	if got := game.Tags.Get(pgn.TagBlackElo); got != "1600" {
		t.Fatalf("BlackElo = %q, want 1600", got)
	}
	if game.MoveCount != 3 {
		t.Fatalf("MoveCount = %d, want 3", game.MoveCount)
	}
}

func TestParseDropsMalformedTagLines(t *testing.T) {
	lines := []string{
		`[Event "Live Chess]`,
		`[Site]`,
		`[ "no key"]`,
		`[Date "2024.01.02"]`,
		`[Result "0-1"]`,
	}

	game := pgn.Parse(lines)

	if _, ok := game.Tags.Lookup(pgn.TagEvent); ok {
		t.Fatal("expected malformed Event tag to be dropped")
	}
	if _, ok := game.Tags.Lookup(pgn.TagSite); ok {
		t.Fatal("expected bare Site tag to be dropped")
	}
	if game.Tags.Get(pgn.TagDate) != "2024.01.02" || game.Tags.Get(pgn.TagResult) != "0-1" {
		t.Fatalf("well-formed tags after malformed lines were lost: %#v", game.Tags)
	}
	if len(game.Tags) != 2 {
		t.Fatalf("expected 2 tags, got %d: %#v", len(game.Tags), game.Tags)
	}
}

func TestParseLastDuplicateTagWins(t *testing.T) {
	game := pgn.Parse([]string{`[ECO "B10"]`, `[ECO "C60"]`})
	if got := game.Tags.Get(pgn.TagECO); got != "C60" {
		t.Fatalf("ECO = %q, want C60", got)
	}
}

func TestParseEmptyValueIsPresent(t *testing.T) {
	game := pgn.Parse([]string{`[Termination ""]`})
	value, ok := game.Tags.Lookup(pgn.TagTermination)
	if !ok || value != "" {
		t.Fatalf("expected present empty Termination, got %q ok=%v", value, ok)
	}
}

func TestParseKeepsEscapedQuotes(t *testing.T) {
	game := pgn.Parse([]string{`[Event "The \"Open\""]`})
	if got := game.Tags.Get(pgn.TagEvent); got != `The \"Open\"` {
		t.Fatalf("Event = %q", got)
	}
}

func TestParseIgnoresBlankLinesBeforeTags(t *testing.T) {
	lines := []string{
		"",
		"stray text",
		"",
		`[Event "Rapid"]`,
		"",
		"1. d4 d5 2. c4",
		"e6 3. Nc3",
	}

	game := pgn.Parse(lines)

	if game.MoveCount != 3 {
		t.Fatalf("MoveCount = %d, want 3", game.MoveCount)
	}
	if strings.Contains(game.Movetext, "stray") {
		t.Fatalf("text before tags leaked into movetext: %q", game.Movetext)
	}
	if game.Movetext != " 1. d4 d5 2. c4 e6 3. Nc3" {
		t.Fatalf("unexpected movetext %q", game.Movetext)
	}
}

func TestParseWithoutTagsOrMoves(t *testing.T) {
	cases := []struct {
		name  string
		lines []string
	}{
		{"empty", nil},
		{"only blanks", []string{"", "   ", ""}},
		{"movetext without tags", []string{"", "1. e4 e5 2. Nf3"}},
		{"tags without movetext", []string{`[Event "x"]`}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			game := pgn.Parse(tc.lines)
			if game.MoveCount != 0 {
				t.Fatalf("MoveCount = %d, want 0", game.MoveCount)
			}
			if game.Tags == nil {
				t.Fatal("expected non-nil tag mapping")
			}
		})
	}
}

func TestParseCountsLastMarkerNotPlies(t *testing.T) {
	// Black's final reply to move 30 does not produce a new marker.
	game := pgn.Parse([]string{`[Event "x"]`, "", "29. Qh5 g6 30. Qxf7# Kd8 0-1"})
	if game.MoveCount != 30 {
		t.Fatalf("MoveCount = %d, want 30", game.MoveCount)
	}
}

func TestCountMovesIgnoresBlackContinuationMarkers(t *testing.T) {
	movetext := " 1. e4 {[%clk 0:09:58]} 1... e5 {[%clk 0:09:57]} 2. Nf3 2... Nc6 *"
	if got := pgn.CountMoves(movetext); got != 2 {
		t.Fatalf("CountMoves = %d, want 2", got)
	}
}

func TestCountMovesRequiresTrailingWhitespace(t *testing.T) {
	if got := pgn.CountMoves(" 1. e4 e5 2."); got != 1 {
		t.Fatalf("CountMoves = %d, want 1", got)
	}
}

func TestParseKeepsNonASCIITagNames(t *testing.T) {
	game := pgn.Parse([]string{`[Événement "Coupe"]`, `[White "bob"]`})
	if got, ok := game.Tags.Lookup("Événement"); !ok || got != "Coupe" {
		t.Fatalf("expected Événement tag, got %#v", game.Tags)
	}
}

func TestCountMovesClampsOverflow(t *testing.T) {
	if got := pgn.CountMoves(" 99999999999999999999. Kf1"); got != math.MaxInt {
		t.Fatalf("CountMoves = %d, want %d", got, math.MaxInt)
	}
}

func TestCountMovesReadsNonASCIIDigits(t *testing.T) {
	tests := map[string]int{
		" ١. e4 e5 ٤٢. Kg1": 42,
		" 1. e4 ３. Nf3":     3,
		" 1. e4 𝟏𝟐. Nf3":    12,
		" 7.\u00a0e4":       7,
	}
	for movetext, want := range tests {
		if got := pgn.CountMoves(movetext); got != want {
			t.Fatalf("CountMoves(%q) = %d, want %d", movetext, got, want)
		}
	}
}

func TestParseReaderHandlesCRLF(t *testing.T) {
	input := "[White \"bob\"]\r\n[Black \"alice\"]\r\n\r\n1. e4 e5 2. Qh5 Nc6 3. Bc4 Nf6 4. Qxf7# 1-0\r\n"
	game, err := pgn.ParseReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}
	if game.Tags.Get(pgn.TagBlack) != "alice" {
		t.Fatalf("unexpected tags %#v", game.Tags)
	}
	if game.MoveCount != 4 {
		t.Fatalf("MoveCount = %d, want 4", game.MoveCount)
	}
}
