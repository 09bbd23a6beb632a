package classify

import (
	"errors"
	"testing"

	"pgnlens/internal/pgn"
)

func TestResolveColor(t *testing.T) {
	tags := pgn.Tags{pgn.TagWhite: "Bob", pgn.TagBlack: "alice"}
	if got := ResolveColor(tags, "bob"); got != White {
		t.Fatalf("ResolveColor(bob) = %q, want White", got)
	}
	if got := ResolveColor(tags, "ALICE"); got != Black {
		t.Fatalf("ResolveColor(ALICE) = %q, want Black", got)
	}
	// Unmatched identities fall back to Black without checking the Black tag.
	if got := ResolveColor(tags, "carol"); got != Black {
		t.Fatalf("ResolveColor(carol) = %q, want Black", got)
	}
}

func TestResolveColorStrict(t *testing.T) {
	tags := pgn.Tags{pgn.TagWhite: "bob", pgn.TagBlack: "Alice"}
	if got, err := ResolveColorStrict(tags, "alice"); err != nil || got != Black {
		t.Fatalf("ResolveColorStrict(alice) = %q, %v", got, err)
	}
	if _, err := ResolveColorStrict(tags, "carol"); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestRatingDiff(t *testing.T) {
	cases := []struct {
		name  string
		tags  pgn.Tags
		color Color
		want  int
	}{
		{"white lower rated", pgn.Tags{pgn.TagWhiteElo: "1500", pgn.TagBlackElo: "1600"}, White, 100},
		{"black lower rated", pgn.Tags{pgn.TagWhiteElo: "1500", pgn.TagBlackElo: "1600"}, Black, -100},
		{"missing white counts as zero", pgn.Tags{pgn.TagBlackElo: "1200"}, White, 1200},
		{"both missing", pgn.Tags{}, Black, 0},
		{"malformed white zeroes result", pgn.Tags{pgn.TagWhiteElo: "?", pgn.TagBlackElo: "1600"}, White, 0},
		{"empty black zeroes result", pgn.Tags{pgn.TagWhiteElo: "1500", pgn.TagBlackElo: ""}, Black, 0},
		{"surrounding whitespace tolerated", pgn.Tags{pgn.TagWhiteElo: " 1500 ", pgn.TagBlackElo: "1450"}, White, -50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RatingDiff(tc.tags, tc.color); got != tc.want {
				t.Fatalf("RatingDiff = %d, want %d", got, tc.want)
			}
		})
	}
}
