package classify

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"pgnlens/internal/pgn"
)

// Color is the side the analysed player had.
type Color string

const (
	White Color = "White"
	Black Color = "Black"
)

// ErrPlayerNotFound reports that the identity matched neither player tag.
var ErrPlayerNotFound = errors.New("player not found in game")

// sameIdentity compares usernames ignoring case.
func sameIdentity(a, b string) bool {
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}

// ResolveColor returns White when the White tag names username and Black
// otherwise. The Black tag is not consulted, so an identity matching neither
// player is reported as Black.
func ResolveColor(tags pgn.Tags, username string) Color {
	if sameIdentity(tags.Get(pgn.TagWhite), username) {
		return White
	}
	return Black
}

// ResolveColorStrict is ResolveColor that also requires the Black tag to name
// username before answering Black.
func ResolveColorStrict(tags pgn.Tags, username string) (Color, error) {
	switch {
	case sameIdentity(tags.Get(pgn.TagWhite), username):
		return White, nil
	case sameIdentity(tags.Get(pgn.TagBlack), username):
		return Black, nil
	default:
		return "", fmt.Errorf("%w: %q is neither %q nor %q", ErrPlayerNotFound,
			username, tags.Get(pgn.TagWhite), tags.Get(pgn.TagBlack))
	}
}

// RatingDiff is the opponent's rating minus the player's. A missing rating
// counts as zero; a rating present but not an integer zeroes the whole result.
func RatingDiff(tags pgn.Tags, color Color) int {
	white, ok := parseRating(tags, pgn.TagWhiteElo)
	if !ok {
		return 0
	}
	black, ok := parseRating(tags, pgn.TagBlackElo)
	if !ok {
		return 0
	}
	if color == White {
		return black - white
	}
	return white - black
}

func parseRating(tags pgn.Tags, key string) (int, bool) {
	raw, present := tags.Lookup(key)
	if !present {
		return 0, true
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return n, true
}
