package pgn

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"regexp"
	"strings"
	"unicode"
)

// Game is the parsed form of one record.
type Game struct {
	Tags Tags
	// Movetext holds every non-blank line after the tag section, each prefixed
	// by a single space.
	Movetext string
	// MoveCount is the value of the last move-number marker in the movetext.
	// A game ending on a lone Black reply counts one move short.
	MoveCount int
}

// Key, digit and space classes are Unicode-aware: tag names such as
// Événement are kept and move numbers may use any decimal digits.
var (
	tagPattern        = regexp.MustCompile(`^\[([\pL\pN_]+)[\s\p{Z}]+"((?:[^"\\]|\\.)*)"\]`)
	moveNumberPattern = regexp.MustCompile(`(\p{Nd}+)\.[\s\p{Z}]`)
)

// maxLineBytes bounds a single record line; chess.com movetext arrives on one
// line with clock comments and can exceed bufio's default.
const maxLineBytes = 4 << 20

// Parse converts the lines of one record into a Game. It never fails.
func Parse(lines []string) Game {
	game := Game{Tags: Tags{}}
	var movetext strings.Builder
	inMoves := false

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
			if key, value, ok := parseTag(line); ok {
				game.Tags[key] = value
			}
		case line == "":
			if len(game.Tags) > 0 {
				inMoves = true
			}
		case inMoves:
			movetext.WriteByte(' ')
			movetext.WriteString(line)
		}
	}

	game.Movetext = movetext.String()
	game.MoveCount = CountMoves(game.Movetext)
	return game
}

// ParseReader reads a whole record from r and parses it.
func ParseReader(r io.Reader) (Game, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return Game{Tags: Tags{}}, err
	}
	return Parse(lines), nil
}

// ReadLines splits r into lines, accepting both LF and CRLF endings.
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	return lines, nil
}

// CountMoves returns the integer of the last "N. " marker in movetext, or 0.
// Numbers too large for an int are clamped to math.MaxInt.
func CountMoves(movetext string) int {
	matches := moveNumberPattern.FindAllStringSubmatch(movetext, -1)
	if len(matches) == 0 {
		return 0
	}
	return moveNumber(matches[len(matches)-1][1])
}

func moveNumber(digits string) int {
	n := 0
	for _, r := range digits {
		d := digitValue(r)
		if n > (math.MaxInt-d)/10 {
			return math.MaxInt
		}
		n = n*10 + d
	}
	return n
}

// digitValue maps a decimal digit of any script to 0-9. Decimal digits are
// encoded in contiguous ascending runs that start at zero.
func digitValue(r rune) int {
	if r >= '0' && r <= '9' {
		return int(r - '0')
	}
	offset := 0
	for unicode.IsDigit(r - rune(offset+1)) {
		offset++
	}
	return offset % 10
}

func parseTag(line string) (string, string, bool) {
	m := tagPattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
