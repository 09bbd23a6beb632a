package classify

import "strings"

// UnknownOpening is returned when no catalog entry fits an ECO code.
const UnknownOpening = "Unknown"

// Opening pairs an ECO code with a readable name.
type Opening struct {
	Code string
	Name string
}

// Catalog is an ordered, read-only ECO table. Prefix fallback returns the
// first entry in insertion order, so the order of entries is significant.
type Catalog struct {
	entries []Opening
	byCode  map[string]string
}

// NewCatalog builds a catalog from entries. A repeated code keeps its first
// position and takes the last name, as an ordered map would.
func NewCatalog(entries []Opening) *Catalog {
	c := &Catalog{
		entries: make([]Opening, 0, len(entries)),
		byCode:  make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		if _, seen := c.byCode[e.Code]; seen {
			for i := range c.entries {
				if c.entries[i].Code == e.Code {
					c.entries[i].Name = e.Name
				}
			}
		} else {
			c.entries = append(c.entries, e)
		}
		c.byCode[e.Code] = e.Name
	}
	return c
}

// Len reports the number of distinct codes.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the catalog in insertion order.
func (c *Catalog) Entries() []Opening {
	out := make([]Opening, len(c.entries))
	copy(out, c.entries)
	return out
}

// Resolve names the opening for an ECO code. An exact match wins; otherwise
// the first entry sharing the code's two-character prefix, then its
// one-character prefix. This is a coarse lookup: "B99" can land on any B9x
// entry and "B5" on whichever B-code comes first in the table.
func (c *Catalog) Resolve(code string) string {
	if code == "" {
		return UnknownOpening
	}
	if name, ok := c.byCode[code]; ok {
		return name
	}
	runes := []rune(code)
	for _, n := range []int{2, 1} {
		prefix := code
		if len(runes) > n {
			prefix = string(runes[:n])
		}
		for _, e := range c.entries {
			if strings.HasPrefix(e.Code, prefix) {
				return e.Name
			}
		}
	}
	return UnknownOpening
}

// DefaultCatalog holds the common ECO codes seen in online rapid play.
var DefaultCatalog = NewCatalog([]Opening{
	{"A00", "Uncommon Opening"},
	{"A01", "Nimzo-Larsen Attack"},
	{"A02", "Bird's Opening"},
	{"A04", "Reti Opening"},
	{"A10", "English Opening"},
	{"A20", "English Opening"},
	{"A28", "English Opening: Four Knights"},
	{"A40", "Queen's Pawn Game"},
	{"A45", "Trompowsky Attack"},
	{"A46", "Indian Game"},
	{"A48", "London System"},
	{"B00", "Uncommon King's Pawn Opening"},
	{"B01", "Scandinavian Defense"},
	{"B02", "Alekhine's Defense"},
	{"B07", "Pirc Defense"},
	{"B10", "Caro-Kann Defense"},
	{"B12", "Caro-Kann Defense"},
	{"B20", "Sicilian Defense"},
	{"B21", "Sicilian: Smith-Morra Gambit"},
	{"B22", "Sicilian: Alapin"},
	{"B27", "Sicilian Defense"},
	{"B30", "Sicilian Defense"},
	{"B40", "Sicilian Defense"},
	{"B44", "Sicilian: Taimanov"},
	{"B50", "Sicilian Defense"},
	{"B90", "Sicilian: Najdorf"},
	{"C00", "French Defense"},
	{"C02", "French: Advance Variation"},
	{"C20", "King's Pawn Game"},
	{"C21", "Center Game"},
	{"C23", "Bishop's Opening"},
	{"C25", "Vienna Game"},
	{"C28", "Vienna Game"},
	{"C40", "King's Knight Opening"},
	{"C42", "Petrov's Defense"},
	{"C44", "Scotch Game"},
	{"C45", "Scotch Game"},
	{"C46", "Three Knights Game"},
	{"C47", "Four Knights Game"},
	{"C50", "Italian Game"},
	{"C55", "Italian Game: Two Knights"},
	{"C60", "Ruy Lopez"},
	{"C65", "Ruy Lopez: Berlin Defense"},
	{"D00", "Queen's Pawn Game"},
	{"D02", "London System"},
	{"D06", "Queen's Gambit"},
	{"D10", "Slav Defense"},
	{"D11", "Slav Defense"},
	{"D20", "Queen's Gambit Accepted"},
	{"D23", "Queen's Gambit Accepted"},
	{"D30", "Queen's Gambit Declined"},
	{"D31", "Queen's Gambit Declined"},
	{"D35", "Queen's Gambit Declined"},
	{"D37", "Queen's Gambit Declined"},
	{"D55", "Queen's Gambit Declined"},
	{"E00", "Indian Defense"},
	{"E04", "Catalan Opening"},
	{"E10", "Indian Defense"},
	{"E20", "Nimzo-Indian Defense"},
	{"E24", "Nimzo-Indian Defense"},
	{"E60", "King's Indian Defense"},
	{"E70", "King's Indian Defense"},
})

// OpeningName resolves code against DefaultCatalog.
func OpeningName(code string) string {
	return DefaultCatalog.Resolve(code)
}
