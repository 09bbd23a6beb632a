package pgn

// Standard tag names consumed by the classifiers and the CSV export.
const (
	TagEvent       = "Event"
	TagSite        = "Site"
	TagDate        = "Date"
	TagWhite       = "White"
	TagBlack       = "Black"
	TagResult      = "Result"
	TagWhiteElo    = "WhiteElo"
	TagBlackElo    = "BlackElo"
	TagTimeControl = "TimeControl"
	TagECO         = "ECO"
	TagTermination = "Termination"
	TagLink        = "Link"
)

// Tags maps tag names to their raw values. Keys are case-sensitive and the
// vocabulary is open: any word-character key found in a record is kept.
type Tags map[string]string

// Get returns the value for key, or "" when the tag is absent.
func (t Tags) Get(key string) string {
	return t[key]
}

// Lookup reports whether key was present, distinguishing an absent tag from
// one recorded with an empty value.
func (t Tags) Lookup(key string) (string, bool) {
	value, ok := t[key]
	return value, ok
}
