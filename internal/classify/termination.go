package classify

import "strings"

// Termination is the normalised reason a game ended.
type Termination string

const (
	TerminationUnknown              Termination = "Unknown"
	TerminationCheckmate            Termination = "Checkmate"
	TerminationResignation          Termination = "Resignation"
	TerminationTimeout              Termination = "Timeout"
	TerminationAbandoned            Termination = "Abandoned"
	TerminationDrawAgreement        Termination = "Draw by Agreement"
	TerminationDrawRepetition       Termination = "Draw by Repetition"
	TerminationStalemate            Termination = "Stalemate"
	TerminationInsufficientMaterial Termination = "Insufficient Material"
	TerminationOther                Termination = "Other"
)

// Checked in order; the first keyword contained in the text wins.
var terminationKeywords = []struct {
	keyword  string
	category Termination
}{
	{"checkmate", TerminationCheckmate},
	{"resign", TerminationResignation},
	{"timeout", TerminationTimeout},
	{"abandoned", TerminationAbandoned},
	{"agreement", TerminationDrawAgreement},
	{"repetition", TerminationDrawRepetition},
	{"stalemate", TerminationStalemate},
	{"insufficient", TerminationInsufficientMaterial},
}

// ClassifyTermination maps free-form termination text such as
// "alice won by resignation" onto a Termination.
func ClassifyTermination(text string) Termination {
	if text == "" {
		return TerminationUnknown
	}
	lower := strings.ToLower(text)
	for _, kw := range terminationKeywords {
		if strings.Contains(lower, kw.keyword) {
			return kw.category
		}
	}
	return TerminationOther
}
