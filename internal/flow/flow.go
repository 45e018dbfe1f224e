package flow

import "lyric_forge/internal/lexicon"

// Style is the flow label assigned from average syllables per line.
type Style string

const (
	Dense           Style = "Dense"
	Conversational  Style = "Conversational"
	Sparse          Style = "Sparse"
	Overcomplicated Style = "Overcomplicated"
)

// Classify maps an average syllables-per-line value onto a flow style. The
// triplet band is checked first, then the conversational band; anything below the
// conversational band is sparse and everything else is overcomplicated.
func Classify(avgSyllables float64, t lexicon.FlowThresholds) Style {
	switch {
	case avgSyllables >= t.TripletMin && avgSyllables <= t.TripletMax:
		return Dense
	case avgSyllables >= t.ConversationalMin && avgSyllables <= t.ConversationalMax:
		return Conversational
	case avgSyllables < t.ConversationalMin:
		return Sparse
	default:
		return Overcomplicated
	}
}
