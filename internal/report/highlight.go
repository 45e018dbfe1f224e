package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"lyric_forge/internal/lexicon"
	"lyric_forge/internal/match"
	"lyric_forge/internal/normalize"
	"lyric_forge/internal/score"
)

// TermClass is one group of matched words highlighted in the lyric.
type TermClass struct {
	Name  string
	Words []string
	style lipgloss.Style
}

// MatchedTerms lists the words the rubric for kind matched in text, in
// highlight priority order. Rhythm drills have none.
func MatchedTerms(kind score.Kind, lines []string, mood, motif string, lex *lexicon.Lexicon) []TermClass {
	text := normalize.JoinLower(lines)
	var classes []TermClass
	switch kind {
	case score.StructureDrill:
		classes = []TermClass{
			{Name: "anchor", Words: match.AnchorWords(text, lex.AnchorWords).Words, style: anchorStyle},
			{Name: "concrete", Words: match.ConcreteNouns(text, lex.ConcreteLexicon).Words, style: concreteStyle},
		}
	case score.PoeticWorkout:
		classes = []TermClass{
			{Name: "abstract", Words: match.AbstractNouns(text, lex.AbstractNouns).Words, style: abstractStyle},
			{Name: "motif", Words: match.MotifDensity(text, lex.SemanticMotifs, motif).Words, style: motifStyle},
			{Name: "sentiment", Words: match.Sentiment(text, lex.SentimentWords, mood).Words, style: sentimentStyle},
			{Name: "concrete", Words: match.ConcreteNouns(text, lex.ConcreteLexicon).Words, style: concreteStyle},
		}
	}
	return lo.Filter(classes, func(c TermClass, _ int) bool { return len(c.Words) > 0 })
}

// ClassifyToken returns the first class with a word contained in token, or
// ok=false.
func ClassifyToken(token string, classes []TermClass) (TermClass, bool) {
	lower := strings.ToLower(token)
	return lo.Find(classes, func(c TermClass) bool {
		return lo.SomeBy(c.Words, func(w string) bool { return strings.Contains(lower, w) })
	})
}

// HighlightLine styles every token of line that contains a matched word.
func HighlightLine(line string, classes []TermClass) string {
	fields := strings.Fields(line)
	for i, tok := range fields {
		if c, ok := ClassifyToken(tok, classes); ok {
			fields[i] = c.style.Render(tok)
		}
	}
	return strings.Join(fields, " ")
}
