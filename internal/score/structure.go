package score

import (
	"fmt"
	"strings"

	"lyric_forge/internal/lexicon"
	"lyric_forge/internal/match"
	"lyric_forge/internal/normalize"
)

// scoreStructure runs the commercial drill. F is line count, flow and anchor
// words; P only receives the concrete-imagery bonus.
func scoreStructure(sub Submission, lex *lexicon.Lexicon, res *Result) {
	th := lex.Scoring.Structure
	text := normalize.JoinLower(sub.Lines)
	c := &checks{}
	f := 0

	n := len(sub.Lines)
	switch {
	case n == th.LineExact:
		f += th.LineExactPoints
		c.pass(AxisF, fmt.Sprintf("Structure: %d lines hits the %d-line target exactly.", n, th.LineExact))
	case abs(n-th.LineExact) <= th.LineTolerance:
		f += th.LineTolerancePoints
		c.pass(AxisF, fmt.Sprintf("Structure: %d lines is within %d of the %d-line target. Tighten it to %d for full marks.", n, th.LineTolerance, th.LineExact, th.LineExact))
	default:
		c.fail(AxisF, fmt.Sprintf("Structure: %d lines is far from the %d-line target (tolerance %d). Keep verses as short spacers between hooks.", n, th.LineExact, th.LineTolerance))
	}

	avg := res.AvgSyllables
	switch {
	case th.FlowPerfect.Contains(avg):
		f += th.FlowPerfect.Points
		c.pass(AxisF, fmt.Sprintf("Flow: %.1f syllables per line (%s) sits in the %s target.", avg, res.Flow, bandLabel(th.FlowPerfect)))
	case th.FlowAcceptable.Contains(avg):
		f += th.FlowAcceptable.Points
		c.pass(AxisF, fmt.Sprintf("Flow: %.1f syllables per line (%s) is acceptable (%s) but misses the %s target.", avg, res.Flow, bandLabel(th.FlowAcceptable), bandLabel(th.FlowPerfect)))
	default:
		c.fail(AxisF, fmt.Sprintf("Flow: %.1f syllables per line (%s) is outside the %s target.", avg, res.Flow, bandLabel(th.FlowPerfect)))
	}

	anchors := match.AnchorWords(text, lex.AnchorWords)
	switch {
	case anchors.Count >= th.LexiconPerfect:
		f += th.LexiconPerfectPoints
		c.pass(AxisF, fmt.Sprintf("Lexicon: used %d anchor words (%s). Strong grounding.", anchors.Count, listWords(anchors.Words)))
	case anchors.Count >= th.LexiconMin:
		f += th.LexiconMinPoints
		c.pass(AxisF, fmt.Sprintf("Lexicon: used %d anchor words (%s). Reach %d for full marks.", anchors.Count, listWords(anchors.Words), th.LexiconPerfect))
	default:
		c.fail(AxisF, fmt.Sprintf("Lexicon: only %d anchor words (%s). Need %d to ground the lyric.", anchors.Count, listWords(anchors.Words), th.LexiconMin))
	}

	concrete := match.ConcreteNouns(text, lex.ConcreteLexicon)
	p := 0
	switch {
	case concrete.Count >= th.ConcreteRich:
		p += th.ConcreteRichPoints
		c.pass(AxisP, fmt.Sprintf("Dual constraint: %d concrete nouns give the hook rich imagery.", concrete.Count))
	case concrete.Count >= th.ConcreteMin:
		p += th.ConcreteMinPoints
		c.pass(AxisP, fmt.Sprintf("Dual constraint: %d concrete nouns. Add %d more for the full imagery bonus.", concrete.Count, th.ConcreteRich-concrete.Count))
	default:
		c.fail(AxisP, fmt.Sprintf("Dual constraint: only %d concrete nouns; %d needed before imagery earns a bonus.", concrete.Count, th.ConcreteMin))
	}

	res.FScore = f
	res.PScore = p
	res.Feedback = c.feedback
}

func bandLabel(b lexicon.Band) string {
	return fmt.Sprintf("%g-%g", b.Min, b.Max)
}

func listWords(words []string) string {
	if len(words) == 0 {
		return "none"
	}
	return strings.Join(words, ", ")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
