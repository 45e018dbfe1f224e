package score

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"

	"lyric_forge/internal/lexicon"
	"lyric_forge/internal/match"
	"lyric_forge/internal/normalize"
)

var metaphorHeaderPattern = regexp.MustCompile(`(\w+)\s*=\s*(\w+)`)

// scorePoetic runs the depth workout. P is purity, imagery and cohesion; F only
// receives the final-four rhyme bonus.
func scorePoetic(sub Submission, lex *lexicon.Lexicon, res *Result) {
	th := lex.Scoring.Poetic
	c := &checks{}
	body := sub.Lines
	emotion := ""

	if th.MetaphorHeader {
		header := metaphorHeaderPattern.FindStringSubmatch(strings.ToLower(sub.Lines[0]))
		if header == nil {
			c.fail(AxisP, "Metaphor format: the first line must read 'Motif = Emotion'. Nothing else was scored.")
			res.Feedback = c.feedback
			return
		}
		emotion = header[2]
		body = sub.Lines[1:]
		c.pass(AxisP, fmt.Sprintf("Metaphor: %s stands in for %s.", header[1], emotion))
	}

	text := normalize.JoinLower(body)
	p := 0

	abstract := match.AbstractNouns(text, lex.AbstractNouns)
	if emotion != "" {
		abstract.Words = lo.Without(abstract.Words, emotion)
		abstract.Count = len(abstract.Words)
	}
	switch {
	case abstract.Count <= th.AbstractPerfect:
		p += th.AbstractPerfectPoints
		c.pass(AxisP, "Purity: no abstract nouns. The emotion lives in the objects.")
	case abstract.Count <= th.AbstractMax:
		p += th.AbstractPartialPoints
		c.fail(AxisP, fmt.Sprintf("Purity: %d abstract noun (%s). Swap it for something you can touch.", abstract.Count, listWords(abstract.Words)))
	default:
		c.fail(AxisP, fmt.Sprintf("Purity warning: %d abstract nouns (%s), more than the %d allowed. No points.", abstract.Count, listWords(abstract.Words), th.AbstractMax))
	}

	concrete := match.ConcreteNouns(text, lex.ConcreteLexicon)
	spread := fmt.Sprintf("%d sensory categories (%s)", len(concrete.Categories), listWords(concrete.Categories))
	switch {
	case concrete.Count >= th.ConcretePerfect:
		p += th.ConcretePerfectPoints
		c.pass(AxisP, fmt.Sprintf("Imagery: %d concrete nouns across %s.", concrete.Count, spread))
	case concrete.Count >= th.ConcreteMin:
		p += th.ConcreteMinPoints
		c.pass(AxisP, fmt.Sprintf("Imagery: %d concrete nouns across %s. Reach %d for full marks.", concrete.Count, spread, th.ConcretePerfect))
	default:
		c.fail(AxisP, fmt.Sprintf("Imagery: only %d concrete nouns across %s; %d needed.", concrete.Count, spread, th.ConcreteMin))
	}

	motif := match.MotifDensity(text, lex.SemanticMotifs, sub.Motif)
	sentiment := match.Sentiment(text, lex.SentimentWords, sub.Mood)
	var missing []string
	if motif.Density < th.MotifDensityMin {
		missing = append(missing, fmt.Sprintf("motif density %d of %d (%d short)", motif.Density, th.MotifDensityMin, th.MotifDensityMin-motif.Density))
	}
	if len(motif.Categories) < th.MotifDiversity {
		missing = append(missing, fmt.Sprintf("motif categories %d of %d (%d short)", len(motif.Categories), th.MotifDiversity, th.MotifDiversity-len(motif.Categories)))
	}
	if sentiment.Count < th.SentimentMin {
		missing = append(missing, fmt.Sprintf("%s sentiment words %d of %d (%d short)", strings.ToLower(sub.Mood), sentiment.Count, th.SentimentMin, th.SentimentMin-sentiment.Count))
	}
	if len(missing) == 0 {
		p += th.CohesionPoints
		c.pass(AxisP, fmt.Sprintf("Cohesion: the %s motif (%d hits over %s) carries the %s mood (%s).",
			sub.Motif, motif.Density, listWords(motif.Categories), strings.ToLower(sub.Mood), listWords(sentiment.Words)))
	} else {
		c.fail(AxisP, fmt.Sprintf("Cohesion: %s.", strings.Join(missing, "; ")))
	}

	f := 0
	if words, ok := match.FinalWords(body); !ok {
		c.fail(AxisF, fmt.Sprintf("Rhyme: insufficient lines for the final-four couplet check (%d of 4).", len(body)))
	} else if match.EndRhymeCouplet(body) {
		f += th.RhymePoints
		c.pass(AxisF, fmt.Sprintf("Dual constraint: the closing couplets rhyme AABB (%s/%s, %s/%s).", words[0], words[1], words[2], words[3]))
	} else {
		c.fail(AxisF, fmt.Sprintf("Dual constraint: the last four lines end %s, %s, %s, %s. Close on two clean AABB couplets.", words[0], words[1], words[2], words[3]))
	}

	if match.HasRepeatedSubstantiveLine(body, lex.Scoring.RepeatMinLength) {
		c.fail(AxisP, "Linear path: a line repeats word for word. The workout wants forward motion, not a chorus (advisory).")
	}

	res.PScore = p
	res.FScore = f
	res.Feedback = c.feedback
}
