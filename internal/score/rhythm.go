package score

import (
	"fmt"
	"strings"

	"lyric_forge/internal/lexicon"
)

// scoreRhythm grades a stress map drill: lyric lines alternate with map lines of
// '/' (stressed) and '.' (unstressed) markers. Only R is scored.
func scoreRhythm(sub Submission, lex *lexicon.Lexicon, res *Result) {
	th := lex.Scoring.Rhythm
	c := &checks{}

	if len(sub.Lines) != th.Lines {
		c.fail(AxisR, fmt.Sprintf("Rhythmic map: expected exactly %d lines (%d lyric lines each followed by its map), found %d.", th.Lines, th.Lines/2, len(sub.Lines)))
		res.Feedback = c.feedback
		return
	}

	target := sub.RhythmTarget
	if target == "" {
		target = Conversational
	}
	band := th.Conversational
	if target == Triplet {
		band = th.Triplet
	}

	r := 0
	for i, idx := 0, 1; idx < len(sub.Lines); i, idx = i+1, idx+2 {
		ratio, ok := stressRatio(sub.Lines[idx])
		if !ok {
			c.fail(AxisR, fmt.Sprintf("Line %d: map is empty. Cannot score stress ratio.", i+1))
			continue
		}
		if band.Contains(ratio) {
			r += th.LinePoints
			c.pass(AxisR, fmt.Sprintf("Line %d: stress ratio %.2f fits %s flow (%.2f-%.2f).", i+1, ratio, strings.ToLower(string(target)), band.Min, band.Max))
		} else {
			c.fail(AxisR, fmt.Sprintf("Line %d: stress ratio %.2f is outside the %s range (%.2f-%.2f).", i+1, ratio, strings.ToLower(string(target)), band.Min, band.Max))
		}
	}

	if r >= th.MasteryThreshold {
		r += th.MasteryPoints
		c.pass(AxisR, "Flow mastery: the stress pattern is consistent enough to predict.")
	} else {
		c.fail(AxisR, "Flow feedback: the stress pattern needs more consistency to hit the target density.")
	}

	res.RScore = r
	res.Feedback = c.feedback
}

func stressRatio(mapLine string) (float64, bool) {
	stressed := strings.Count(mapLine, "/")
	total := stressed + strings.Count(mapLine, ".")
	if total == 0 {
		return 0, false
	}
	return float64(stressed) / float64(total), true
}
