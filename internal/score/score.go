package score

import (
	"fmt"

	"lyric_forge/internal/flow"
	"lyric_forge/internal/lexicon"
	"lyric_forge/internal/normalize"
)

// Evaluate scores a submission with the rubric its Kind selects. It returns an
// error only for precondition violations; data-quality problems surface as low
// sub-scores and explanatory feedback. Evaluate has no side effects.
func Evaluate(sub Submission, lex *lexicon.Lexicon) (Result, error) {
	if lex == nil {
		lex = lexicon.Default()
	}
	if err := sub.Check(lex.Scoring.MinLines); err != nil {
		return Result{}, err
	}

	avg := normalize.AverageSyllablesPerLine(sub.Lines)
	res := Result{
		Kind:         sub.Kind,
		LineCount:    len(sub.Lines),
		AvgSyllables: avg,
		Flow:         flow.Classify(avg, lex.Flow),
	}

	switch sub.Kind {
	case StructureDrill:
		scoreStructure(sub, lex, &res)
	case PoeticWorkout:
		scorePoetic(sub, lex, &res)
	case RhythmDrill:
		scoreRhythm(sub, lex, &res)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownKind, sub.Kind)
	}

	res.FScore = clamp100(res.FScore)
	res.PScore = clamp100(res.PScore)
	res.RScore = clamp100(res.RScore)
	if res.Feedback == nil {
		res.Feedback = []Feedback{}
	}
	return res, nil
}
