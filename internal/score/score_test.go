package score

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lyric_forge/internal/flow"
	"lyric_forge/internal/lexicon"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(raw)
}

func firstLines(text string, n int) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	return strings.Join(lines[:n], "\n")
}

func TestStructureDrillFullMarks(t *testing.T) {
	sub := NewSubmission(readFixture(t, "structure_28.txt"), "positive", "car", StructureDrill)
	res, err := Evaluate(sub, lexicon.Default())
	require.NoError(t, err)

	assert.Equal(t, 28, res.LineCount)
	assert.InDelta(t, 6.46, res.AvgSyllables, 0.01)
	assert.Equal(t, flow.Conversational, res.Flow)
	assert.Equal(t, 100, res.FScore)
	// four concrete nouns is below the imagery minimum
	assert.Equal(t, 0, res.PScore)
	assert.Equal(t, 0, res.RScore)

	require.Len(t, res.Feedback, 4)
	for _, fb := range res.Feedback[:3] {
		assert.Equal(t, AxisF, fb.Axis)
		assert.Equal(t, Success, fb.Outcome)
	}
	assert.Contains(t, res.Feedback[1].Message, "6.5 syllables per line")
	assert.Contains(t, res.Feedback[1].Message, "5-7")
	assert.Contains(t, res.Feedback[2].Message, "yeah")
	assert.Equal(t, AxisP, res.Feedback[3].Axis)
	assert.Equal(t, Fail, res.Feedback[3].Outcome)
}

func TestStructureDrillLineTiers(t *testing.T) {
	full := readFixture(t, "structure_28.txt")
	tests := []struct {
		lines int
		want  int
	}{
		{28, 100},
		{27, 85},
		{20, 60},
	}
	for _, tc := range tests {
		sub := NewSubmission(firstLines(full, tc.lines), "POSITIVE", "CAR", StructureDrill)
		res, err := Evaluate(sub, nil)
		require.NoError(t, err)
		assert.Equal(t, tc.want, res.FScore, "%d lines", tc.lines)
	}
}

func TestStructureDrillImageryBonusOnlyTouchesP(t *testing.T) {
	sub := NewSubmission(readFixture(t, "poetic_16.txt"), "NEGATIVE", "CAR", StructureDrill)
	res, err := Evaluate(sub, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.FScore)
	assert.Equal(t, 40, res.PScore)
	assert.Equal(t, flow.Dense, res.Flow)
}

func TestPoeticWorkoutFullMarks(t *testing.T) {
	sub := NewSubmission(readFixture(t, "poetic_16.txt"), "NEGATIVE", "CAR", PoeticWorkout)
	res, err := Evaluate(sub, nil)
	require.NoError(t, err)
	assert.Equal(t, 100, res.PScore)
	// drag / lanes / cold / home is not AABB
	assert.Equal(t, 0, res.FScore)

	last := res.Feedback[len(res.Feedback)-1]
	assert.Equal(t, AxisF, last.Axis)
	assert.Equal(t, Fail, last.Outcome)
	assert.Contains(t, last.Message, "drag, lanes, cold, home")
}

func TestPoeticWorkoutRhymeBonus(t *testing.T) {
	sub := NewSubmission(readFixture(t, "poetic_16_aabb.txt"), "NEGATIVE", "CAR", PoeticWorkout)
	res, err := Evaluate(sub, nil)
	require.NoError(t, err)
	assert.Equal(t, 100, res.PScore)
	assert.Equal(t, 20, res.FScore)
}

func TestPoeticWorkoutPurityTiers(t *testing.T) {
	base := readFixture(t, "poetic_16.txt")
	oneAbstract := strings.Replace(base, "and let the black road carry me home", "and let the black road carry my grief home", 1)
	twoAbstract := strings.Replace(oneAbstract, "numb hands on the wheel at a red light", "numb hands on the wheel and the fear of a red light", 1)

	res, err := Evaluate(NewSubmission(oneAbstract, "NEGATIVE", "CAR", PoeticWorkout), nil)
	require.NoError(t, err)
	assert.Equal(t, 85, res.PScore)
	assert.Equal(t, Fail, res.Feedback[0].Outcome)
	assert.Contains(t, res.Feedback[0].Message, "grief")

	res, err = Evaluate(NewSubmission(twoAbstract, "NEGATIVE", "CAR", PoeticWorkout), nil)
	require.NoError(t, err)
	assert.Equal(t, 70, res.PScore)
	assert.Contains(t, res.Feedback[0].Message, "Purity warning")
}

func TestPoeticWorkoutCohesionNamesEveryShortfall(t *testing.T) {
	text := readFixture(t, "poetic_16.txt")

	res, err := Evaluate(NewSubmission(text, "POSITIVE", "CAR", PoeticWorkout), nil)
	require.NoError(t, err)
	assert.Equal(t, 60, res.PScore)
	cohesion := res.Feedback[2]
	assert.Equal(t, Fail, cohesion.Outcome)
	assert.Contains(t, cohesion.Message, "positive sentiment words 1 of 4 (3 short)")
	assert.NotContains(t, cohesion.Message, "motif density")

	res, err = Evaluate(NewSubmission(text, "NEGATIVE", "SPACESHIP", PoeticWorkout), nil)
	require.NoError(t, err, "unknown motif is scored leniently")
	assert.Equal(t, 60, res.PScore)
	cohesion = res.Feedback[2]
	assert.Contains(t, cohesion.Message, "motif density 0 of 5 (5 short)")
	assert.Contains(t, cohesion.Message, "motif categories 0 of 2 (2 short)")
	assert.NotContains(t, cohesion.Message, "sentiment")
}

func TestPoeticWorkoutRepeatedLineIsAdvisory(t *testing.T) {
	text := readFixture(t, "poetic_16.txt")
	repeated := strings.Replace(text, "your coat still folded on the back seat", "the dashboard glows the color of a bruise", 1)

	res, err := Evaluate(NewSubmission(repeated, "NEGATIVE", "CAR", PoeticWorkout), nil)
	require.NoError(t, err)
	assert.Equal(t, 100, res.PScore)
	last := res.Feedback[len(res.Feedback)-1]
	assert.Contains(t, last.Message, "Linear path")
}

func TestPoeticWorkoutMetaphorHeader(t *testing.T) {
	lex := *lexicon.Default()
	lex.Scoring.Poetic.MetaphorHeader = true
	body := readFixture(t, "poetic_16.txt")

	res, err := Evaluate(NewSubmission("Car = Grief\n"+strings.Replace(body, "carry me home", "carry my grief home", 1), "NEGATIVE", "CAR", PoeticWorkout), &lex)
	require.NoError(t, err)
	assert.Equal(t, 100, res.PScore, "the header emotion is not penalised")

	res, err = Evaluate(NewSubmission("no header on this one\n"+body, "NEGATIVE", "CAR", PoeticWorkout), &lex)
	require.NoError(t, err)
	assert.Equal(t, 0, res.PScore)
	assert.Equal(t, 0, res.FScore)
	require.Len(t, res.Feedback, 1)
	assert.Contains(t, res.Feedback[0].Message, "Motif = Emotion")
}

func TestRhymeCheckReportsInsufficientLines(t *testing.T) {
	lex := *lexicon.Default()
	lex.Scoring.MinLines = 1
	lex.Scoring.Poetic.MetaphorHeader = true

	res, err := Evaluate(NewSubmission("car = grief\ncold engine\nnumb wheel", "NEGATIVE", "CAR", PoeticWorkout), &lex)
	require.NoError(t, err)
	var rhyme *Feedback
	for i := range res.Feedback {
		if res.Feedback[i].Axis == AxisF {
			rhyme = &res.Feedback[i]
		}
	}
	require.NotNil(t, rhyme)
	assert.Contains(t, rhyme.Message, "insufficient lines")
	assert.Equal(t, 0, res.FScore)
}

const rhythmDrill = `started from the bottom now we here
/ . / . / .
started from the bottom now the whole team here
/ . . / . / . /
we ride all night until the day
/ . / . / . / .
city lights and we on top
/ . / . / . .`

func TestRhythmDrillConversational(t *testing.T) {
	sub := NewSubmission(rhythmDrill, "POSITIVE", "TIME", RhythmDrill).WithRhythmTarget(Conversational)
	res, err := Evaluate(sub, nil)
	require.NoError(t, err)
	// ratios 0.50, 0.50, 0.50, 0.43 plus the mastery bonus
	assert.Equal(t, 100, res.RScore)
	assert.Zero(t, res.FScore)
	assert.Zero(t, res.PScore)
	require.Len(t, res.Feedback, 5)
}

func TestRhythmDrillTripletMisses(t *testing.T) {
	sub := NewSubmission(rhythmDrill, "POSITIVE", "TIME", RhythmDrill).WithRhythmTarget(Triplet)
	res, err := Evaluate(sub, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.RScore)
}

func TestRhythmDrillEmptyMapAndWrongShape(t *testing.T) {
	emptyMap := strings.Replace(rhythmDrill, "/ . / . / . .", "no markers here", 1)
	res, err := Evaluate(NewSubmission(emptyMap, "POSITIVE", "TIME", RhythmDrill), nil)
	require.NoError(t, err)
	assert.Equal(t, 80, res.RScore)
	assert.Contains(t, res.Feedback[3].Message, "map is empty")

	tooLong := rhythmDrill + "\nextra lyric line\n/ . /"
	res, err = Evaluate(NewSubmission(tooLong, "POSITIVE", "TIME", RhythmDrill), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.RScore)
	require.Len(t, res.Feedback, 1)
}

func TestPreconditions(t *testing.T) {
	fiveLines := "one\ntwo\nthree\nfour\nfive"
	eight := strings.Repeat("a line of lyric\n", 8)
	tests := []struct {
		name string
		sub  Submission
		want error
	}{
		{"too few lines", NewSubmission(fiveLines, "NEGATIVE", "CAR", PoeticWorkout), ErrTooFewLines},
		{"too few lines structure", NewSubmission(fiveLines, "POSITIVE", "TIME", StructureDrill), ErrTooFewLines},
		{"missing mood", NewSubmission(eight, "", "CAR", PoeticWorkout), ErrMissingMood},
		{"missing motif", NewSubmission(eight, "NEGATIVE", "  ", StructureDrill), ErrMissingMotif},
		{"invalid mood", NewSubmission(eight, "ANGRY", "CAR", StructureDrill), ErrInvalidMood},
		{"unknown kind", NewSubmission(eight, "NEGATIVE", "CAR", Kind("Freestyle")), ErrUnknownKind},
		{"bad rhythm target", NewSubmission(eight, "NEGATIVE", "CAR", RhythmDrill).WithRhythmTarget("SWING"), ErrInvalidTarget},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Evaluate(tc.sub, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
			assert.Equal(t, Result{}, res)
		})
	}
}

func TestValidateMotif(t *testing.T) {
	lex := lexicon.Default()
	assert.NoError(t, NewSubmission("", "NEGATIVE", "water", PoeticWorkout).ValidateMotif(lex))
	assert.ErrorIs(t, NewSubmission("", "NEGATIVE", "space", PoeticWorkout).ValidateMotif(lex), ErrUnknownMotif)
	assert.ErrorIs(t, NewSubmission("", "NEGATIVE", "", PoeticWorkout).ValidateMotif(lex), ErrMissingMotif)
}

func TestScoresAlwaysWithinBounds(t *testing.T) {
	lex := *lexicon.Default()
	lex.Scoring.Structure.LineExactPoints = 90
	lex.Scoring.Structure.FlowPerfect.Points = 90
	lex.Scoring.Structure.ConcreteMinPoints = -50
	inputs := []string{
		readFixture(t, "structure_28.txt"),
		readFixture(t, "poetic_16.txt"),
		readFixture(t, "poetic_16_aabb.txt"),
		strings.Repeat("x\n", 40),
	}
	for _, in := range inputs {
		for _, kind := range []Kind{StructureDrill, PoeticWorkout, RhythmDrill} {
			res, err := Evaluate(NewSubmission(in, "NEGATIVE", "CAR", kind), &lex)
			require.NoError(t, err)
			for _, v := range []int{res.FScore, res.PScore, res.RScore} {
				assert.GreaterOrEqual(t, v, 0)
				assert.LessOrEqual(t, v, 100)
			}
		}
	}
}

func TestDisplayFeedbackGroupsByAxis(t *testing.T) {
	res := Result{Feedback: []Feedback{
		{Axis: AxisP, Message: "p1"},
		{Axis: AxisF, Message: "f1"},
		{Axis: AxisP, Message: "p2"},
		{Axis: AxisF, Message: "f2"},
	}}
	got := res.DisplayFeedback()
	var order []string
	for _, fb := range got {
		order = append(order, fb.Message)
	}
	assert.Equal(t, []string{"f1", "f2", "p1", "p2"}, order)
	assert.Equal(t, "p1", res.Feedback[0].Message, "run order is untouched")
}
