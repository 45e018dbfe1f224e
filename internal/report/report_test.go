package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lyric_forge/internal/db"
	"lyric_forge/internal/flow"
	"lyric_forge/internal/forge"
	"lyric_forge/internal/lexicon"
	"lyric_forge/internal/live"
	"lyric_forge/internal/score"
	"lyric_forge/internal/structure"
)

func sampleOutcome(t *testing.T) forge.Outcome {
	t.Helper()
	ch, err := forge.LookupChallenge("poetic")
	require.NoError(t, err)
	return forge.Outcome{
		Challenge: ch,
		Title:     "Night Drive",
		Date:      time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC),
		Lyric:     "cold engine\nnumb wheel\n",
		Mood:      lexicon.Negative,
		Motif:     "CAR",
		Result: score.Result{
			Kind:   score.PoeticWorkout,
			FScore: 20,
			PScore: 85,
			Flow:   flow.Sparse,
			Feedback: []score.Feedback{
				{Outcome: score.Fail, Axis: score.AxisP, Message: "Purity: 1 abstract noun (grief)."},
				{Outcome: score.Success, Axis: score.AxisF, Message: "Rhyme ok."},
			},
		},
		Saved:  true,
		Record: db.Record{ID: "rec-1"},
	}
}

func TestText(t *testing.T) {
	got := Text(sampleOutcome(t))
	want := `
*** Lyric Forge Analysis ***
Challenge: Poetic Workout: Poetic Depth (P-Score)
Title: Night Drive
Date: 3/1/2026

Flow/Structure Score (F-Score): 20/100
Rhythm/Flow Score (R-Score): 0/100
Poetry/Depth Score (P-Score): 85/100

--- Feedback ---
🏆 Rhyme ok.
❌ Purity: 1 abstract noun (grief).

--- Your Lyric ---
cold engine
numb wheel

(Save this file to your device to track progress!)
`
	assert.Equal(t, want, got)
}

func TestJSON(t *testing.T) {
	o := sampleOutcome(t)
	o.Saved = false
	o.Record = db.Record{}
	o.SaveErr = errors.New("disk full")
	counters := live.Count(o.Lyric, nil)

	raw, err := JSON(o, counters)
	require.NoError(t, err)
	var got struct {
		Challenge string           `json:"challenge"`
		Date      string           `json:"date"`
		PScore    int              `json:"p_score"`
		Lines     int              `json:"lines"`
		Saved     bool             `json:"saved"`
		RecordID  string           `json:"record_id"`
		SaveError string           `json:"save_error"`
		Feedback  []score.Feedback `json:"feedback"`
	}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "poetic", got.Challenge)
	assert.Equal(t, "2026-03-01", got.Date)
	assert.Equal(t, 85, got.PScore)
	assert.Equal(t, 2, got.Lines)
	assert.False(t, got.Saved)
	assert.Empty(t, got.RecordID)
	assert.Equal(t, "disk full", got.SaveError)
	require.Len(t, got.Feedback, 2)
	assert.Equal(t, score.AxisF, got.Feedback[0].Axis, "feedback in display order")
}

func tinyLexicon() *lexicon.Lexicon {
	return &lexicon.Lexicon{
		AnchorWords:     []string{"yeah", "top"},
		SemanticMotifs:  map[string]lexicon.WordTable{"CAR": {"parts": {"engine", "wheel"}}},
		ConcreteLexicon: lexicon.WordTable{"OBJECTS": {"wheel", "glass"}},
		AbstractNouns:   lexicon.WordTable{"EMOTIONS": {"grief"}},
		SentimentWords:  lexicon.WordTable{lexicon.Negative: {"cold", "numb"}, lexicon.Positive: {"warm"}},
	}
}

func TestMatchedTermsPriority(t *testing.T) {
	lines := []string{"cold engine and grief", "numb wheel on glass"}
	classes := MatchedTerms(score.PoeticWorkout, lines, lexicon.Negative, "CAR", tinyLexicon())
	names := make([]string, 0, len(classes))
	for _, c := range classes {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"abstract", "motif", "sentiment", "concrete"}, names)

	c, ok := ClassifyToken("Wheel,", classes)
	require.True(t, ok)
	assert.Equal(t, "motif", c.Name, "motif outranks concrete")
	c, ok = ClassifyToken("glass", classes)
	require.True(t, ok)
	assert.Equal(t, "concrete", c.Name)
	_, ok = ClassifyToken("and", classes)
	assert.False(t, ok)

	assert.Empty(t, MatchedTerms(score.RhythmDrill, lines, lexicon.Negative, "CAR", tinyLexicon()))
	structureClasses := MatchedTerms(score.StructureDrill, []string{"yeah we on top"}, lexicon.Negative, "CAR", tinyLexicon())
	require.Len(t, structureClasses, 1)
	assert.Equal(t, "anchor", structureClasses[0].Name)
}

func TestHighlightLineKeepsWords(t *testing.T) {
	classes := MatchedTerms(score.PoeticWorkout, []string{"cold engine"}, lexicon.Negative, "CAR", tinyLexicon())
	got := HighlightLine("  the   cold engine  ", classes)
	assert.Contains(t, got, "the")
	assert.Contains(t, got, "cold")
	assert.Contains(t, got, "engine")
}

func TestTerminal(t *testing.T) {
	o := sampleOutcome(t)
	out := Terminal(o, live.Count(o.Lyric, nil), tinyLexicon())
	for _, want := range []string{
		"Poetic Workout: Poetic Depth (P-Score)",
		"Night Drive",
		"85/100",
		"Flow / Structure",
		"Poetry / Depth",
		"Purity: 1 abstract noun (grief).",
		"Lines: 2 | Bars: 0",
		"cold",
		"bar 1 (2/4 lines)",
		"saved as rec-1",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Rhythm\n", "no rhythm feedback group")
	assert.Less(t, strings.Index(out, "Flow / Structure"), strings.Index(out, "Poetry / Depth"))
}

func TestLyricBarsGroupsFourLines(t *testing.T) {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = fmt.Sprintf("lyric line %d", i+1)
	}
	out := LyricBars(lines, nil)
	assert.Contains(t, out, "bar 1\n")
	assert.Contains(t, out, "bar 2\n")
	assert.Contains(t, out, "bar 3 (2/4 lines)")
	assert.NotContains(t, out, "bar 4")
	assert.Contains(t, out, " 10 lyric line 10")
	assert.Less(t, strings.Index(out, "bar 3"), strings.Index(out, "lyric line 9"))
	assert.Empty(t, LyricBars(nil, nil))
}

func TestCountersLineAndBlueprint(t *testing.T) {
	c := live.Count(strings.Repeat("the time\n", 10), nil)
	assert.Equal(t, "Lines: 10 | Bars: 2 | Avg syllables/line: 2.0 | Flow: Sparse | Section: Verse 2/12", CountersLine(c))

	view := Blueprint(structure.Blueprint(31, []int{8, 12, 8}))
	rows := strings.Split(view, "\n")
	require.Len(t, rows, 4)
	assert.Contains(t, rows[0], "Chorus 8/8")
	assert.Contains(t, rows[0], "lines 1-8")
	assert.Contains(t, rows[3], "Overflow (3 extra)")
	assert.Contains(t, rows[3], "over")
}

func TestHistory(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Contains(t, History(nil, now), "No saved scores yet.")

	records := []db.Record{
		{Date: "2026-02-22", Title: "older", FScore: 40},
		{Date: "2026-03-01", Title: "fresh", PScore: 90},
	}
	out := History(records, now)
	assert.Contains(t, out, "2 saved scores")
	assert.Contains(t, out, "today")
	assert.Contains(t, out, "ago")
	assert.Less(t, strings.Index(out, "fresh"), strings.Index(out, "older"), "newest first")
	assert.Contains(t, out, "best: fresh on 2026-03-01 (90)")
}

func TestAverages(t *testing.T) {
	assert.Equal(t, "Last 7 days: no saved scores.", Averages(db.Averages{}, 7))
	got := Averages(db.Averages{Count: 1200, FScore: 70, PScore: 30.26, RScore: 50}, 0)
	assert.Equal(t, "All time: 1,200 drafts | F 70.0 | P 30.3 | R 50.0", got)
}

func TestLexiconView(t *testing.T) {
	lex := lexicon.Default()
	summary, err := Lexicon(lex, "")
	require.NoError(t, err)
	assert.Contains(t, summary, "CAR, COLOR, TIME, WATER")
	assert.Regexp(t, `CAR\s+\d+ words`, summary)

	motifs, err := Lexicon(lex, "MOTIFS")
	require.NoError(t, err)
	assert.Contains(t, motifs, "vehicles")
	assert.Regexp(t, `roads\s+.*highway`, motifs)

	concrete, err := Lexicon(lex, "concrete")
	require.NoError(t, err)
	assert.Regexp(t, `SOUND\s+.*echo`, concrete)

	anchors, err := Lexicon(lex, "anchors")
	require.NoError(t, err)
	assert.Contains(t, anchors, "yeah")

	_, err = Lexicon(lex, "rhymes")
	assert.Error(t, err)
}

func TestChallengesView(t *testing.T) {
	out := Challenges(forge.Challenges())
	assert.Contains(t, out, "(--challenge rhythm-triplet)")
	assert.Contains(t, out, "Target stress ratio 30-38%.")
}
