package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lyric_forge/internal/lexicon"
)

func TestAnchorWords(t *testing.T) {
	lex := lexicon.Default()
	hits := AnchorWords("it's about time", lex.AnchorWords)
	assert.GreaterOrEqual(t, hits.Count, 1)
	assert.Contains(t, hits.Words, "time")

	none := AnchorWords("", lex.AnchorWords)
	assert.Zero(t, none.Count)
	assert.Empty(t, none.Words)
}

func TestTermsCountsDistinctTermsOnce(t *testing.T) {
	hits := Terms("time time time after time", []string{"time", "time", "after", "before"})
	assert.Equal(t, 2, hits.Count)
	assert.Equal(t, []string{"time", "after"}, hits.Words)
}

func TestSubstringContainmentIsPreserved(t *testing.T) {
	hits := Terms("a scar on my cheek", []string{"car"})
	assert.Equal(t, 1, hits.Count, "car matches inside scar")
}

func TestMotifDensityCarHighway(t *testing.T) {
	lex := lexicon.Default()
	hits := MotifDensity("the car raced down the highway past the gas station", lex.SemanticMotifs, "CAR")
	assert.GreaterOrEqual(t, hits.Density, 3)
	assert.GreaterOrEqual(t, len(hits.Categories), 2)
	assert.Equal(t, []string{"actions", "roads", "sensory", "vehicles"}, hits.Categories)
	assert.ElementsMatch(t, []string{"car", "race", "highway", "gas"}, hits.Words)
}

func TestMotifDensityCountsSharedWordPerCategory(t *testing.T) {
	motifs := map[string]lexicon.WordTable{
		"CAR": {
			"parts":   {"engine", "wheel"},
			"sensory": {"engine", "smoke"},
		},
	}
	hits := MotifDensity("the engine idles", motifs, "CAR")
	assert.Equal(t, 2, hits.Density)
	assert.Equal(t, []string{"parts", "sensory"}, hits.Categories)
	assert.Equal(t, []string{"engine"}, hits.Words)
}

func TestMotifDensityUnknownMotif(t *testing.T) {
	hits := MotifDensity("the car raced", lexicon.Default().SemanticMotifs, "SPACESHIP")
	assert.Zero(t, hits.Density)
	assert.Empty(t, hits.Categories)
}

func TestConcreteNounsCategories(t *testing.T) {
	lex := lexicon.Default()
	hits := ConcreteNouns("a scar on the window and smoke from the engine", lex.ConcreteLexicon)
	assert.Equal(t, []string{"engine", "scar", "smoke", "wind", "window"}, hits.Words)
	assert.Equal(t, 5, hits.Count)
	assert.Equal(t, []string{"ARCHITECTURE", "ATMOSPHERE", "BODY", "OBJECTS", "TEXTURE"}, hits.Categories)
}

func TestAbstractNounsFlattensGroups(t *testing.T) {
	groups := lexicon.WordTable{
		"A": {"grief", "hope"},
		"B": {"hope", "fate"},
	}
	hits := AbstractNouns("grief and hope, hope and grief", groups)
	assert.Equal(t, 2, hits.Count)
	assert.Equal(t, []string{"grief", "hope"}, hits.Words)
}

func TestSentiment(t *testing.T) {
	lex := lexicon.Default()
	hits := Sentiment("cold and numb and hollow", lex.SentimentWords, lexicon.Negative)
	assert.Equal(t, 3, hits.Count)
	assert.Zero(t, Sentiment("cold and numb", lex.SentimentWords, "NEUTRAL").Count)
}

func TestHasRepeatedSubstantiveLine(t *testing.T) {
	assert.True(t, HasRepeatedSubstantiveLine([]string{"we ride until the end", "something else", " we ride until the end "}, 10))
	assert.False(t, HasRepeatedSubstantiveLine([]string{"yeah yeah", "other line here", "yeah yeah"}, 10), "short repeats are ignored")
	assert.False(t, HasRepeatedSubstantiveLine([]string{"one long line here", "another long line"}, 10))
}

func TestEndRhymeCouplet(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  bool
	}{
		{"aabb", []string{"we at the top", "never gonna stop? no, top", "this is real", "keep it real"}, true},
		{"literal pairs", []string{"top", "top", "real", "real"}, true},
		{"abab", []string{"top", "real", "top", "real"}, false},
		{"slant rhymes are not equal", []string{"money", "honey", "story", "glory"}, false},
		{"punctuation and case", []string{"I'm at the Top.", "still on top!", "this is REAL,", "so real"}, true},
		{"only last four count", []string{"x", "y", "top", "top", "real", "real"}, true},
		{"too few lines", []string{"top", "top", "real"}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EndRhymeCouplet(tc.lines))
		})
	}
}

func TestFinalWords(t *testing.T) {
	words, ok := FinalWords([]string{"a b", "c d", "e f", "g h"})
	require.True(t, ok)
	assert.Equal(t, [4]string{"b", "d", "f", "h"}, words)

	_, ok = FinalWords([]string{"a"})
	assert.False(t, ok)
}
