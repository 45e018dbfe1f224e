package live

import (
	"math"

	"lyric_forge/internal/chunk"
	"lyric_forge/internal/flow"
	"lyric_forge/internal/lexicon"
	"lyric_forge/internal/normalize"
	"lyric_forge/internal/structure"
)

// Counters is the running summary shown while a lyric is being written.
type Counters struct {
	Lines        int                 `json:"lines"`
	Bars         int                 `json:"bars"`
	AvgSyllables float64             `json:"avg_syllables"`
	Flow         flow.Style          `json:"flow"`
	Section      structure.Section   `json:"section"`
	Sections     []structure.Section `json:"sections"`
}

// Count computes the counters for text. AvgSyllables is rounded to one
// decimal.
func Count(text string, lex *lexicon.Lexicon) Counters {
	if lex == nil {
		lex = lexicon.Default()
	}
	lines := normalize.SplitNonEmptyLines(text)
	avg := normalize.AverageSyllablesPerLine(lines)
	sections := structure.Blueprint(len(lines), lex.TargetStructure)
	return Counters{
		Lines:        len(lines),
		Bars:         chunk.BarCount(len(lines)),
		AvgSyllables: math.Round(avg*10) / 10,
		Flow:         flow.Classify(avg, lex.Flow),
		Section:      structure.Current(sections),
		Sections:     sections,
	}
}
