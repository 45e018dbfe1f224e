package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"lyric_forge/internal/db"
	"lyric_forge/internal/forge"
	"lyric_forge/internal/live"
	"lyric_forge/internal/score"
	"lyric_forge/internal/structure"
)

const (
	successMark = "🏆"
	failMark    = "❌"
)

// Text renders the plain-text score sheet saved by --export.
func Text(o forge.Outcome) string {
	var b strings.Builder
	b.WriteString("\n*** Lyric Forge Analysis ***\n")
	fmt.Fprintf(&b, "Challenge: %s\n", o.Challenge.Title)
	if o.Title != o.Challenge.Title {
		fmt.Fprintf(&b, "Title: %s\n", o.Title)
	}
	fmt.Fprintf(&b, "Date: %s\n\n", o.Date.Format("1/2/2006"))
	fmt.Fprintf(&b, "Flow/Structure Score (F-Score): %d/100\n", o.Result.FScore)
	fmt.Fprintf(&b, "Rhythm/Flow Score (R-Score): %d/100\n", o.Result.RScore)
	fmt.Fprintf(&b, "Poetry/Depth Score (P-Score): %d/100\n", o.Result.PScore)
	b.WriteString("\n--- Feedback ---\n")
	for _, fb := range o.Result.DisplayFeedback() {
		fmt.Fprintf(&b, "%s %s\n", mark(fb.Outcome), fb.Message)
	}
	b.WriteString("\n--- Your Lyric ---\n")
	b.WriteString(strings.TrimRight(o.Lyric, "\n"))
	b.WriteString("\n\n(Save this file to your device to track progress!)\n")
	return b.String()
}

func mark(o score.Outcome) string {
	if o == score.Success {
		return successMark
	}
	return failMark
}

type jsonReport struct {
	Challenge    string              `json:"challenge"`
	Title        string              `json:"title"`
	Date         string              `json:"date"`
	Mood         string              `json:"mood"`
	Motif        string              `json:"motif"`
	FScore       int                 `json:"f_score"`
	PScore       int                 `json:"p_score"`
	RScore       int                 `json:"r_score"`
	Lines        int                 `json:"lines"`
	Bars         int                 `json:"bars"`
	AvgSyllables float64             `json:"avg_syllables"`
	Flow         string              `json:"flow"`
	Sections     []structure.Section `json:"sections"`
	Feedback     []score.Feedback    `json:"feedback"`
	Saved        bool                `json:"saved"`
	RecordID     string              `json:"record_id,omitempty"`
	SaveError    string              `json:"save_error,omitempty"`
}

// JSON renders the outcome with feedback in display order.
func JSON(o forge.Outcome, counters live.Counters) ([]byte, error) {
	r := jsonReport{
		Challenge:    o.Challenge.Key,
		Title:        o.Title,
		Date:         o.Date.Format(db.DateLayout),
		Mood:         o.Mood,
		Motif:        o.Motif,
		FScore:       o.Result.FScore,
		PScore:       o.Result.PScore,
		RScore:       o.Result.RScore,
		Lines:        counters.Lines,
		Bars:         counters.Bars,
		AvgSyllables: counters.AvgSyllables,
		Flow:         string(o.Result.Flow),
		Sections:     counters.Sections,
		Feedback:     o.Result.DisplayFeedback(),
		Saved:        o.Saved,
		RecordID:     o.Record.ID,
	}
	if o.SaveErr != nil {
		r.SaveError = o.SaveErr.Error()
	}
	raw, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return raw, nil
}

// ExportDay is the day an outcome is filed under.
func ExportDay(o forge.Outcome) time.Time {
	if o.Date.IsZero() {
		return time.Now()
	}
	return o.Date
}
