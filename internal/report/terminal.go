package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"lyric_forge/internal/chunk"
	"lyric_forge/internal/db"
	"lyric_forge/internal/forge"
	"lyric_forge/internal/lexicon"
	"lyric_forge/internal/live"
	"lyric_forge/internal/normalize"
	"lyric_forge/internal/score"
	"lyric_forge/internal/structure"
)

const barWidth = 20

var axisTitles = map[score.Axis]string{
	score.AxisF: "Flow / Structure",
	score.AxisP: "Poetry / Depth",
	score.AxisR: "Rhythm",
}

// Terminal renders an outcome for the console: scores, counters, grouped
// feedback and the lyric with matched words highlighted.
func Terminal(o forge.Outcome, counters live.Counters, lex *lexicon.Lexicon) string {
	var parts []string
	parts = append(parts, titleStyle.Render(o.Challenge.Title))
	if o.Title != o.Challenge.Title {
		parts = append(parts, subtleStyle.Render(o.Title))
	}

	scores := []string{
		scoreLine("F", o.Result.FScore),
		scoreLine("P", o.Result.PScore),
		scoreLine("R", o.Result.RScore),
	}
	parts = append(parts, panelStyle.Render(strings.Join(scores, "\n")))
	parts = append(parts, CountersLine(counters))

	grouped := lo.GroupBy(o.Result.DisplayFeedback(), func(fb score.Feedback) score.Axis { return fb.Axis })
	for _, axis := range []score.Axis{score.AxisF, score.AxisP, score.AxisR} {
		items, ok := grouped[axis]
		if !ok {
			continue
		}
		parts = append(parts, sectionStyle.Render(axisTitles[axis]))
		for _, fb := range items {
			style := failStyle
			if fb.Outcome == score.Success {
				style = successStyle
			}
			parts = append(parts, style.Render(mark(fb.Outcome))+" "+fb.Message)
		}
	}

	lines := normalize.SplitNonEmptyLines(o.Lyric)
	classes := MatchedTerms(o.Result.Kind, lines, o.Mood, o.Motif, lex)
	parts = append(parts, sectionStyle.Render("Lyric"))
	if len(classes) > 0 {
		parts = append(parts, subtleStyle.Render("highlighted: ")+Legend(classes))
	}
	parts = append(parts, LyricBars(lines, classes))

	switch {
	case o.Saved:
		parts = append(parts, "", subtleStyle.Render("saved as "+o.Record.ID))
	case o.SaveErr != nil:
		parts = append(parts, "", failStyle.Render("not saved: "+o.SaveErr.Error()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// LyricBars renders the lyric one four-line bar at a time with line numbers.
// A trailing partial bar is labelled with how many lines it holds.
func LyricBars(lines []string, classes []TermClass) string {
	var rows []string
	for _, bar := range chunk.Bars(lines) {
		label := fmt.Sprintf("bar %d", bar.Index+1)
		if !bar.Complete(chunk.BarLines) {
			label += fmt.Sprintf(" (%d/%d lines)", len(bar.Lines), chunk.BarLines)
		}
		if bar.Index > 0 {
			rows = append(rows, "")
		}
		rows = append(rows, subtleStyle.Render(label))
		for i, line := range bar.Lines {
			rows = append(rows, subtleStyle.Render(fmt.Sprintf("%3d ", bar.StartLine+i))+HighlightLine(line, classes))
		}
	}
	return strings.Join(rows, "\n")
}

func scoreLine(axis string, v int) string {
	filled := v * barWidth / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return fmt.Sprintf("%s %s %3d/100", axis, scoreStyle(v).Render(bar), v)
}

// Legend lists the highlight classes in their own styles.
func Legend(classes []TermClass) string {
	return strings.Join(lo.Map(classes, func(c TermClass, _ int) string {
		return c.style.Render(c.Name)
	}), " ")
}

// CountersLine is the one-line live summary.
func CountersLine(c live.Counters) string {
	return fmt.Sprintf("Lines: %d | Bars: %d | Avg syllables/line: %.1f | Flow: %s | Section: %s",
		c.Lines, c.Bars, c.AvgSyllables, c.Flow, c.Section.Label())
}

// Blueprint renders the section windows, one per line.
func Blueprint(sections []structure.Section) string {
	rows := lo.Map(sections, func(s structure.Section, _ int) string {
		state := subtleStyle.Render("open")
		switch {
		case s.Complete:
			state = successStyle.Render("done")
		case s.Name == structure.Overflow:
			state = failStyle.Render("over")
		case s.Filled > 0:
			state = lipgloss.NewStyle().Foreground(colorYellow).Render("writing")
		}
		span := "-"
		if s.Filled > 0 {
			span = fmt.Sprintf("lines %d-%d", s.StartLine, s.EndLine)
		}
		return fmt.Sprintf("%-20s %-12s %s", s.Label(), span, state)
	})
	return strings.Join(rows, "\n")
}

// History lists records newest first with relative dates.
func History(records []db.Record, now time.Time) string {
	if len(records) == 0 {
		return subtleStyle.Render("No saved scores yet.")
	}
	rows := make([]string, 0, len(records)+2)
	rows = append(rows, titleStyle.Render(fmt.Sprintf("%s saved scores", humanize.Comma(int64(len(records))))))
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		rows = append(rows, fmt.Sprintf("%-12s %-14s F %3d  P %3d  R %3d  %s",
			r.Date, subtleStyle.Render(relativeDay(r.Date, now)), r.FScore, r.PScore, r.RScore, r.Title))
	}
	best := lo.MaxBy(records, func(a, b db.Record) bool { return bestOf(a) > bestOf(b) })
	rows = append(rows, subtleStyle.Render(fmt.Sprintf("best: %s on %s (%d)", best.Title, best.Date, bestOf(best))))
	return strings.Join(rows, "\n")
}

func bestOf(r db.Record) int {
	return max(r.FScore, r.PScore, r.RScore)
}

func relativeDay(date string, now time.Time) string {
	day, err := time.ParseInLocation(db.DateLayout, date, now.Location())
	if err != nil {
		return date
	}
	if day.Format(db.DateLayout) == now.Format(db.DateLayout) {
		return "today"
	}
	return humanize.RelTime(day, now, "ago", "from now")
}

// Averages renders the mean scores of a window. days <= 0 means all time.
func Averages(avg db.Averages, days int) string {
	window := "All time"
	if days > 0 {
		window = fmt.Sprintf("Last %d days", days)
	}
	if avg.Count == 0 {
		return fmt.Sprintf("%s: no saved scores.", window)
	}
	return fmt.Sprintf("%s: %s drafts | F %.1f | P %.1f | R %.1f",
		window, humanize.Comma(int64(avg.Count)), avg.FScore, avg.PScore, avg.RScore)
}

// Challenges lists the drills with their prompts and strategy notes.
func Challenges(all []forge.Challenge) string {
	var parts []string
	for _, c := range all {
		parts = append(parts, titleStyle.Render(c.Title)+" "+subtleStyle.Render("(--challenge "+c.Key+")"))
		parts = append(parts, c.Prompt)
		for _, s := range c.Strategy {
			parts = append(parts, "  - "+s)
		}
		parts = append(parts, "")
	}
	return strings.TrimRight(strings.Join(parts, "\n"), "\n")
}
