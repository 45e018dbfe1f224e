package structure

import "fmt"

const (
	Chorus   = "Chorus"
	Verse    = "Verse"
	Overflow = "Overflow"
)

// Section is one window of the song blueprint. Line numbers are 1-based and
// inclusive; an empty section has StartLine > EndLine.
type Section struct {
	Name      string `json:"name"`
	Target    int    `json:"target"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Filled    int    `json:"filled"`
	Complete  bool   `json:"complete"`
}

func (s Section) Label() string {
	if s.Name == Overflow {
		return fmt.Sprintf("%s (%d extra)", s.Name, s.Filled)
	}
	return fmt.Sprintf("%s %d/%d", s.Name, s.Filled, s.Target)
}

// Blueprint lays lineCount lines over the target section lengths, alternating
// chorus and verse starting with a chorus. Sections past the last line are
// returned empty; lines past the last section land in an Overflow section. The
// filled sections cover exactly lines 1..lineCount.
func Blueprint(lineCount int, targets []int) []Section {
	if lineCount < 0 {
		lineCount = 0
	}
	sections := make([]Section, 0, len(targets)+1)
	next := 1
	for i, target := range targets {
		name := Chorus
		if i%2 == 1 {
			name = Verse
		}
		start, end := LinesInWindow(lineCount, next, target)
		filled := 0
		if end >= start {
			filled = end - start + 1
		}
		sections = append(sections, Section{
			Name:      name,
			Target:    target,
			StartLine: start,
			EndLine:   end,
			Filled:    filled,
			Complete:  filled == target,
		})
		next += target
	}
	if lineCount >= next {
		sections = append(sections, Section{
			Name:      Overflow,
			StartLine: next,
			EndLine:   lineCount,
			Filled:    lineCount - next + 1,
		})
	}
	return sections
}

// LinesInWindow clips the window of size lines starting at start to the
// submitted line count.
func LinesInWindow(totalLines, start, size int) (int, int) {
	if start < 1 {
		start = 1
	}
	end := start + size - 1
	if end > totalLines {
		end = totalLines
	}
	return start, end
}

// Current returns the section the next written line falls into, or the
// overflow section when the blueprint is already full.
func Current(sections []Section) Section {
	for _, s := range sections {
		if !s.Complete && s.Name != Overflow {
			return s
		}
	}
	if len(sections) == 0 {
		return Section{Name: Overflow}
	}
	return sections[len(sections)-1]
}
