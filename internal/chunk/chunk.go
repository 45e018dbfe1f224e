package chunk

// BarLines is the number of lyric lines counted as one bar.
const BarLines = 4

// Segment is a run of consecutive lyric lines. Line numbers are 1-based and
// inclusive.
type Segment struct {
	Index     int
	StartLine int
	EndLine   int
	Lines     []string
}

// Windows groups lines into windows of size lines, each starting size-overlap
// lines after the previous one. The last window may be short. Every line lands
// in at least one window.
func Windows(lines []string, size, overlap int) []Segment {
	if size <= 0 || len(lines) == 0 {
		return nil
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size - 1
	}

	step := size - overlap
	segments := make([]Segment, 0, (len(lines)/step)+1)
	for start := 0; start < len(lines); start += step {
		end := start + size
		if end > len(lines) {
			end = len(lines)
		}
		segments = append(segments, Segment{
			Index:     len(segments),
			StartLine: start + 1,
			EndLine:   end,
			Lines:     lines[start:end],
		})
		if end == len(lines) {
			break
		}
	}
	return segments
}

// Bars splits lines into consecutive four-line bars. A trailing partial bar is
// returned too; use BarCount for the number of complete bars.
func Bars(lines []string) []Segment {
	return Windows(lines, BarLines, 0)
}

// BarCount is the number of complete bars in lineCount lines.
func BarCount(lineCount int) int {
	if lineCount <= 0 {
		return 0
	}
	return lineCount / BarLines
}

func (s Segment) Complete(size int) bool {
	return len(s.Lines) == size
}
