package match

import (
	"strings"

	"lyric_forge/internal/lexicon"
	"lyric_forge/internal/normalize"
)

// Matching is plain substring containment against the lowercased joined text, so
// "car" also matches inside "scar". Scores depend on this; do not switch to word
// boundaries without re-tuning the thresholds.

type Hits struct {
	Count int      `json:"count"`
	Words []string `json:"words"`
}

type ConcreteHits struct {
	Hits
	Categories []string `json:"categories"`
}

type MotifHits struct {
	Density    int      `json:"density"`
	Categories []string `json:"categories"`
	Words      []string `json:"words"`
}

// Terms returns the distinct terms contained in text, in term order.
func Terms(text string, terms []string) Hits {
	seen := make(map[string]struct{}, len(terms))
	words := make([]string, 0)
	for _, term := range terms {
		if term == "" {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		if strings.Contains(text, term) {
			words = append(words, term)
		}
	}
	return Hits{Count: len(words), Words: words}
}

func AnchorWords(text string, anchors []string) Hits {
	return Terms(text, anchors)
}

// AbstractNouns flattens every group into one set before matching.
func AbstractNouns(text string, groups lexicon.WordTable) Hits {
	return Terms(text, groups.Flatten())
}

// ConcreteNouns counts distinct concrete terms and lists the sensory categories
// with at least one hit.
func ConcreteNouns(text string, categories lexicon.WordTable) ConcreteHits {
	out := ConcreteHits{
		Hits:       Terms(text, categories.Flatten()),
		Categories: []string{},
	}
	for _, name := range categories.Categories() {
		if Terms(text, categories[name]).Count > 0 {
			out.Categories = append(out.Categories, name)
		}
	}
	return out
}

// MotifDensity sums per-category hits for one motif. A word listed under two
// categories contributes once per category. Unknown motifs score zero.
func MotifDensity(text string, motifs map[string]lexicon.WordTable, name string) MotifHits {
	out := MotifHits{Categories: []string{}, Words: []string{}}
	motif, ok := motifs[name]
	if !ok {
		return out
	}
	seen := map[string]struct{}{}
	for _, category := range motif.Categories() {
		hits := Terms(text, motif[category])
		if hits.Count == 0 {
			continue
		}
		out.Density += hits.Count
		out.Categories = append(out.Categories, category)
		for _, w := range hits.Words {
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
			out.Words = append(out.Words, w)
		}
	}
	return out
}

func Sentiment(text string, words lexicon.WordTable, polarity string) Hits {
	return Terms(text, words[polarity])
}

// HasRepeatedSubstantiveLine reports whether two lines are identical after
// trimming and longer than minLength characters.
func HasRepeatedSubstantiveLine(lines []string, minLength int) bool {
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len([]rune(line)) <= minLength {
			continue
		}
		if _, ok := seen[line]; ok {
			return true
		}
		seen[line] = struct{}{}
	}
	return false
}

// EndRhymeCouplet checks the last four lines for an AABB scheme by literal
// equality of their final words.
func EndRhymeCouplet(lines []string) bool {
	words, ok := FinalWords(lines)
	if !ok {
		return false
	}
	return words[0] == words[1] && words[2] == words[3]
}

// FinalWords returns the last words of the final four lines, or false when there
// are fewer than four lines.
func FinalWords(lines []string) ([4]string, bool) {
	var out [4]string
	if len(lines) < 4 {
		return out, false
	}
	for i, line := range lines[len(lines)-4:] {
		out[i] = normalize.LastWord(line)
	}
	return out, true
}
