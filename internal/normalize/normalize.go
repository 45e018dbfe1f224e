package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var nonLetterPattern = regexp.MustCompile(`[^a-z]`)
var silentSuffixPattern = regexp.MustCompile(`(?:[^laeiouy]es|ed|[^laeiouy]e)$`)
var leadingYPattern = regexp.MustCompile(`^y`)
var vowelGroupPattern = regexp.MustCompile(`[aeiouy]{1,2}`)

// SplitNonEmptyLines splits text into trimmed, non-empty lines in input order.
func SplitNonEmptyLines(text string) []string {
	raw := strings.Split(norm.NFC.String(text), "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// JoinLower lowercases the lines and joins them with single spaces. All lexical
// matching runs against this form.
func JoinLower(lines []string) string {
	lower := cases.Lower(language.Und)
	return lower.String(strings.Join(lines, " "))
}

// EstimateSyllables approximates the syllable count of a single word by counting
// vowel groups after dropping a silent ending. It never returns less than 1.
func EstimateSyllables(word string) int {
	word = nonLetterPattern.ReplaceAllString(strings.ToLower(word), "")
	if len(word) <= 3 {
		return 1
	}
	word = silentSuffixPattern.ReplaceAllString(word, "")
	word = leadingYPattern.ReplaceAllString(word, "")
	groups := vowelGroupPattern.FindAllString(word, -1)
	if len(groups) == 0 {
		return 1
	}
	return len(groups)
}

func LineSyllables(line string) int {
	total := 0
	for _, word := range strings.Fields(line) {
		total += EstimateSyllables(word)
	}
	return total
}

// AverageSyllablesPerLine returns 0 for an empty slice.
func AverageSyllablesPerLine(lines []string) float64 {
	if len(lines) == 0 {
		return 0
	}
	total := 0
	for _, line := range lines {
		total += LineSyllables(line)
	}
	return float64(total) / float64(len(lines))
}

// LastWord returns the final word of a line, lowercased, with surrounding
// punctuation trimmed. Inner apostrophes and hyphens stay ("don't", "x-ray").
func LastWord(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	last := strings.TrimFunc(fields[len(fields)-1], func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
	return strings.ToLower(last)
}
