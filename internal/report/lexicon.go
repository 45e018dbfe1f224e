package report

import (
	"fmt"
	"strings"

	"lyric_forge/internal/lexicon"
)

// LexiconSections are the views accepted by Lexicon.
var LexiconSections = []string{"motifs", "concrete", "abstract", "anchors"}

// Lexicon renders one section of the word lists, or a summary when section is
// empty.
func Lexicon(lex *lexicon.Lexicon, section string) (string, error) {
	var b strings.Builder
	switch strings.ToLower(strings.TrimSpace(section)) {
	case "":
		fmt.Fprintf(&b, "%s\n", titleStyle.Render("Lexicon v"+lex.Version))
		fmt.Fprintf(&b, "motifs:   %s\n", strings.Join(lex.MotifNames(), ", "))
		for _, name := range lex.MotifNames() {
			fmt.Fprintf(&b, "  %-8s %d words\n", name, len(lex.MotifWords(name)))
		}
		fmt.Fprintf(&b, "anchors:  %d words\n", len(lex.AnchorWords))
		fmt.Fprintf(&b, "concrete: %d words in %d categories\n", len(lex.AllConcreteWords()), len(lex.ConcreteLexicon))
		fmt.Fprintf(&b, "abstract: %d nouns\n", len(lex.AllAbstractNouns()))
		fmt.Fprintf(&b, "target structure: %v\n", lex.TargetStructure)
	case "motifs":
		for _, name := range lex.MotifNames() {
			b.WriteString(sectionStyle.Render(name) + "\n")
			for _, category := range lex.SemanticMotifs[name].Categories() {
				writeRow(&b, category, lex.MotifCategory(name, category))
			}
		}
	case "concrete":
		for _, category := range lex.ConcreteLexicon.Categories() {
			writeRow(&b, category, lex.ConcreteCategory(category))
		}
	case "abstract":
		writeTable(&b, lex.AbstractNouns)
	case "anchors":
		b.WriteString(strings.Join(lex.AnchorWords, ", ") + "\n")
	default:
		return "", fmt.Errorf("unknown lexicon section %q (valid: %s)", section, strings.Join(LexiconSections, ", "))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func writeTable(b *strings.Builder, table lexicon.WordTable) {
	for _, category := range table.Categories() {
		writeRow(b, category, table[category])
	}
}

func writeRow(b *strings.Builder, category string, words []string) {
	fmt.Fprintf(b, "  %-14s %s\n", category, strings.Join(words, ", "))
}
