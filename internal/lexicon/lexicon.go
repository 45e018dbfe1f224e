package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
	"unicode"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var defaultLexiconYAML []byte

// Sentiment polarities, also the valid mood selections.
const (
	Negative = "NEGATIVE"
	Positive = "POSITIVE"
)

// WordTable maps a category name to its word list.
type WordTable map[string][]string

type Band struct {
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
	Points int     `yaml:"points"`
}

func (b Band) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

type FlowThresholds struct {
	ConversationalMin float64 `yaml:"conversational_min"`
	ConversationalMax float64 `yaml:"conversational_max"`
	TripletMin        float64 `yaml:"triplet_min"`
	TripletMax        float64 `yaml:"triplet_max"`
}

type StructureThresholds struct {
	LineExact            int  `yaml:"line_exact"`
	LineTolerance        int  `yaml:"line_tolerance"`
	LineExactPoints      int  `yaml:"line_exact_points"`
	LineTolerancePoints  int  `yaml:"line_tolerance_points"`
	FlowPerfect          Band `yaml:"flow_perfect"`
	FlowAcceptable       Band `yaml:"flow_acceptable"`
	LexiconMin           int  `yaml:"lexicon_min"`
	LexiconMinPoints     int  `yaml:"lexicon_min_points"`
	LexiconPerfect       int  `yaml:"lexicon_perfect"`
	LexiconPerfectPoints int  `yaml:"lexicon_perfect_points"`
	ConcreteMin          int  `yaml:"concrete_min"`
	ConcreteMinPoints    int  `yaml:"concrete_min_points"`
	ConcreteRich         int  `yaml:"concrete_rich"`
	ConcreteRichPoints   int  `yaml:"concrete_rich_points"`
}

type PoeticThresholds struct {
	AbstractPerfect       int  `yaml:"abstract_perfect"`
	AbstractPerfectPoints int  `yaml:"abstract_perfect_points"`
	AbstractMax           int  `yaml:"abstract_max"`
	AbstractPartialPoints int  `yaml:"abstract_partial_points"`
	ConcreteMin           int  `yaml:"concrete_min"`
	ConcreteMinPoints     int  `yaml:"concrete_min_points"`
	ConcretePerfect       int  `yaml:"concrete_perfect"`
	ConcretePerfectPoints int  `yaml:"concrete_perfect_points"`
	MotifDensityMin       int  `yaml:"motif_density_min"`
	MotifDiversity        int  `yaml:"motif_diversity"`
	SentimentMin          int  `yaml:"sentiment_min"`
	CohesionPoints        int  `yaml:"cohesion_points"`
	RhymePoints           int  `yaml:"rhyme_points"`
	MetaphorHeader        bool `yaml:"metaphor_header"`
}

type RhythmThresholds struct {
	Lines            int  `yaml:"lines"`
	Conversational   Band `yaml:"conversational"`
	Triplet          Band `yaml:"triplet"`
	LinePoints       int  `yaml:"line_points"`
	MasteryThreshold int  `yaml:"mastery_threshold"`
	MasteryPoints    int  `yaml:"mastery_points"`
}

// ScoringThresholds holds every weight and limit the rubrics use.
type ScoringThresholds struct {
	MinLines        int                 `yaml:"min_lines"`
	RepeatMinLength int                 `yaml:"repeat_min_length"`
	Structure       StructureThresholds `yaml:"structure"`
	Poetic          PoeticThresholds    `yaml:"poetic"`
	Rhythm          RhythmThresholds    `yaml:"rhythm"`
}

// Lexicon is read-only once loaded; share one value between goroutines freely.
type Lexicon struct {
	Version         string               `yaml:"version"`
	AnchorWords     []string             `yaml:"anchor_words"`
	SemanticMotifs  map[string]WordTable `yaml:"semantic_motifs"`
	ConcreteLexicon WordTable            `yaml:"concrete_lexicon"`
	AbstractNouns   WordTable            `yaml:"abstract_nouns"`
	SentimentWords  WordTable            `yaml:"sentiment_words"`
	TargetStructure []int                `yaml:"target_structure"`
	Flow            FlowThresholds       `yaml:"flow_thresholds"`
	Scoring         ScoringThresholds    `yaml:"scoring"`
}

var defaultLexicon = sync.OnceValue(func() *Lexicon {
	lex, err := Parse(defaultLexiconYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded lexicon: %v", err))
	}
	return lex
})

// Default returns the embedded lexicon. It is parsed on first use and shared.
func Default() *Lexicon {
	return defaultLexicon()
}

// Load reads a replacement lexicon from a YAML file.
func Load(path string) (*Lexicon, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	lex, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", path, err)
	}
	return lex, nil
}

func Parse(raw []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(raw, &lex); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	if err := lex.Validate(); err != nil {
		return nil, err
	}
	return &lex, nil
}

func (l *Lexicon) Validate() error {
	if strings.TrimSpace(l.Version) == "" {
		return fmt.Errorf("lexicon version is required")
	}
	if err := validateWords("anchor_words", l.AnchorWords); err != nil {
		return err
	}
	if len(l.SemanticMotifs) == 0 {
		return fmt.Errorf("at least one semantic motif is required")
	}
	for name, motif := range l.SemanticMotifs {
		// submissions uppercase the chosen motif before lookup
		if name == "" || name != strings.ToUpper(name) || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
			return fmt.Errorf("motif name %q must be uppercase without spaces", name)
		}
		if len(motif) == 0 {
			return fmt.Errorf("motif %s has no categories", name)
		}
		if err := validateTable("motif "+name, motif); err != nil {
			return err
		}
	}
	if err := validateTable("concrete_lexicon", l.ConcreteLexicon); err != nil {
		return err
	}
	if err := validateTable("abstract_nouns", l.AbstractNouns); err != nil {
		return err
	}
	if err := validateTable("sentiment_words", l.SentimentWords); err != nil {
		return err
	}
	for _, p := range []string{Negative, Positive} {
		if _, ok := l.SentimentWords[p]; !ok {
			return fmt.Errorf("sentiment_words: missing %s", p)
		}
	}
	f := l.Flow
	if f.ConversationalMin > f.ConversationalMax || f.TripletMin > f.TripletMax {
		return fmt.Errorf("flow_thresholds: inverted band")
	}
	if f.ConversationalMax >= f.TripletMin {
		return fmt.Errorf("flow_thresholds: conversational and triplet bands overlap")
	}
	if l.Scoring.MinLines < 1 {
		return fmt.Errorf("scoring.min_lines must be positive")
	}
	return nil
}

func validateTable(name string, table WordTable) error {
	for category, words := range table {
		if err := validateWords(name+"."+category, words); err != nil {
			return err
		}
	}
	return nil
}

func validateWords(name string, words []string) error {
	for _, w := range words {
		if w == "" {
			return fmt.Errorf("%s: empty entry", name)
		}
		if strings.IndexFunc(w, unicode.IsSpace) >= 0 {
			return fmt.Errorf("%s: %q contains whitespace", name, w)
		}
		if w != strings.ToLower(w) {
			return fmt.Errorf("%s: %q is not lowercase", name, w)
		}
	}
	return nil
}

// MotifNames returns the motif keys in sorted order.
func (l *Lexicon) MotifNames() []string {
	return SortedKeys(l.SemanticMotifs)
}

func (l *Lexicon) HasMotif(name string) bool {
	_, ok := l.SemanticMotifs[name]
	return ok
}

// MotifWords flattens every category of a motif. Unknown motifs yield nil.
func (l *Lexicon) MotifWords(name string) []string {
	motif, ok := l.SemanticMotifs[name]
	if !ok {
		return nil
	}
	return motif.Flatten()
}

func (l *Lexicon) MotifCategory(name, category string) []string {
	motif, ok := l.SemanticMotifs[name]
	if !ok {
		return nil
	}
	return motif[category]
}

func (l *Lexicon) AllConcreteWords() []string {
	return l.ConcreteLexicon.Flatten()
}

func (l *Lexicon) ConcreteCategory(category string) []string {
	return l.ConcreteLexicon[category]
}

func (l *Lexicon) AllAbstractNouns() []string {
	return l.AbstractNouns.Flatten()
}

// Sentiment returns the word list for a polarity; unknown polarities yield nil.
func (l *Lexicon) Sentiment(polarity string) []string {
	return l.SentimentWords[polarity]
}

// Flatten merges all categories into one sorted, de-duplicated list.
func (t WordTable) Flatten() []string {
	words := lo.Uniq(lo.Flatten(lo.Values(t)))
	slices.Sort(words)
	return words
}

// Categories returns the category names in sorted order.
func (t WordTable) Categories() []string {
	return SortedKeys(t)
}

func SortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}
