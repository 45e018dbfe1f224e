package score

import (
	"errors"
	"fmt"
	"strings"

	"lyric_forge/internal/lexicon"
	"lyric_forge/internal/normalize"
)

// Kind selects the rubric that governs weighting.
type Kind string

const (
	StructureDrill Kind = "StructureDrill"
	PoeticWorkout  Kind = "PoeticWorkout"
	RhythmDrill    Kind = "RhythmDrill"
)

func (k Kind) Valid() bool {
	switch k {
	case StructureDrill, PoeticWorkout, RhythmDrill:
		return true
	}
	return false
}

// RhythmTarget is the stress-ratio band a rhythm drill is scored against.
type RhythmTarget string

const (
	Conversational RhythmTarget = "CONVERSATIONAL"
	Triplet        RhythmTarget = "TRIPLET"
)

var (
	ErrMissingMood   = errors.New("mood selection is required")
	ErrMissingMotif  = errors.New("motif selection is required")
	ErrTooFewLines   = errors.New("too few non-empty lines")
	ErrUnknownMotif  = errors.New("unknown motif")
	ErrInvalidMood   = errors.New("invalid mood")
	ErrUnknownKind   = errors.New("unknown challenge kind")
	ErrInvalidTarget = errors.New("invalid rhythm target")
)

// Submission is one lyric handed in for scoring. Build it with NewSubmission and
// treat it as read-only afterwards.
type Submission struct {
	Text         string
	Lines        []string
	Mood         string
	Motif        string
	Kind         Kind
	RhythmTarget RhythmTarget
}

func NewSubmission(text, mood, motif string, kind Kind) Submission {
	return Submission{
		Text:  text,
		Lines: normalize.SplitNonEmptyLines(text),
		Mood:  strings.ToUpper(strings.TrimSpace(mood)),
		Motif: strings.ToUpper(strings.TrimSpace(motif)),
		Kind:  kind,
	}
}

// WithRhythmTarget returns a copy scored against the given stress band.
func (s Submission) WithRhythmTarget(target RhythmTarget) Submission {
	s.RhythmTarget = target
	return s
}

// Check enforces the preconditions that must hold before any scoring runs. A
// failing submission produces no score at all.
func (s Submission) Check(minLines int) error {
	if !s.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}
	if s.Mood == "" {
		return ErrMissingMood
	}
	if s.Mood != lexicon.Negative && s.Mood != lexicon.Positive {
		return fmt.Errorf("%w: %q", ErrInvalidMood, s.Mood)
	}
	if s.Motif == "" {
		return ErrMissingMotif
	}
	switch s.RhythmTarget {
	case "", Conversational, Triplet:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTarget, s.RhythmTarget)
	}
	if len(s.Lines) < minLines {
		return fmt.Errorf("%w: got %d, need at least %d", ErrTooFewLines, len(s.Lines), minLines)
	}
	return nil
}

// ValidateMotif is the caller-side check that the selected motif exists. The
// engine itself scores an unknown motif as zero density.
func (s Submission) ValidateMotif(lex *lexicon.Lexicon) error {
	if s.Motif == "" {
		return ErrMissingMotif
	}
	if !lex.HasMotif(s.Motif) {
		return fmt.Errorf("%w: %q (valid: %s)", ErrUnknownMotif, s.Motif, strings.Join(lex.MotifNames(), ", "))
	}
	return nil
}
