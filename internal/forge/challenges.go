package forge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"lyric_forge/internal/score"
)

var ErrUnknownChallenge = errors.New("unknown challenge")

// Challenge is one drill the writer can pick.
type Challenge struct {
	Key          string             `json:"key"`
	Title        string             `json:"title"`
	Prompt       string             `json:"prompt"`
	Strategy     []string           `json:"strategy"`
	Kind         score.Kind         `json:"kind"`
	RhythmTarget score.RhythmTarget `json:"rhythm_target,omitempty"`
}

var catalog = []Challenge{
	{
		Key:    "structure",
		Title:  "Structure Drill: Structural Efficiency (F-Score)",
		Prompt: "Write 28 non-empty lines in a Chorus-Verse-Chorus shape (chorus 8, verse 12, chorus 8). Use at least 3 anchor words. Scored on line count, conversational flow (5-7 syllables per line) and anchor words, with a P-Score bonus for concrete imagery.",
		Strategy: []string{
			"Prioritise the hook. Verses are spacers and stay short (max 12 lines) to get back to the chorus quickly.",
			"Keep lines short and speakable; long lines push the flow out of the conversational band.",
			"Use anchor words such as \"yeah\" as rhythmic markers.",
			"Name a few concrete objects to earn the imagery bonus.",
		},
		Kind: score.StructureDrill,
	},
	{
		Key:    "rhythm-conversational",
		Title:  "Rhythm Drill: Conversational Flow (R-Score)",
		Prompt: "Write a 4-line verse. Under each line write its rhythmic map (/ stressed, . unstressed). Target stress ratio 40-55%.",
		Strategy: []string{
			"Mimic natural speech with a stressed-unstressed pattern.",
			"Put / on naturally stressed words: nouns and key verbs.",
		},
		Kind:         score.RhythmDrill,
		RhythmTarget: score.Conversational,
	},
	{
		Key:    "rhythm-triplet",
		Title:  "Rhythm Drill: Triplet Flow (R-Score)",
		Prompt: "Write a 4-line verse. Under each line write its rhythmic map (/ stressed, . unstressed). Target stress ratio 30-38%.",
		Strategy: []string{
			"Subdivide the beat ONE-e-uh: several . markers for every /.",
			"Aim for high syllable density with a rolling effect.",
		},
		Kind:         score.RhythmDrill,
		RhythmTarget: score.Triplet,
	},
	{
		Key:    "poetic",
		Title:  "Poetic Workout: Poetic Depth (P-Score)",
		Prompt: "Write at least 8 non-empty lines with no chorus. Never name the emotion; describe the objects of your motif instead. Close on two AABB couplets.",
		Strategy: []string{
			"Do not state the emotion (no 'sadness'). Describe the concrete objects that carry it.",
			"Cohesion checks that your motif and the implied mood occur together.",
			"Take a linear path: no repeated lines, move from A to B.",
		},
		Kind: score.PoeticWorkout,
	},
}

func Challenges() []Challenge {
	return lo.Map(catalog, func(c Challenge, _ int) Challenge {
		c.Strategy = append([]string(nil), c.Strategy...)
		return c
	})
}

func ChallengeKeys() []string {
	return lo.Map(catalog, func(c Challenge, _ int) string { return c.Key })
}

func LookupChallenge(key string) (Challenge, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	c, ok := lo.Find(catalog, func(c Challenge) bool { return c.Key == key })
	if !ok {
		return Challenge{}, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownChallenge, key, strings.Join(ChallengeKeys(), ", "))
	}
	return c, nil
}
