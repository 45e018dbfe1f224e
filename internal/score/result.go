package score

import (
	"slices"

	"lyric_forge/internal/flow"
)

type Outcome string

const (
	Success Outcome = "success"
	Fail    Outcome = "fail"
)

// Axis is the score a feedback item speaks to.
type Axis string

const (
	AxisF Axis = "F"
	AxisP Axis = "P"
	AxisR Axis = "R"
)

var axisOrder = map[Axis]int{AxisF: 0, AxisP: 1, AxisR: 2}

type Feedback struct {
	Outcome Outcome `json:"outcome"`
	Axis    Axis    `json:"axis"`
	Message string  `json:"message"`
}

type Result struct {
	Kind         Kind       `json:"kind"`
	FScore       int        `json:"f_score"`
	PScore       int        `json:"p_score"`
	RScore       int        `json:"r_score"`
	LineCount    int        `json:"line_count"`
	AvgSyllables float64    `json:"avg_syllables"`
	Flow         flow.Style `json:"flow"`
	Feedback     []Feedback `json:"feedback"`
}

// DisplayFeedback returns the feedback grouped by axis, keeping run order inside
// each axis.
func (r Result) DisplayFeedback() []Feedback {
	out := slices.Clone(r.Feedback)
	slices.SortStableFunc(out, func(a, b Feedback) int {
		return axisOrder[a.Axis] - axisOrder[b.Axis]
	})
	return out
}

type checks struct {
	feedback []Feedback
}

func (c *checks) pass(axis Axis, message string) {
	c.feedback = append(c.feedback, Feedback{Outcome: Success, Axis: axis, Message: message})
}

func (c *checks) fail(axis Axis, message string) {
	c.feedback = append(c.feedback, Feedback{Outcome: Fail, Axis: axis, Message: message})
}

func clamp100(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
