package questionnaire

import (
	"fmt"
	"math"

	"github.com/sherpa-labs/sherpa/internal/errors"
)

// PoleWeightTotal is the total weight every pole must carry.
// The framework is authored so that a fully affirmative answer set
// on one pole yields a subtotal of exactly 10.
const PoleWeightTotal = 10.0

// weightTolerance absorbs decimal rounding in hand-authored weights.
const weightTolerance = 1e-6

// Question is a single prompt a reviewer answers with a normalized judgment.
type Question struct {
	ID        string  `json:"id" yaml:"id"`
	Text      string  `json:"text" yaml:"text"`
	Rationale string  `json:"rationale" yaml:"rationale"`
	Weight    float64 `json:"weight" yaml:"weight"`
}

// Pole is one end of a bipolar axis, backed by an ordered weighted question set.
type Pole struct {
	ID        string     `json:"id" yaml:"id"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// WeightSum returns the sum of the pole's question weights.
func (p Pole) WeightSum() float64 {
	s := 0.0
	for _, q := range p.Questions {
		s += q.Weight
	}
	return s
}

// Axis is a bipolar qualitative dimension. Positive answers on the
// Positive pole push the axis position toward +10, the Negative pole
// toward -10.
type Axis struct {
	ID       string `json:"id" yaml:"id"`
	Positive Pole   `json:"positive" yaml:"positive"`
	Negative Pole   `json:"negative" yaml:"negative"`
}

// Questions returns all questions of both poles, positive pole first.
func (a Axis) Questions() []Question {
	qs := make([]Question, 0, len(a.Positive.Questions)+len(a.Negative.Questions))
	qs = append(qs, a.Positive.Questions...)
	qs = append(qs, a.Negative.Questions...)
	return qs
}

// Questionnaire is the static evaluation framework: a set of axes plus
// the composite quality criteria. Authored once, validated at load time.
type Questionnaire struct {
	Name     string      `json:"name" yaml:"name"`
	Axes     []Axis      `json:"axes" yaml:"axes"`
	Criteria []Criterion `json:"criteria" yaml:"criteria"`
}

// Axis looks up an axis by ID.
func (q *Questionnaire) Axis(id string) (Axis, bool) {
	for _, a := range q.Axes {
		if a.ID == id {
			return a, true
		}
	}
	return Axis{}, false
}

// Validate checks the authoring invariants. A violation is a
// configuration error surfaced at load time, never at scoring time.
func (q *Questionnaire) Validate() error {
	if len(q.Axes) == 0 {
		return errors.NewInvalidConfiguration("questionnaire defines no axes", nil)
	}

	seenAxes := make(map[string]bool)
	seenQuestions := make(map[string]string)

	for _, axis := range q.Axes {
		if axis.ID == "" {
			return errors.NewInvalidConfiguration("axis without ID", nil)
		}
		if seenAxes[axis.ID] {
			return errors.NewInvalidConfiguration(fmt.Sprintf("duplicate axis %q", axis.ID), nil)
		}
		seenAxes[axis.ID] = true

		for _, pole := range []Pole{axis.Positive, axis.Negative} {
			if pole.ID == "" {
				return errors.NewInvalidConfiguration(fmt.Sprintf("axis %q has a pole without ID", axis.ID), nil)
			}
			if len(pole.Questions) == 0 {
				return errors.NewInvalidConfiguration(fmt.Sprintf("pole %q has no questions", pole.ID), nil)
			}
			for _, question := range pole.Questions {
				if question.ID == "" {
					return errors.NewInvalidConfiguration(fmt.Sprintf("pole %q has a question without ID", pole.ID), nil)
				}
				if owner, dup := seenQuestions[question.ID]; dup {
					return errors.NewInvalidConfiguration(
						fmt.Sprintf("question %q belongs to both %q and %q", question.ID, owner, pole.ID), nil)
				}
				seenQuestions[question.ID] = pole.ID
				if question.Weight < 0 {
					return errors.NewInvalidConfiguration(
						fmt.Sprintf("question %q has negative weight %v", question.ID, question.Weight), nil)
				}
			}
			if sum := pole.WeightSum(); math.Abs(sum-PoleWeightTotal) > weightTolerance {
				return errors.NewInvalidConfiguration(
					fmt.Sprintf("pole %q weights sum to %v, want %v", pole.ID, sum, PoleWeightTotal), nil)
			}
		}
	}

	seenCriteria := make(map[string]bool)
	for _, c := range q.Criteria {
		if c.ID == "" {
			return errors.NewInvalidConfiguration("criterion without ID", nil)
		}
		if seenCriteria[c.ID] {
			return errors.NewInvalidConfiguration(fmt.Sprintf("duplicate criterion %q", c.ID), nil)
		}
		seenCriteria[c.ID] = true
		if c.Weight == 0 {
			return errors.NewInvalidConfiguration(fmt.Sprintf("criterion %q has zero weight", c.ID), nil)
		}
	}

	return nil
}

// Criterion is one entry of the composite quality assessment. Two-sided
// criteria accept ratings in [-1,1] and Weight is the magnitude of the
// swing in either direction. One-sided criteria accept ratings in [0,1]
// and Weight carries the sign of the impact (e.g. -2.0 for a purely
// detrimental signal).
type Criterion struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Impact   string  `json:"impact" yaml:"impact"`
	Weight   float64 `json:"weight" yaml:"weight"`
	TwoSided bool    `json:"two_sided" yaml:"two_sided"`
}
