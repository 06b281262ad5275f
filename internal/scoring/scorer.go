package scoring

import (
	"github.com/sherpa-labs/sherpa/internal/errors"
	"github.com/sherpa-labs/sherpa/internal/questionnaire"
)

// Answer scale. Reviewers supply normalized judgments: 0 means the
// question does not hold at all, 1 means it fully holds.
const (
	AnswerMin = 0.0
	AnswerMax = 1.0
)

// PositionLimit bounds the net axis position to [-10, +10].
const PositionLimit = questionnaire.PoleWeightTotal

// Scorer computes axis positions and quality composites from a validated
// questionnaire. Scoring is a pure function of (configuration, answers):
// no I/O, no shared state, safe for concurrent use.
type Scorer struct {
	q *questionnaire.Questionnaire
}

// NewScorer validates the questionnaire and returns a scorer for it.
// Configuration problems surface here, not during scoring.
func NewScorer(q *questionnaire.Questionnaire) (*Scorer, error) {
	if q == nil {
		return nil, errors.NewInvalidConfiguration("questionnaire required", nil)
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{q: q}, nil
}

// Questionnaire returns the framework the scorer was built with.
func (s *Scorer) Questionnaire() *questionnaire.Questionnaire {
	return s.q
}

// ScoreAxis computes the net position on one axis from per-question
// answers keyed by question ID. Every question of the axis must be
// answered; answers for other axes are ignored.
func (s *Scorer) ScoreAxis(axisID string, answers map[string]float64) (AxisResult, error) {
	axis, ok := s.q.Axis(axisID)
	if !ok {
		return AxisResult{}, errors.NewNotFoundError("unknown axis " + axisID)
	}

	if missing := missingAnswers(axis, answers); len(missing) > 0 {
		return AxisResult{}, errors.NewIncompleteInput(axis.ID, missing)
	}

	positive, err := scorePole(axis.Positive, answers)
	if err != nil {
		return AxisResult{}, err
	}
	negative, err := scorePole(axis.Negative, answers)
	if err != nil {
		return AxisResult{}, err
	}

	return AxisResult{
		AxisID:   axis.ID,
		Position: clip(positive.Subtotal-negative.Subtotal, -PositionLimit, PositionLimit),
		Positive: positive,
		Negative: negative,
	}, nil
}

// ScoreAll scores every axis of the questionnaire from a combined answer
// map. Answer keys that match no defined question are rejected rather
// than ignored: a stray key usually means a typoed question ID, and a
// silently dropped judgment would corrupt the result's meaning.
func (s *Scorer) ScoreAll(answers map[string]float64) ([]AxisResult, error) {
	known := make(map[string]bool)
	for _, axis := range s.q.Axes {
		for _, q := range axis.Questions() {
			known[q.ID] = true
		}
	}
	for id := range answers {
		if !known[id] {
			return nil, errors.NewValidationError("answer supplied for unknown question " + id)
		}
	}

	results := make([]AxisResult, 0, len(s.q.Axes))
	for _, axis := range s.q.Axes {
		res, err := s.ScoreAxis(axis.ID, answers)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// missingAnswers lists the axis questions without a supplied answer,
// in questionnaire order.
func missingAnswers(axis questionnaire.Axis, answers map[string]float64) []string {
	var missing []string
	for _, q := range axis.Questions() {
		if _, ok := answers[q.ID]; !ok {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// scorePole computes a pole's weighted subtotal, normalized so the
// maximum attainable subtotal is exactly PoleWeightTotal even if the
// configured weights drift within tolerance.
func scorePole(pole questionnaire.Pole, answers map[string]float64) (PoleScore, error) {
	ps := PoleScore{
		PoleID:    pole.ID,
		Questions: make([]QuestionScore, 0, len(pole.Questions)),
	}

	raw := 0.0
	for _, q := range pole.Questions {
		answer := answers[q.ID]
		if answer < AnswerMin || answer > AnswerMax {
			return PoleScore{}, errors.NewOutOfRangeAnswer(q.ID, answer, AnswerMin, AnswerMax)
		}
		contribution := answer * q.Weight
		raw += contribution
		ps.Questions = append(ps.Questions, QuestionScore{
			QuestionID:   q.ID,
			Answer:       answer,
			Weight:       q.Weight,
			Contribution: contribution,
		})
	}

	ps.Subtotal = raw * questionnaire.PoleWeightTotal / pole.WeightSum()
	return ps, nil
}

func clip(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
