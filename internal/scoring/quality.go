package scoring

import (
	"github.com/sherpa-labs/sherpa/internal/errors"
)

// ScoreQuality computes the composite quality assessment from per-criterion
// ratings keyed by criterion ID. Two-sided criteria take ratings in [-1, 1]
// and contribute rating x weight in either direction; one-sided criteria
// take ratings in [0, 1] and their weight carries the sign of the impact.
// Every configured criterion must be rated.
func (s *Scorer) ScoreQuality(ratings map[string]float64) (QualityResult, error) {
	if len(s.q.Criteria) == 0 {
		return QualityResult{}, errors.NewInvalidConfiguration("questionnaire defines no quality criteria", nil)
	}

	known := make(map[string]bool, len(s.q.Criteria))
	var missing []string
	for _, c := range s.q.Criteria {
		known[c.ID] = true
		if _, ok := ratings[c.ID]; !ok {
			missing = append(missing, c.ID)
		}
	}
	if len(missing) > 0 {
		return QualityResult{}, errors.NewIncompleteInput("quality", missing)
	}
	for id := range ratings {
		if !known[id] {
			return QualityResult{}, errors.NewValidationError("rating supplied for unknown criterion " + id)
		}
	}

	res := QualityResult{Criteria: make([]CriterionScore, 0, len(s.q.Criteria))}
	for _, c := range s.q.Criteria {
		rating := ratings[c.ID]

		lo, hi := 0.0, 1.0
		if c.TwoSided {
			lo = -1.0
		}
		if rating < lo || rating > hi {
			return QualityResult{}, errors.NewOutOfRangeAnswer(c.ID, rating, lo, hi)
		}

		contribution := rating * c.Weight
		res.Score += contribution
		res.Criteria = append(res.Criteria, CriterionScore{
			CriterionID:  c.ID,
			Rating:       rating,
			Weight:       c.Weight,
			Contribution: contribution,
		})

		// reachable range of this criterion
		if c.TwoSided {
			res.Min -= c.Weight
			res.Max += c.Weight
		} else if c.Weight > 0 {
			res.Max += c.Weight
		} else {
			res.Min += c.Weight
		}
	}

	return res, nil
}
