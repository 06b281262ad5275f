package scoring

// QuestionScore is one question's contribution to a pole subtotal.
type QuestionScore struct {
	QuestionID   string  `json:"question_id"`
	Answer       float64 `json:"answer"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// PoleScore is a pole's weighted subtotal, normalized to [0, 10].
type PoleScore struct {
	PoleID    string          `json:"pole_id"`
	Subtotal  float64         `json:"subtotal"`
	Questions []QuestionScore `json:"questions"`
}

// AxisResult is the net position on a bipolar axis. Position lies in
// [-10, +10]; the sign indicates which pole dominates (positive pole
// when > 0). Derived and ephemeral, recomputed whenever answers change.
type AxisResult struct {
	AxisID   string    `json:"axis_id"`
	Position float64   `json:"position"`
	Positive PoleScore `json:"positive"`
	Negative PoleScore `json:"negative"`
}

// CriterionScore is one criterion's contribution to the quality composite.
type CriterionScore struct {
	CriterionID  string  `json:"criterion_id"`
	Rating       float64 `json:"rating"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// QualityResult is the composite quality assessment of a subject.
type QualityResult struct {
	Score    float64          `json:"score"`
	Min      float64          `json:"min"`
	Max      float64          `json:"max"`
	Criteria []CriterionScore `json:"criteria"`
}
