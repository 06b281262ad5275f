package types

import (
	"time"

	"github.com/sherpa-labs/sherpa/internal/scoring"
)

// EvaluateRequest is a reviewer submission for one subnet. Answers are
// keyed by question ID on the 0..1 scale; ratings are the optional
// quality criteria keyed by criterion ID.
type EvaluateRequest struct {
	Netuid      int                `json:"netuid" binding:"required,min=1"`
	Name        string             `json:"name,omitempty"`
	Description string             `json:"description,omitempty"`
	Notes       string             `json:"notes,omitempty"`
	Answers     map[string]float64 `json:"answers" binding:"required"`
	Ratings     map[string]float64 `json:"ratings,omitempty"`
}

// EvaluateResponse reports the computed positions for a submission.
type EvaluateResponse struct {
	EvaluationID string                 `json:"evaluation_id"`
	Netuid       int                    `json:"netuid"`
	Name         string                 `json:"name"`
	Results      []scoring.AxisResult   `json:"results"`
	Quadrant     string                 `json:"quadrant"`
	Quality      *scoring.QualityResult `json:"quality,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

// ImportResponse reports a completed catalog import.
type ImportResponse struct {
	Imported int `json:"imported"`
}
