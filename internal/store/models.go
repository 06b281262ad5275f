package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/sherpa-labs/sherpa/internal/scoring"
)

// Subnet is one evaluated subject of the catalog. The stored positions
// are snapshots of the latest evaluation; the evaluations table keeps
// the full history with per-question answers.
type Subnet struct {
	Netuid               int       `json:"netuid" db:"netuid"`
	Name                 string    `json:"name" db:"name"`
	Description          string    `json:"description,omitempty" db:"description"`
	ServiceResearch      *float64  `json:"service_research,omitempty" db:"service_research"`
	IntelligenceResource *float64  `json:"intelligence_resource,omitempty" db:"intelligence_resource"`
	Quality              *float64  `json:"quality,omitempty" db:"quality"`
	Quadrant             string    `json:"quadrant,omitempty" db:"quadrant"`
	Notes                string    `json:"notes,omitempty" db:"notes"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}

// Evaluation is one reviewer submission for a subnet.
type Evaluation struct {
	ID        string               `json:"id" db:"id"`
	Netuid    int                  `json:"netuid" db:"netuid"`
	Answers   map[string]float64   `json:"answers"`
	Ratings   map[string]float64   `json:"ratings,omitempty"`
	Results   []scoring.AxisResult `json:"results"`
	Quality   *float64             `json:"quality,omitempty"`
	CreatedAt time.Time            `json:"created_at" db:"created_at"`
}

// NewEvaluation creates an evaluation with a generated ID.
func NewEvaluation(netuid int, answers map[string]float64, ratings map[string]float64, results []scoring.AxisResult, quality *float64) *Evaluation {
	return &Evaluation{
		ID:        uuid.New().String(),
		Netuid:    netuid,
		Answers:   answers,
		Ratings:   ratings,
		Results:   results,
		Quality:   quality,
		CreatedAt: time.Now(),
	}
}
