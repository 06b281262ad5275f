package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sherpa-labs/sherpa/internal/errors"
	"github.com/sherpa-labs/sherpa/internal/scoring"
)

// Repository handles catalog reads and writes.
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// UpsertSubnet inserts a subnet or updates its metadata and position
// snapshot. The created timestamp of an existing row is preserved.
func (r *Repository) UpsertSubnet(s *Subnet) error {
	now := time.Now()
	s.UpdatedAt = now
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}

	_, err := r.db.Exec(`
		INSERT INTO subnets (netuid, name, description, service_research, intelligence_resource, quality, quadrant, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(netuid) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			service_research = excluded.service_research,
			intelligence_resource = excluded.intelligence_resource,
			quality = excluded.quality,
			quadrant = excluded.quadrant,
			notes = excluded.notes,
			updated_at = excluded.updated_at
	`, s.Netuid, s.Name, s.Description, s.ServiceResearch, s.IntelligenceResource, s.Quality, s.Quadrant, s.Notes, s.CreatedAt, s.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert subnet %d: %w", s.Netuid, err)
	}
	return nil
}

// GetSubnet fetches one subnet by netuid.
func (r *Repository) GetSubnet(netuid int) (*Subnet, error) {
	var s Subnet
	err := r.db.QueryRow(`
		SELECT netuid, name, description, service_research, intelligence_resource, quality, quadrant, notes, created_at, updated_at
		FROM subnets
		WHERE netuid = ?
	`, netuid).Scan(
		&s.Netuid, &s.Name, &s.Description, &s.ServiceResearch,
		&s.IntelligenceResource, &s.Quality, &s.Quadrant, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("subnet %d not found", netuid))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query subnet %d: %w", netuid, err)
	}
	return &s, nil
}

// ListSubnets returns the catalog. With byQuality, rows are ranked by
// quality score descending (unrated subnets last); otherwise by netuid.
func (r *Repository) ListSubnets(byQuality bool, limit int) ([]Subnet, error) {
	order := "netuid ASC"
	if byQuality {
		order = "quality IS NULL, quality DESC, netuid ASC"
	}
	if limit <= 0 {
		limit = 256
	}

	rows, err := r.db.Query(fmt.Sprintf(`
		SELECT netuid, name, description, service_research, intelligence_resource, quality, quadrant, notes, created_at, updated_at
		FROM subnets
		ORDER BY %s
		LIMIT ?
	`, order), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list subnets: %w", err)
	}
	defer rows.Close()

	subnets := make([]Subnet, 0)
	for rows.Next() {
		var s Subnet
		if err := rows.Scan(
			&s.Netuid, &s.Name, &s.Description, &s.ServiceResearch,
			&s.IntelligenceResource, &s.Quality, &s.Quadrant, &s.Notes,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan subnet row: %w", err)
		}
		subnets = append(subnets, s)
	}
	return subnets, rows.Err()
}

// SaveEvaluation persists a reviewer submission.
func (r *Repository) SaveEvaluation(e *Evaluation) error {
	answers, err := json.Marshal(e.Answers)
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}
	results, err := json.Marshal(e.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	var ratings interface{}
	if e.Ratings != nil {
		b, err := json.Marshal(e.Ratings)
		if err != nil {
			return fmt.Errorf("failed to marshal ratings: %w", err)
		}
		ratings = string(b)
	}

	_, err = r.db.Exec(`
		INSERT INTO evaluations (id, netuid, answers, ratings, results, quality, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Netuid, string(answers), ratings, string(results), e.Quality, e.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to save evaluation: %w", err)
	}
	return nil
}

// LatestEvaluation returns the most recent evaluation for a subnet, or a
// not-found error when the subnet was never evaluated through the API.
func (r *Repository) LatestEvaluation(netuid int) (*Evaluation, error) {
	var (
		e       Evaluation
		answers string
		ratings sql.NullString
		results string
	)
	err := r.db.QueryRow(`
		SELECT id, netuid, answers, ratings, results, quality, created_at
		FROM evaluations
		WHERE netuid = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, netuid).Scan(&e.ID, &e.Netuid, &answers, &ratings, &results, &e.Quality, &e.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("no evaluation recorded for subnet %d", netuid))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluation: %w", err)
	}

	if err := json.Unmarshal([]byte(answers), &e.Answers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answers: %w", err)
	}
	if ratings.Valid {
		if err := json.Unmarshal([]byte(ratings.String), &e.Ratings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ratings: %w", err)
		}
	}
	if err := json.Unmarshal([]byte(results), &e.Results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal results: %w", err)
	}
	return &e, nil
}

// CountSubnets returns the catalog size.
func (r *Repository) CountSubnets() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM subnets`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count subnets: %w", err)
	}
	return n, nil
}

// RecordEvaluation stores the evaluation and refreshes the subnet's
// position snapshot in one place, so list reads never see a half-updated
// catalog entry.
func (r *Repository) RecordEvaluation(subnet *Subnet, e *Evaluation) error {
	for _, res := range e.Results {
		switch res.AxisID {
		case "service-research":
			v := res.Position
			subnet.ServiceResearch = &v
		case "intelligence-resource":
			v := res.Position
			subnet.IntelligenceResource = &v
		}
	}
	if subnet.ServiceResearch != nil && subnet.IntelligenceResource != nil {
		subnet.Quadrant = scoring.Quadrant(*subnet.ServiceResearch, *subnet.IntelligenceResource)
	}
	if e.Quality != nil {
		subnet.Quality = e.Quality
	}

	if err := r.UpsertSubnet(subnet); err != nil {
		return err
	}
	return r.SaveEvaluation(e)
}
