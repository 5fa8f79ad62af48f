package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/finlearn/finlearn/internal/models"
)

// ScenarioRepository is the PostgreSQL-backed scenario catalog store.
type ScenarioRepository struct {
	db *sql.DB
}

// NewScenarioRepository creates a new scenario repository.
func NewScenarioRepository(db *sql.DB) *ScenarioRepository {
	return &ScenarioRepository{db: db}
}

const scenarioColumns = `id, title, description, category, difficulty, descriptor, impacts, popularity, related_topic_ids, created_at`

// Create inserts a catalog scenario.
func (r *ScenarioRepository) Create(ctx context.Context, s models.Scenario) error {
	descriptorJSON, err := json.Marshal(s.Descriptor)
	if err != nil {
		return fmt.Errorf("failed to marshal descriptor: %w", err)
	}

	impactsJSON, err := json.Marshal(s.Impacts)
	if err != nil {
		return fmt.Errorf("failed to marshal impacts: %w", err)
	}

	query := `
		INSERT INTO scenarios (id, title, description, category, difficulty, descriptor, impacts, popularity, related_topic_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = r.db.ExecContext(ctx, query,
		s.ID, s.Title, s.Description, s.Category, s.Difficulty,
		descriptorJSON, impactsJSON, s.Popularity, pq.Array(s.RelatedTopicIDs), s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert scenario: %w", err)
	}

	return nil
}

// Get retrieves a scenario by id, returning models.ErrNotFound when
// the id is absent.
func (r *ScenarioRepository) Get(ctx context.Context, id string) (*models.Scenario, error) {
	query := fmt.Sprintf(`SELECT %s FROM scenarios WHERE id = $1`, scenarioColumns)

	s, err := scanScenario(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get scenario: %w", err)
	}

	return s, nil
}

// List returns all scenarios in insertion order.
func (r *ScenarioRepository) List(ctx context.Context) ([]models.Scenario, error) {
	query := fmt.Sprintf(`SELECT %s FROM scenarios ORDER BY seq ASC`, scenarioColumns)
	return r.queryScenarios(ctx, query)
}

// ListByCategory filters by exact category match.
func (r *ScenarioRepository) ListByCategory(ctx context.Context, category string) ([]models.Scenario, error) {
	query := fmt.Sprintf(`SELECT %s FROM scenarios WHERE category = $1 ORDER BY seq ASC`, scenarioColumns)
	return r.queryScenarios(ctx, query, category)
}

// ListPopular returns up to limit scenarios by popularity descending,
// ties broken by lowest id for a stable ordering.
func (r *ScenarioRepository) ListPopular(ctx context.Context, limit int) ([]models.Scenario, error) {
	query := fmt.Sprintf(`SELECT %s FROM scenarios ORDER BY popularity DESC, id ASC LIMIT $1`, scenarioColumns)
	return r.queryScenarios(ctx, query, limit)
}

// IncrementPopularity bumps the view counter in a single statement so
// concurrent views never lose updates, and returns the updated row.
func (r *ScenarioRepository) IncrementPopularity(ctx context.Context, id string) (*models.Scenario, error) {
	query := fmt.Sprintf(`
		UPDATE scenarios
		SET popularity = popularity + 1
		WHERE id = $1
		RETURNING %s
	`, scenarioColumns)

	s, err := scanScenario(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to increment popularity: %w", err)
	}

	return s, nil
}

func (r *ScenarioRepository) queryScenarios(ctx context.Context, query string, args ...interface{}) ([]models.Scenario, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenarios: %w", err)
	}
	defer rows.Close()

	var out []models.Scenario
	for rows.Next() {
		s, err := scanScenario(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		out = append(out, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read scenarios: %w", err)
	}

	return out, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanScenario(row rowScanner) (*models.Scenario, error) {
	var s models.Scenario
	var descriptorJSON, impactsJSON []byte

	err := row.Scan(
		&s.ID,
		&s.Title,
		&s.Description,
		&s.Category,
		&s.Difficulty,
		&descriptorJSON,
		&impactsJSON,
		&s.Popularity,
		pq.Array(&s.RelatedTopicIDs),
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(descriptorJSON, &s.Descriptor); err != nil {
		return nil, fmt.Errorf("failed to unmarshal descriptor: %w", err)
	}
	if err := json.Unmarshal(impactsJSON, &s.Impacts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal impacts: %w", err)
	}

	return &s, nil
}
