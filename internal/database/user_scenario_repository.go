package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/finlearn/finlearn/internal/models"
)

// UserScenarioRepository stores user bookmarks of catalog scenarios.
type UserScenarioRepository struct {
	db *sql.DB
}

// NewUserScenarioRepository creates a new user scenario repository.
func NewUserScenarioRepository(db *sql.DB) *UserScenarioRepository {
	return &UserScenarioRepository{db: db}
}

// Save inserts a bookmark.
func (r *UserScenarioRepository) Save(ctx context.Context, us models.UserScenario) error {
	overridesJSON, err := json.Marshal(us.Overrides)
	if err != nil {
		return fmt.Errorf("failed to marshal overrides: %w", err)
	}

	query := `
		INSERT INTO user_scenarios (id, user_id, scenario_id, notes, favorite, overrides, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.db.ExecContext(ctx, query, us.ID, us.UserID, us.ScenarioID, us.Notes, us.Favorite, overridesJSON, us.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user scenario: %w", err)
	}

	return nil
}

// ListByUser returns a user's bookmarks, oldest first.
func (r *UserScenarioRepository) ListByUser(ctx context.Context, userID string) ([]models.UserScenario, error) {
	query := `
		SELECT id, user_id, scenario_id, notes, favorite, overrides, created_at
		FROM user_scenarios
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user scenarios: %w", err)
	}
	defer rows.Close()

	var out []models.UserScenario
	for rows.Next() {
		var us models.UserScenario
		var overridesJSON []byte

		if err := rows.Scan(&us.ID, &us.UserID, &us.ScenarioID, &us.Notes, &us.Favorite, &overridesJSON, &us.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user scenario: %w", err)
		}

		if len(overridesJSON) > 0 {
			if err := json.Unmarshal(overridesJSON, &us.Overrides); err != nil {
				return nil, fmt.Errorf("failed to unmarshal overrides: %w", err)
			}
		}

		out = append(out, us)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user scenarios: %w", err)
	}

	return out, nil
}

// Delete removes a bookmark owned by the user. The referenced catalog
// scenario is never touched.
func (r *UserScenarioRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM user_scenarios WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user scenario: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound
	}

	return nil
}
