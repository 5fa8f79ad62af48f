package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/finlearn/finlearn/internal/models"
)

// TopicRepository serves educational topic articles.
type TopicRepository struct {
	db *sql.DB
}

// NewTopicRepository creates a new topic repository.
func NewTopicRepository(db *sql.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

const topicColumns = `id, title, summary, content, category, difficulty, reading_time_minutes, created_at, updated_at`

// Get retrieves a topic by id, returning models.ErrNotFound when
// absent. Callers resolving scenario references treat that as "no
// related topic".
func (r *TopicRepository) Get(ctx context.Context, id string) (*models.Topic, error) {
	query := fmt.Sprintf(`SELECT %s FROM topics WHERE id = $1`, topicColumns)

	var t models.Topic
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Summary, &t.Content, &t.Category,
		&t.Difficulty, &t.ReadingTime, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}

	return &t, nil
}

// List returns all topics ordered by category then title.
func (r *TopicRepository) List(ctx context.Context) ([]models.Topic, error) {
	query := fmt.Sprintf(`SELECT %s FROM topics ORDER BY category ASC, title ASC`, topicColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query topics: %w", err)
	}
	defer rows.Close()

	var out []models.Topic
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.Title, &t.Summary, &t.Content, &t.Category,
			&t.Difficulty, &t.ReadingTime, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		out = append(out, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read topics: %w", err)
	}

	return out, nil
}
