package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/finlearn/finlearn/internal/models"
)

// QuizRepository serves quizzes and records attempts.
type QuizRepository struct {
	db *sql.DB
}

// NewQuizRepository creates a new quiz repository.
func NewQuizRepository(db *sql.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

// Get retrieves a quiz by id.
func (r *QuizRepository) Get(ctx context.Context, id string) (*models.Quiz, error) {
	query := `SELECT id, topic_id, title, questions, created_at FROM quizzes WHERE id = $1`

	var q models.Quiz
	var questionsJSON []byte

	err := r.db.QueryRowContext(ctx, query, id).Scan(&q.ID, &q.TopicID, &q.Title, &questionsJSON, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	if err := json.Unmarshal(questionsJSON, &q.Questions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions: %w", err)
	}

	return &q, nil
}

// ListByTopic returns the quizzes attached to a topic.
func (r *QuizRepository) ListByTopic(ctx context.Context, topicID string) ([]models.Quiz, error) {
	query := `SELECT id, topic_id, title, questions, created_at FROM quizzes WHERE topic_id = $1 ORDER BY title ASC`

	rows, err := r.db.QueryContext(ctx, query, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quizzes: %w", err)
	}
	defer rows.Close()

	var out []models.Quiz
	for rows.Next() {
		var q models.Quiz
		var questionsJSON []byte

		if err := rows.Scan(&q.ID, &q.TopicID, &q.Title, &questionsJSON, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quiz: %w", err)
		}
		if err := json.Unmarshal(questionsJSON, &q.Questions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal questions: %w", err)
		}
		out = append(out, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read quizzes: %w", err)
	}

	return out, nil
}

// RecordAttempt stores a user's quiz score.
func (r *QuizRepository) RecordAttempt(ctx context.Context, attempt models.QuizAttempt) error {
	query := `
		INSERT INTO quiz_attempts (id, user_id, quiz_id, score, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query, attempt.ID, attempt.UserID, attempt.QuizID, attempt.Score, attempt.Total, attempt.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert quiz attempt: %w", err)
	}

	return nil
}

// ListAttempts returns a user's attempts, most recent first.
func (r *QuizRepository) ListAttempts(ctx context.Context, userID string) ([]models.QuizAttempt, error) {
	query := `
		SELECT id, user_id, quiz_id, score, total, created_at
		FROM quiz_attempts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz attempts: %w", err)
	}
	defer rows.Close()

	var out []models.QuizAttempt
	for rows.Next() {
		var a models.QuizAttempt
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuizID, &a.Score, &a.Total, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quiz attempt: %w", err)
		}
		out = append(out, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read quiz attempts: %w", err)
	}

	return out, nil
}
