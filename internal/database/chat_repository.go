package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/finlearn/finlearn/internal/models"
)

// ChatRepository stores Q&A chat history.
type ChatRepository struct {
	db *sql.DB
}

// NewChatRepository creates a new chat repository.
func NewChatRepository(db *sql.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// Create stores one question/answer exchange.
func (r *ChatRepository) Create(ctx context.Context, msg models.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (id, user_id, question, answer, fallback, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query, msg.ID, msg.UserID, msg.Question, msg.Answer, msg.Fallback, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}

	return nil
}

// ListByUser returns a user's chat history, most recent first.
func (r *ChatRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, user_id, question, answer, fallback, created_at
		FROM chat_messages
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat messages: %w", err)
	}
	defer rows.Close()

	var out []models.ChatMessage
	for rows.Next() {
		var msg models.ChatMessage
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.Question, &msg.Answer, &msg.Fallback, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		out = append(out, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chat messages: %w", err)
	}

	return out, nil
}
