package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/finlearn/finlearn/internal/models"
)

// InferenceLogRepository persists text-generation call records.
type InferenceLogRepository struct {
	db *sql.DB
}

// NewInferenceLogRepository creates a new inference log repository.
func NewInferenceLogRepository(db *sql.DB) *InferenceLogRepository {
	return &InferenceLogRepository{db: db}
}

// Create inserts a log record, assigning an id when absent.
func (r *InferenceLogRepository) Create(ctx context.Context, log models.InferenceLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}

	query := `
		INSERT INTO inference_logs (id, provider, model, operation, tokens_used, latency_ms, status, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		log.ID, log.Provider, log.Model, log.Operation,
		log.TokensUsed, log.LatencyMs, log.Status, log.ErrorMessage)
	if err != nil {
		return fmt.Errorf("failed to insert inference log: %w", err)
	}

	return nil
}

// Stats aggregates call counts, token use, and latency.
func (r *InferenceLogRepository) Stats(ctx context.Context) (*models.InferenceLogStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(tokens_used), 0),
			COUNT(*) FILTER (WHERE status = 'success'),
			COUNT(*) FILTER (WHERE status = 'error'),
			COALESCE(AVG(latency_ms), 0)
		FROM inference_logs
	`

	var stats models.InferenceLogStats
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalCalls, &stats.TotalTokens,
		&stats.SuccessfulCalls, &stats.FailedCalls, &stats.AvgLatencyMs)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate inference logs: %w", err)
	}

	return &stats, nil
}
