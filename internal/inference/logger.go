package inference

import (
	"context"
	"log/slog"
	"time"

	"github.com/finlearn/finlearn/internal/models"
)

// Repository persists inference log records.
type Repository interface {
	Create(ctx context.Context, log models.InferenceLog) error
}

// Logger records text-generation calls for cost and reliability
// tracking. Writes happen asynchronously so a slow database never
// blocks the analysis path.
type Logger struct {
	repo   Repository
	logger *slog.Logger
}

// NewLogger creates a new inference logger. A nil repository disables
// persistence; calls are still logged through slog.
func NewLogger(repo Repository, logger *slog.Logger) *Logger {
	return &Logger{
		repo:   repo,
		logger: logger,
	}
}

// LogCall records one provider call.
func (l *Logger) LogCall(ctx context.Context, provider, model, operation string, tokens int, latency time.Duration, callErr error) {
	if l == nil {
		return
	}

	record := models.InferenceLog{
		Provider:   provider,
		Model:      model,
		Operation:  operation,
		TokensUsed: tokens,
		LatencyMs:  int(latency.Milliseconds()),
		Status:     "success",
	}

	if callErr != nil {
		record.Status = "error"
		record.ErrorMessage = callErr.Error()
	}

	l.logger.Debug("inference call",
		"provider", provider,
		"model", model,
		"operation", operation,
		"tokens", tokens,
		"latency_ms", record.LatencyMs,
		"status", record.Status)

	if l.repo == nil {
		return
	}

	// Persist asynchronously to avoid blocking the caller.
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := l.repo.Create(bgCtx, record); err != nil {
			l.logger.Error("failed to persist inference log", "error", err)
		}
	}()
}
