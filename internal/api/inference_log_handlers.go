package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/finlearn/finlearn/internal/models"
	"log/slog"
)

// InferenceStatsSource aggregates generative call telemetry.
type InferenceStatsSource interface {
	Stats(ctx context.Context) (*models.InferenceLogStats, error)
}

// InferenceLogHandler exposes generative usage stats (requires auth)
type InferenceLogHandler struct {
	source InferenceStatsSource
	logger *slog.Logger
}

func NewInferenceLogHandler(source InferenceStatsSource, logger *slog.Logger) *InferenceLogHandler {
	return &InferenceLogHandler{
		source: source,
		logger: logger,
	}
}

// GetStats handles GET /api/admin/inference-stats
func (h *InferenceLogHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats, err := h.source.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to aggregate inference stats", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(stats)
}
