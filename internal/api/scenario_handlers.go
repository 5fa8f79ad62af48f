package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/finlearn/finlearn/internal/auth"
	"github.com/finlearn/finlearn/internal/catalog"
	"github.com/finlearn/finlearn/internal/models"
	"github.com/finlearn/finlearn/internal/scenario"
	"log/slog"
)

// ScenarioHandler serves the scenario catalog and custom analysis routes
type ScenarioHandler struct {
	service *catalog.Service
	logger  *slog.Logger
}

func NewScenarioHandler(service *catalog.Service, logger *slog.Logger) *ScenarioHandler {
	return &ScenarioHandler{
		service: service,
		logger:  logger,
	}
}

// ScenariosResponse wraps a scenario listing
type ScenariosResponse struct {
	Scenarios []models.Scenario `json:"scenarios"`
	Count     int               `json:"count"`
}

// ScenarioDetailResponse pairs a scenario with its resolved topics
type ScenarioDetailResponse struct {
	Scenario      models.Scenario `json:"scenario"`
	RelatedTopics []models.Topic  `json:"related_topics"`
}

// ListScenarios handles GET /api/scenarios
// Supports ?category=... for exact-match filtering.
func (h *ScenarioHandler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var (
		scenarios []models.Scenario
		err       error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		scenarios, err = h.service.ListScenariosByCategory(r.Context(), category)
	} else {
		scenarios, err = h.service.ListScenarios(r.Context())
	}
	if err != nil {
		h.logger.Error("failed to list scenarios", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)

	response := ScenariosResponse{
		Scenarios: scenarios,
		Count:     len(scenarios),
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// PopularScenarios handles GET /api/scenarios/popular
// Supports ?limit=N; ties are broken by lowest id for a stable order.
func (h *ScenarioHandler) PopularScenarios(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	scenarios, err := h.service.ListPopularScenarios(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list popular scenarios", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ScenariosResponse{Scenarios: scenarios, Count: len(scenarios)})
}

// GetScenario handles GET /api/scenarios/:id
func (h *ScenarioHandler) GetScenario(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := scenarioIDFromPath(r.URL.Path)
	if id == "" {
		http.Error(w, "Scenario ID required", http.StatusBadRequest)
		return
	}

	sc, err := h.service.GetScenario(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Scenario not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get scenario", "id", id, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := ScenarioDetailResponse{
		Scenario:      *sc,
		RelatedTopics: h.service.RelatedTopics(r.Context(), sc),
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// RecordView handles POST /api/scenarios/:id/view
// Increments the popularity counter and returns the updated scenario.
func (h *ScenarioHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := scenarioIDFromPath(strings.TrimSuffix(r.URL.Path, "/view"))
	if id == "" {
		http.Error(w, "Scenario ID required", http.StatusBadRequest)
		return
	}

	sc, err := h.service.RecordView(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Scenario not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to record view", "id", id, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(sc)
}

// CreateScenario handles POST /api/scenarios (requires auth)
func (h *ScenarioHandler) CreateScenario(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.CreateScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sc, err := h.service.CreateScenario(r.Context(), req)
	if err != nil {
		var invalid *scenario.InvalidInputError
		if errors.As(err, &invalid) {
			http.Error(w, invalid.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to create scenario", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(sc)
}

// AnalyzeScenario handles POST /api/scenarios/analyze
// Runs the custom scenario through descriptor synthesis and impact
// generation. Always answers with a complete assessment when the input
// is valid, regardless of collaborator availability.
func (h *ScenarioHandler) AnalyzeScenario(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.AnalyzeScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := ValidateAnalyzeRequest(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.AnalyzeCustomScenario(r.Context(), req)
	if err != nil {
		var invalid *scenario.InvalidInputError
		if errors.As(err, &invalid) {
			http.Error(w, invalid.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to analyze scenario", "type", req.Type, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

// SaveScenarioRequest is the payload for bookmarking a scenario
type SaveScenarioRequest struct {
	ScenarioID string            `json:"scenario_id"`
	Notes      string            `json:"notes"`
	Favorite   bool              `json:"favorite"`
	Overrides  map[string]string `json:"overrides,omitempty"`
}

// SavedScenarios handles GET and POST /api/user/scenarios (requires auth)
func (h *ScenarioHandler) SavedScenarios(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		saved, err := h.service.ListSavedScenarios(r.Context(), userID)
		if err != nil {
			h.logger.Error("failed to list saved scenarios", "user_id", userID, "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"scenarios": saved,
			"count":     len(saved),
		})

	case http.MethodPost:
		var req SaveScenarioRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.ScenarioID == "" {
			http.Error(w, "scenario_id is required", http.StatusBadRequest)
			return
		}

		saved, err := h.service.SaveScenario(r.Context(), userID, req.ScenarioID, req.Notes, req.Favorite, req.Overrides)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				http.Error(w, "Scenario not found", http.StatusNotFound)
				return
			}
			h.logger.Error("failed to save scenario", "user_id", userID, "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(saved)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// DeleteSavedScenario handles DELETE /api/user/scenarios/:id (requires auth)
func (h *ScenarioHandler) DeleteSavedScenario(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	id := parts[len(parts)-1]
	if id == "" || id == "scenarios" {
		http.Error(w, "Saved scenario ID required", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteSavedScenario(r.Context(), userID, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Saved scenario not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete saved scenario", "user_id", userID, "id", id, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// scenarioIDFromPath extracts the id segment from /api/scenarios/:id
func scenarioIDFromPath(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 3 {
		return ""
	}
	return parts[2]
}
