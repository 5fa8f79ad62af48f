package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/finlearn/finlearn/internal/auth"
	"github.com/finlearn/finlearn/internal/catalog"
	"github.com/finlearn/finlearn/internal/database"
	"github.com/finlearn/finlearn/internal/generative"
	"github.com/finlearn/finlearn/internal/marketdata"
	"log/slog"
)

// SetupRoutes configures all API routes
func SetupRoutes(mux *http.ServeMux, db *sql.DB, catalogService *catalog.Service, chatClient generative.TextGenerationClient, marketProvider marketdata.Provider, authConfig auth.Config, logger *slog.Logger) {
	scenarioHandler := NewScenarioHandler(catalogService, logger)
	topicHandler := NewTopicHandler(database.NewTopicRepository(db), database.NewQuizRepository(db), logger)
	quizHandler := NewQuizHandler(database.NewQuizRepository(db), logger)
	chatHandler := NewChatHandler(chatClient, database.NewChatRepository(db), logger)
	marketHandler := NewMarketHandler(marketProvider, logger)
	authHandler := NewAuthHandler(database.NewUserRepository(db), authConfig, logger)
	inferenceLogHandler := NewInferenceLogHandler(database.NewInferenceLogRepository(db), logger)

	requireAuth := auth.RequireAuth(authConfig)
	optionalAuth := auth.OptionalAuth(authConfig)

	// Authentication routes (public)
	mux.HandleFunc("/api/auth/register", authHandler.Register)
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/auth/validate", func(w http.ResponseWriter, r *http.Request) {
		requireAuth(http.HandlerFunc(authHandler.ValidateToken)).ServeHTTP(w, r)
	})

	// Scenario catalog routes (public for reading)
	mux.HandleFunc("/api/scenarios", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			requireAuth(http.HandlerFunc(scenarioHandler.CreateScenario)).ServeHTTP(w, r)
			return
		}
		scenarioHandler.ListScenarios(w, r)
	})
	mux.HandleFunc("/api/scenarios/popular", scenarioHandler.PopularScenarios)
	mux.HandleFunc("/api/scenarios/analyze", scenarioHandler.AnalyzeScenario)
	mux.HandleFunc("/api/scenarios/", func(w http.ResponseWriter, r *http.Request) {
		// POST /api/scenarios/:id/view increments the popularity counter
		if r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/view") {
			scenarioHandler.RecordView(w, r)
			return
		}
		scenarioHandler.GetScenario(w, r)
	})

	// Saved scenarios (per-user bookmarks)
	mux.HandleFunc("/api/user/scenarios", func(w http.ResponseWriter, r *http.Request) {
		requireAuth(http.HandlerFunc(scenarioHandler.SavedScenarios)).ServeHTTP(w, r)
	})
	mux.HandleFunc("/api/user/scenarios/", func(w http.ResponseWriter, r *http.Request) {
		requireAuth(http.HandlerFunc(scenarioHandler.DeleteSavedScenario)).ServeHTTP(w, r)
	})
	mux.HandleFunc("/api/user/quiz-attempts", func(w http.ResponseWriter, r *http.Request) {
		requireAuth(http.HandlerFunc(quizHandler.ListAttempts)).ServeHTTP(w, r)
	})

	// Educational content routes (public)
	mux.HandleFunc("/api/topics", topicHandler.ListTopics)
	mux.HandleFunc("/api/topics/", topicHandler.GetTopic)
	mux.HandleFunc("/api/quizzes/", func(w http.ResponseWriter, r *http.Request) {
		// Attempts are recorded when a token is present
		optionalAuth(http.HandlerFunc(quizHandler.GetQuiz)).ServeHTTP(w, r)
	})

	// Tutor chat (public; history is persisted for logged-in users)
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		optionalAuth(http.HandlerFunc(chatHandler.Ask)).ServeHTTP(w, r)
	})
	mux.HandleFunc("/api/chat/history", func(w http.ResponseWriter, r *http.Request) {
		requireAuth(http.HandlerFunc(chatHandler.History)).ServeHTTP(w, r)
	})

	// Market data routes (public)
	mux.HandleFunc("/api/market/", marketHandler.GetTimeSeries)

	// Admin routes
	mux.HandleFunc("/api/admin/inference-stats", func(w http.ResponseWriter, r *http.Request) {
		requireAuth(http.HandlerFunc(inferenceLogHandler.GetStats)).ServeHTTP(w, r)
	})

	// Health check
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := database.HealthCheck(r.Context(), db); err != nil {
			logger.Error("health check failed", "error", err)
			http.Error(w, "Database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
}
