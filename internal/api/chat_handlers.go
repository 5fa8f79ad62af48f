package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/finlearn/finlearn/internal/auth"
	"github.com/finlearn/finlearn/internal/generative"
	"github.com/finlearn/finlearn/internal/models"
	"github.com/finlearn/finlearn/internal/scenario"
	"log/slog"
)

// ChatStore persists tutor conversations.
type ChatStore interface {
	Create(ctx context.Context, msg models.ChatMessage) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.ChatMessage, error)
}

const chatSystemPrompt = `You are a patient finance tutor for beginners. Explain concepts in
plain language, use short concrete examples, and never give personalized
investment advice. Keep answers under 250 words.`

// fallbackAnswer is served whenever the generative collaborator is
// unconfigured or unavailable. The tutor always answers.
const fallbackAnswer = "I can't reach the tutoring service right now, but here is a good " +
	"starting point: most market questions come down to supply, demand, and expectations " +
	"about the future. Try exploring the scenario analyzer to see how a change like an " +
	"interest rate move ripples through stocks, bonds, and commodities, or browse the " +
	"topics section for a written explanation."

// ChatHandler serves the finance tutor chat
type ChatHandler struct {
	client generative.TextGenerationClient // nil when unconfigured
	store  ChatStore
	logger *slog.Logger
}

func NewChatHandler(client generative.TextGenerationClient, store ChatStore, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		client: client,
		store:  store,
		logger: logger,
	}
}

// Ask handles POST /api/chat
// Works for anonymous callers; authenticated callers get their
// conversation persisted.
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := ValidateChatRequest(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	msg := models.ChatMessage{
		ID:        uuid.New().String(),
		Question:  req.Question,
		CreatedAt: time.Now().UTC(),
	}

	if h.client == nil {
		msg.Answer = fallbackAnswer
		msg.Fallback = true
	} else {
		ctx := generative.WithOperation(r.Context(), "chat")
		msg.Fallback = true
		msg.Answer = scenario.WithFallback(ctx, h.logger, "chat",
			func(ctx context.Context) (string, error) {
				answer, err := h.client.Complete(ctx, chatSystemPrompt, req.Question, false)
				if err == nil {
					msg.Fallback = false
				}
				return answer, err
			},
			func() string { return fallbackAnswer },
		)
	}

	if userID, ok := auth.GetUserIDFromContext(r.Context()); ok {
		msg.UserID = userID
		if err := h.store.Create(r.Context(), msg); err != nil {
			h.logger.Error("failed to persist chat message", "user_id", userID, "error", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(msg)
}

// History handles GET /api/chat/history (requires auth)
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	messages, err := h.store.ListByUser(r.Context(), userID, limit)
	if err != nil {
		h.logger.Error("failed to list chat history", "user_id", userID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"messages": messages,
		"count":    len(messages),
	})
}
