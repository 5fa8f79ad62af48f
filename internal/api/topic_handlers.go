package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/finlearn/finlearn/internal/models"
	"log/slog"
)

// TopicStore is the read surface the topic routes need.
type TopicStore interface {
	Get(ctx context.Context, id string) (*models.Topic, error)
	List(ctx context.Context) ([]models.Topic, error)
}

// QuizLister resolves the quizzes attached to a topic.
type QuizLister interface {
	ListByTopic(ctx context.Context, topicID string) ([]models.Quiz, error)
}

// TopicHandler serves the educational topic routes
type TopicHandler struct {
	topics  TopicStore
	quizzes QuizLister
	logger  *slog.Logger
}

func NewTopicHandler(topics TopicStore, quizzes QuizLister, logger *slog.Logger) *TopicHandler {
	return &TopicHandler{
		topics:  topics,
		quizzes: quizzes,
		logger:  logger,
	}
}

// ListTopics handles GET /api/topics
func (h *TopicHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	topics, err := h.topics.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list topics", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"topics": topics,
		"count":  len(topics),
	})
}

// GetTopic handles GET /api/topics/:id and GET /api/topics/:id/quizzes
func (h *TopicHandler) GetTopic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 3 {
		http.Error(w, "Topic ID required", http.StatusBadRequest)
		return
	}
	id := parts[2]

	if len(parts) == 4 && parts[3] == "quizzes" {
		h.listTopicQuizzes(w, r, id)
		return
	}

	topic, err := h.topics.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Topic not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get topic", "id", id, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(topic)
}

func (h *TopicHandler) listTopicQuizzes(w http.ResponseWriter, r *http.Request, topicID string) {
	quizzes, err := h.quizzes.ListByTopic(r.Context(), topicID)
	if err != nil {
		h.logger.Error("failed to list quizzes for topic", "topic_id", topicID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"quizzes": quizzes,
		"count":   len(quizzes),
	})
}
