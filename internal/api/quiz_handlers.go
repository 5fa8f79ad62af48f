package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finlearn/finlearn/internal/auth"
	"github.com/finlearn/finlearn/internal/models"
	"log/slog"
)

// QuizStore is the storage surface the quiz routes need.
type QuizStore interface {
	Get(ctx context.Context, id string) (*models.Quiz, error)
	RecordAttempt(ctx context.Context, attempt models.QuizAttempt) error
	ListAttempts(ctx context.Context, userID string) ([]models.QuizAttempt, error)
}

// QuizHandler serves quiz retrieval and scoring
type QuizHandler struct {
	quizzes QuizStore
	logger  *slog.Logger
}

func NewQuizHandler(quizzes QuizStore, logger *slog.Logger) *QuizHandler {
	return &QuizHandler{
		quizzes: quizzes,
		logger:  logger,
	}
}

// QuizResultResponse reports a scored attempt. The answer key is
// echoed back so the frontend can show per-question explanations.
type QuizResultResponse struct {
	Attempt models.QuizAttempt `json:"attempt"`
	Correct []int              `json:"correct"` // answer index per question
}

// GetQuiz handles GET /api/quizzes/:id and POST /api/quizzes/:id/submit
func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 3 {
		http.Error(w, "Quiz ID required", http.StatusBadRequest)
		return
	}
	id := parts[2]

	if len(parts) == 4 && parts[3] == "submit" {
		h.submitQuiz(w, r, id)
		return
	}

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	quiz, err := h.quizzes.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Quiz not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get quiz", "id", id, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// Strip the answer key before sending the quiz to the client.
	public := *quiz
	public.Questions = make([]models.QuizQuestion, len(quiz.Questions))
	for i, q := range quiz.Questions {
		q.AnswerIndex = -1
		q.Explanation = ""
		public.Questions[i] = q
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(public)
}

// submitQuiz scores an attempt and records it when the caller is
// authenticated. Anonymous users still get their score back.
func (h *QuizHandler) submitQuiz(w http.ResponseWriter, r *http.Request, quizID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.SubmitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	quiz, err := h.quizzes.Get(r.Context(), quizID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Quiz not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get quiz for scoring", "id", quizID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if len(req.Answers) != len(quiz.Questions) {
		http.Error(w, "Answer count does not match question count", http.StatusBadRequest)
		return
	}

	score := 0
	correct := make([]int, len(quiz.Questions))
	for i, q := range quiz.Questions {
		correct[i] = q.AnswerIndex
		if req.Answers[i] == q.AnswerIndex {
			score++
		}
	}

	attempt := models.QuizAttempt{
		ID:        uuid.New().String(),
		QuizID:    quiz.ID,
		Score:     score,
		Total:     len(quiz.Questions),
		CreatedAt: time.Now().UTC(),
	}

	if userID, ok := auth.GetUserIDFromContext(r.Context()); ok {
		attempt.UserID = userID
		if err := h.quizzes.RecordAttempt(r.Context(), attempt); err != nil {
			// Scoring still succeeded; log and carry on.
			h.logger.Error("failed to record quiz attempt", "quiz_id", quiz.ID, "user_id", userID, "error", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(QuizResultResponse{Attempt: attempt, Correct: correct})
}

// ListAttempts handles GET /api/user/quiz-attempts (requires auth)
func (h *QuizHandler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	attempts, err := h.quizzes.ListAttempts(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list quiz attempts", "user_id", userID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"attempts": attempts,
		"count":    len(attempts),
	})
}
