package models

import (
	"time"
)

// ChatMessage is a single exchange in the finance Q&A chat.
type ChatMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"` // empty for anonymous sessions
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Fallback  bool      `json:"fallback"` // true when answered without the generative collaborator
	CreatedAt time.Time `json:"created_at"`
}

// ChatRequest is the payload for asking the tutor a question.
type ChatRequest struct {
	Question string `json:"question"`
}
