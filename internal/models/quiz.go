package models

import (
	"time"
)

// Quiz is a set of questions attached to a topic.
type Quiz struct {
	ID        string         `json:"id"`
	TopicID   string         `json:"topic_id"`
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions"`
	CreatedAt time.Time      `json:"created_at"`
}

// QuizQuestion is a single multiple-choice question.
type QuizQuestion struct {
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answer_index"`
	Explanation string   `json:"explanation,omitempty"`
}

// QuizAttempt records a user's score on a quiz.
type QuizAttempt struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	QuizID    string    `json:"quiz_id"`
	Score     int       `json:"score"` // number of correct answers
	Total     int       `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmitQuizRequest is the payload for recording a quiz attempt.
type SubmitQuizRequest struct {
	QuizID  string `json:"quiz_id"`
	Answers []int  `json:"answers"` // selected option index per question
}
