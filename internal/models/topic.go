package models

import (
	"time"
)

// Topic is an educational article served by the platform. Scenarios
// reference topics by id as soft foreign keys; a missing topic is a
// normal condition for consumers, not an error.
type Topic struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	Difficulty  int       `json:"difficulty"` // 1-3
	ReadingTime int       `json:"reading_time_minutes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
