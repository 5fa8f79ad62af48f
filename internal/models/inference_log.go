package models

import "time"

// InferenceLog records a single call to a text-generation provider.
type InferenceLog struct {
	ID           string    `json:"id"`
	Provider     string    `json:"provider"`  // 'openai' or 'anthropic'
	Model        string    `json:"model"`     // 'gpt-4o-mini', 'claude-sonnet-4-5', etc.
	Operation    string    `json:"operation"` // 'impact_generation', 'descriptor_synthesis', 'chat'
	TokensUsed   int       `json:"tokens_used"`
	LatencyMs    int       `json:"latency_ms"`
	Status       string    `json:"status"` // 'success', 'error'
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// InferenceLogStats aggregates call volume and latency per provider.
type InferenceLogStats struct {
	TotalCalls      int     `json:"total_calls"`
	TotalTokens     int64   `json:"total_tokens"`
	SuccessfulCalls int     `json:"successful_calls"`
	FailedCalls     int     `json:"failed_calls"`
	AvgLatencyMs    float64 `json:"avg_latency_ms"`
}
