package api

import (
	"strings"
	"testing"

	"github.com/finlearn/finlearn/internal/models"
)

func TestValidateAnalyzeRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.AnalyzeScenarioRequest
		wantErr bool
	}{
		{"valid", models.AnalyzeScenarioRequest{Type: "interest_rate", Value: 0.5, Direction: "increase"}, false},
		{"valid with context", models.AnalyzeScenarioRequest{Type: "inflation", Value: 3, Direction: "decrease", Context: "cooling economy"}, false},
		{"missing type", models.AnalyzeScenarioRequest{Value: 1, Direction: "increase"}, true},
		{"zero value", models.AnalyzeScenarioRequest{Type: "inflation", Value: 0, Direction: "increase"}, true},
		{"negative value", models.AnalyzeScenarioRequest{Type: "inflation", Value: -2, Direction: "increase"}, true},
		{"missing direction", models.AnalyzeScenarioRequest{Type: "inflation", Value: 1}, true},
		{"oversized type", models.AnalyzeScenarioRequest{Type: strings.Repeat("x", 101), Value: 1, Direction: "increase"}, true},
		{"oversized context", models.AnalyzeScenarioRequest{Type: "inflation", Value: 1, Direction: "increase", Context: strings.Repeat("x", 2001)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAnalyzeRequest(&tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRegisterRequest(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{"valid", "learner@example.com", "correct-horse", false},
		{"missing email", "", "correct-horse", true},
		{"no at sign", "learner.example.com", "correct-horse", true},
		{"short password", "learner@example.com", "short", true},
		{"oversized password", "learner@example.com", strings.Repeat("x", 73), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegisterRequest(tt.email, tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}
