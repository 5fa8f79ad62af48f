package api

import (
	"fmt"

	"github.com/finlearn/finlearn/internal/models"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateAnalyzeRequest checks the shape of a custom scenario request
// before it reaches the catalog service. Deeper validation (direction
// vocabulary, positive value) happens in the scenario package; this
// catches the obviously malformed payloads at the edge.
func ValidateAnalyzeRequest(req *models.AnalyzeScenarioRequest) error {
	if req.Type == "" {
		return ValidationError{Field: "type", Message: "Scenario type is required"}
	}

	if len(req.Type) > 100 {
		return ValidationError{Field: "type", Message: "Scenario type is too long"}
	}

	if req.Value <= 0 {
		return ValidationError{Field: "value", Message: "Value must be positive"}
	}

	if req.Direction == "" {
		return ValidationError{Field: "direction", Message: "Direction is required"}
	}

	if len(req.Context) > 2000 {
		return ValidationError{Field: "context", Message: "Context must be 2000 characters or fewer"}
	}

	return nil
}

// ValidateChatRequest checks a tutor chat request.
func ValidateChatRequest(req *models.ChatRequest) error {
	if req.Question == "" {
		return ValidationError{Field: "question", Message: "Question is required"}
	}

	if len(req.Question) > 2000 {
		return ValidationError{Field: "question", Message: "Question must be 2000 characters or fewer"}
	}

	return nil
}

// ValidateRegisterRequest checks a registration payload.
func ValidateRegisterRequest(email, password string) error {
	if email == "" {
		return ValidationError{Field: "email", Message: "Email is required"}
	}

	if len(email) > 254 {
		return ValidationError{Field: "email", Message: "Email is too long"}
	}

	atSeen := false
	for _, c := range email {
		if c == '@' {
			atSeen = true
			break
		}
	}
	if !atSeen {
		return ValidationError{Field: "email", Message: "Invalid email address"}
	}

	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "Password must be at least 8 characters"}
	}

	if len(password) > 72 {
		// bcrypt truncates beyond 72 bytes
		return ValidationError{Field: "password", Message: "Password must be 72 characters or fewer"}
	}

	return nil
}
