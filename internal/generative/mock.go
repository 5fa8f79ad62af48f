package generative

import (
	"context"
	"sync"
)

// MockClient is a scripted TextGenerationClient for tests.
type MockClient struct {
	mu        sync.Mutex
	Response  string
	Err       error
	CallCount int
	// Responder overrides Response/Err when set.
	Responder func(systemPrompt, userPrompt string, expectJSON bool) (string, error)
}

// Complete returns the scripted response.
func (m *MockClient) Complete(ctx context.Context, systemPrompt, userPrompt string, expectJSON bool) (string, error) {
	m.mu.Lock()
	m.CallCount++
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", &CollaboratorUnavailableError{Reason: "context cancelled", Err: err}
	}

	if m.Responder != nil {
		return m.Responder(systemPrompt, userPrompt, expectJSON)
	}

	if m.Err != nil {
		return "", m.Err
	}

	return m.Response, nil
}

// Calls reports how many times Complete was invoked.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}
