package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/finlearn/finlearn/internal/generative"
	"github.com/finlearn/finlearn/internal/models"
)

type memoryChatStore struct {
	mu       sync.Mutex
	messages []models.ChatMessage
}

func (s *memoryChatStore) Create(ctx context.Context, msg models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return nil
}

func (s *memoryChatStore) ListByUser(ctx context.Context, userID string, limit int) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ChatMessage
	for _, m := range s.messages {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func askChat(t *testing.T, handler *ChatHandler, body string) (*httptest.ResponseRecorder, models.ChatMessage) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Ask(rec, req)

	var msg models.ChatMessage
	if rec.Code == http.StatusOK {
		if err := json.NewDecoder(rec.Body).Decode(&msg); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return rec, msg
}

func TestChatAskWithCollaborator(t *testing.T) {
	client := &generative.MockClient{Response: "A bond is a loan you make to a borrower."}
	handler := NewChatHandler(client, &memoryChatStore{}, testLogger())

	rec, msg := askChat(t, handler, `{"question": "What is a bond?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if msg.Fallback {
		t.Error("fallback = true, want false with a working collaborator")
	}
	if msg.Answer != "A bond is a loan you make to a borrower." {
		t.Errorf("answer = %q, want the collaborator's text", msg.Answer)
	}
}

func TestChatAskFallsBackWhenUnavailable(t *testing.T) {
	client := &generative.MockClient{Err: &generative.CollaboratorUnavailableError{Reason: "outage"}}
	handler := NewChatHandler(client, &memoryChatStore{}, testLogger())

	rec, msg := askChat(t, handler, `{"question": "What is a bond?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even during an outage", rec.Code)
	}
	if !msg.Fallback {
		t.Error("fallback = false, want true during an outage")
	}
	if msg.Answer == "" {
		t.Error("expected a non-empty fallback answer")
	}
}

func TestChatAskWithNilClient(t *testing.T) {
	handler := NewChatHandler(nil, &memoryChatStore{}, testLogger())

	rec, msg := askChat(t, handler, `{"question": "What is a bond?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with no collaborator configured", rec.Code)
	}
	if !msg.Fallback || msg.Answer == "" {
		t.Error("nil client must yield the fallback answer")
	}
}

func TestChatAskRejectsBadInput(t *testing.T) {
	handler := NewChatHandler(nil, &memoryChatStore{}, testLogger())

	for _, body := range []string{"{", `{"question": ""}`} {
		rec, _ := askChat(t, handler, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestChatAnonymousIsNotPersisted(t *testing.T) {
	store := &memoryChatStore{}
	handler := NewChatHandler(nil, store, testLogger())

	rec, _ := askChat(t, handler, `{"question": "What is a stock?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.messages) != 0 {
		t.Errorf("stored %d messages for an anonymous caller, want 0", len(store.messages))
	}
}
