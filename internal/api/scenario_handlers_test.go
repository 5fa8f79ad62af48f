package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/finlearn/finlearn/internal/catalog"
	"github.com/finlearn/finlearn/internal/generative"
	"github.com/finlearn/finlearn/internal/models"
	"github.com/finlearn/finlearn/internal/scenario"
	"log/slog"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestScenarioHandler(t *testing.T) (*ScenarioHandler, *catalog.MemoryScenarioRepository) {
	t.Helper()
	logger := testLogger()
	repo := catalog.NewMemoryScenarioRepository()
	svc := catalog.NewService(
		repo,
		catalog.NewMemoryUserScenarioRepository(),
		catalog.NewMemoryTopicRepository(),
		generative.NewDescriptorSynthesizer(nil, logger),
		generative.NewImpactAdapter(nil, logger),
		logger,
	)
	return NewScenarioHandler(svc, logger), repo
}

func seedScenario(t *testing.T, repo *catalog.MemoryScenarioRepository, id string, popularity int) {
	t.Helper()
	d, err := scenario.BuildBasicDescriptor("inflation", 3, "increase", "")
	if err != nil {
		t.Fatalf("failed to build descriptor: %v", err)
	}
	err = repo.Create(context.Background(), models.Scenario{
		ID:          id,
		Title:       "Inflation spike " + id,
		Description: "Prices rise broadly",
		Category:    "inflation",
		Difficulty:  1,
		Descriptor:  d,
		Impacts:     scenario.GenerateDeterministicImpacts(d),
		Popularity:  popularity,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("failed to seed scenario: %v", err)
	}
}

func TestListScenariosHandler(t *testing.T) {
	handler, repo := newTestScenarioHandler(t)
	seedScenario(t, repo, "s1", 0)
	seedScenario(t, repo, "s2", 0)

	req := httptest.NewRequest(http.MethodGet, "/api/scenarios", nil)
	rec := httptest.NewRecorder()
	handler.ListScenarios(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp ScenariosResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("count = %d, want 2", resp.Count)
	}
}

func TestGetScenarioHandlerNotFound(t *testing.T) {
	handler, _ := newTestScenarioHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/scenarios/missing", nil)
	rec := httptest.NewRecorder()
	handler.GetScenario(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRecordViewHandler(t *testing.T) {
	handler, repo := newTestScenarioHandler(t)
	seedScenario(t, repo, "s1", 4)

	req := httptest.NewRequest(http.MethodPost, "/api/scenarios/s1/view", nil)
	rec := httptest.NewRecorder()
	handler.RecordView(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var got models.Scenario
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Popularity != 5 {
		t.Errorf("popularity = %d, want 5", got.Popularity)
	}
}

func TestPopularScenariosHandlerRejectsBadLimit(t *testing.T) {
	handler, _ := newTestScenarioHandler(t)

	for _, limit := range []string{"abc", "0", "-3"} {
		req := httptest.NewRequest(http.MethodGet, "/api/scenarios/popular?limit="+limit, nil)
		rec := httptest.NewRecorder()
		handler.PopularScenarios(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit %q: status = %d, want 400", limit, rec.Code)
		}
	}
}

func TestAnalyzeScenarioHandler(t *testing.T) {
	handler, _ := newTestScenarioHandler(t)

	body := `{"type": "interest_rate", "value": 0.75, "direction": "increase"}`
	req := httptest.NewRequest(http.MethodPost, "/api/scenarios/analyze", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.AnalyzeScenario(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var result models.AnalyzeScenarioResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Descriptor.Change.Type != "interest_rate" {
		t.Errorf("type = %q, want interest_rate", result.Descriptor.Change.Type)
	}
	if err := scenario.ValidateImpactAssessment(result.Impacts); err != nil {
		t.Errorf("response impacts failed validation: %v", err)
	}
}

func TestAnalyzeScenarioHandlerRejectsBadInput(t *testing.T) {
	handler, _ := newTestScenarioHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"missing type", `{"value": 1, "direction": "increase"}`},
		{"zero value", `{"type": "inflation", "value": 0, "direction": "increase"}`},
		{"bad direction", `{"type": "inflation", "value": 1, "direction": "sideways"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/scenarios/analyze", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.AnalyzeScenario(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}
