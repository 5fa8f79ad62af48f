package generative

import (
	"context"
	"encoding/json"
	"io"
	"reflect"
	"testing"

	"github.com/finlearn/finlearn/internal/models"
	"github.com/finlearn/finlearn/internal/scenario"
	"log/slog"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testDescriptor(t *testing.T) models.ScenarioDescriptor {
	t.Helper()
	d, err := scenario.BuildBasicDescriptor("interest_rate", 0.5, "increase", "")
	if err != nil {
		t.Fatalf("failed to build descriptor: %v", err)
	}
	return d
}

// validResponse marshals a known-good assessment the way the
// collaborator would return it.
func validResponse(t *testing.T, a models.ImpactAssessment) string {
	t.Helper()
	raw, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("failed to marshal assessment: %v", err)
	}
	return string(raw)
}

func TestGenerateImpactsWithNilClient(t *testing.T) {
	d := testDescriptor(t)
	adapter := NewImpactAdapter(nil, testLogger())

	got := adapter.GenerateImpacts(context.Background(), d)
	want := scenario.GenerateDeterministicImpacts(d)

	if !reflect.DeepEqual(got, want) {
		t.Error("nil client must produce the deterministic assessment")
	}
}

func TestGenerateImpactsUsesCollaboratorResponse(t *testing.T) {
	d := testDescriptor(t)
	scripted := scenario.GenerateDeterministicImpacts(d)
	scripted.Analysis = "collaborator analysis"

	client := &MockClient{Response: validResponse(t, scripted)}
	adapter := NewImpactAdapter(client, testLogger())

	got := adapter.GenerateImpacts(context.Background(), d)
	if got.Analysis != "collaborator analysis" {
		t.Errorf("analysis = %q, want the collaborator's text", got.Analysis)
	}
	if client.Calls() != 1 {
		t.Errorf("collaborator calls = %d, want 1", client.Calls())
	}
}

func TestGenerateImpactsFallsBackOnError(t *testing.T) {
	d := testDescriptor(t)
	client := &MockClient{Err: &CollaboratorUnavailableError{Reason: "network down"}}
	adapter := NewImpactAdapter(client, testLogger())

	got := adapter.GenerateImpacts(context.Background(), d)
	want := scenario.GenerateDeterministicImpacts(d)

	if !reflect.DeepEqual(got, want) {
		t.Error("collaborator failure must fall back to the deterministic assessment")
	}
}

func TestGenerateImpactsFallsBackOnMalformedJSON(t *testing.T) {
	d := testDescriptor(t)
	client := &MockClient{Response: "this is not JSON at all"}
	adapter := NewImpactAdapter(client, testLogger())

	got := adapter.GenerateImpacts(context.Background(), d)
	want := scenario.GenerateDeterministicImpacts(d)

	if !reflect.DeepEqual(got, want) {
		t.Error("malformed collaborator output must fall back")
	}
}

func TestGenerateImpactsFallsBackOnSchemaViolation(t *testing.T) {
	d := testDescriptor(t)
	bad := scenario.GenerateDeterministicImpacts(d)
	bad.Markets.Stocks.Overall = 99 // out of range

	client := &MockClient{Response: validResponse(t, bad)}
	adapter := NewImpactAdapter(client, testLogger())

	got := adapter.GenerateImpacts(context.Background(), d)
	want := scenario.GenerateDeterministicImpacts(d)

	if !reflect.DeepEqual(got, want) {
		t.Error("out-of-range collaborator output must fall back")
	}
}

func TestGenerateImpactsAcceptsFencedJSON(t *testing.T) {
	d := testDescriptor(t)
	scripted := scenario.GenerateDeterministicImpacts(d)
	scripted.Analysis = "fenced analysis"

	client := &MockClient{Response: "```json\n" + validResponse(t, scripted) + "\n```"}
	adapter := NewImpactAdapter(client, testLogger())

	got := adapter.GenerateImpacts(context.Background(), d)
	if got.Analysis != "fenced analysis" {
		t.Errorf("analysis = %q, want the fenced collaborator text", got.Analysis)
	}
}

func TestGenerateImpactsRecordsPath(t *testing.T) {
	d := testDescriptor(t)

	var paths []string
	hook := func(path string) { paths = append(paths, path) }

	adapter := NewImpactAdapter(nil, testLogger())
	adapter.SetPathHook(hook)
	adapter.GenerateImpacts(context.Background(), d)

	failing := NewImpactAdapter(&MockClient{Err: &CollaboratorUnavailableError{Reason: "timeout"}}, testLogger())
	failing.SetPathHook(hook)
	failing.GenerateImpacts(context.Background(), d)

	succeeding := NewImpactAdapter(&MockClient{Response: validResponse(t, scenario.GenerateDeterministicImpacts(d))}, testLogger())
	succeeding.SetPathHook(hook)
	succeeding.GenerateImpacts(context.Background(), d)

	want := []string{"deterministic", "deterministic", "generative"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("recorded paths = %v, want %v", paths, want)
	}
}

// A total outage across every operation must still yield a complete
// result without a single successful external call.
func TestTotalOutageStillProducesCompleteResult(t *testing.T) {
	d := testDescriptor(t)
	client := &MockClient{Err: &CollaboratorUnavailableError{Reason: "provider outage"}}

	synth := NewDescriptorSynthesizer(client, testLogger())
	adapter := NewImpactAdapter(client, testLogger())

	descriptor := synth.Synthesize(context.Background(), d, "")
	impacts := adapter.GenerateImpacts(context.Background(), descriptor)

	if !reflect.DeepEqual(descriptor, d) {
		t.Error("descriptor synthesis outage must return the basic descriptor unchanged")
	}
	if err := scenario.ValidateImpactAssessment(impacts); err != nil {
		t.Errorf("fallback assessment failed validation: %v", err)
	}
	if client.Calls() != 2 {
		t.Errorf("collaborator calls = %d, want exactly 2 attempts", client.Calls())
	}
}
