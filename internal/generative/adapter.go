package generative

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/finlearn/finlearn/internal/models"
	"github.com/finlearn/finlearn/internal/scenario"
)

// ImpactAdapter produces impact assessments through the external
// text-generation collaborator, with an unconditional fallback to the
// deterministic generator. Callers never see a collaborator failure,
// only a valid assessment from whichever path succeeded.
type ImpactAdapter struct {
	client TextGenerationClient // nil when no credentials are configured
	logger *slog.Logger
	onPath func(path string) // optional hook for path metrics
}

// NewImpactAdapter wires the adapter. A nil client is valid and routes
// every request straight to the deterministic path.
func NewImpactAdapter(client TextGenerationClient, logger *slog.Logger) *ImpactAdapter {
	return &ImpactAdapter{client: client, logger: logger}
}

// SetPathHook registers a callback invoked with "generative" or
// "deterministic" after each assessment, for metrics.
func (a *ImpactAdapter) SetPathHook(hook func(path string)) {
	a.onPath = hook
}

// GenerateImpacts returns an impact assessment for the descriptor.
// The generative collaborator is tried once; any failure falls back to
// the deterministic generator.
func (a *ImpactAdapter) GenerateImpacts(ctx context.Context, d models.ScenarioDescriptor) models.ImpactAssessment {
	if a.client == nil {
		a.recordPath("deterministic")
		return scenario.GenerateDeterministicImpacts(d)
	}

	return scenario.WithFallback(ctx, a.logger, "impact_generation",
		func(ctx context.Context) (models.ImpactAssessment, error) {
			assessment, err := a.generate(ctx, d)
			if err == nil {
				a.recordPath("generative")
			}
			return assessment, err
		},
		func() models.ImpactAssessment {
			a.recordPath("deterministic")
			return scenario.GenerateDeterministicImpacts(d)
		})
}

func (a *ImpactAdapter) generate(ctx context.Context, d models.ScenarioDescriptor) (models.ImpactAssessment, error) {
	ctx = WithOperation(ctx, "impact_generation")

	raw, err := a.client.Complete(ctx, impactSystemPrompt, buildImpactPrompt(d), true)
	if err != nil {
		return models.ImpactAssessment{}, err
	}

	var assessment models.ImpactAssessment
	if err := json.Unmarshal([]byte(extractJSON(raw)), &assessment); err != nil {
		return models.ImpactAssessment{}, fmt.Errorf("malformed assessment JSON: %w", err)
	}

	if err := scenario.ValidateImpactAssessment(assessment); err != nil {
		return models.ImpactAssessment{}, fmt.Errorf("generated assessment rejected: %w", err)
	}

	return assessment, nil
}

func (a *ImpactAdapter) recordPath(path string) {
	if a.onPath != nil {
		a.onPath(path)
	}
}
