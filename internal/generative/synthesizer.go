package generative

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/finlearn/finlearn/internal/models"
	"github.com/finlearn/finlearn/internal/scenario"
)

// DescriptorSynthesizer builds rich scenario descriptors through the
// text-generation collaborator. The basic deterministic constructor is
// the fallback; this layer only selects timeframe and rationale, so a
// failure costs nothing but polish.
type DescriptorSynthesizer struct {
	client TextGenerationClient // nil when no credentials are configured
	logger *slog.Logger
}

// NewDescriptorSynthesizer wires the synthesizer.
func NewDescriptorSynthesizer(client TextGenerationClient, logger *slog.Logger) *DescriptorSynthesizer {
	return &DescriptorSynthesizer{client: client, logger: logger}
}

// Synthesize returns a full descriptor for the validated inputs.
// basic must already be a valid descriptor; it is returned unchanged
// when the collaborator is unconfigured or fails.
func (s *DescriptorSynthesizer) Synthesize(ctx context.Context, basic models.ScenarioDescriptor, freeformContext string) models.ScenarioDescriptor {
	if s.client == nil {
		return basic
	}

	return scenario.WithFallback(ctx, s.logger, "descriptor_synthesis",
		func(ctx context.Context) (models.ScenarioDescriptor, error) {
			return s.synthesize(ctx, basic, freeformContext)
		},
		func() models.ScenarioDescriptor {
			return basic
		})
}

type synthesizedFields struct {
	Timeframe string `json:"timeframe"`
	Rationale string `json:"rationale"`
}

func (s *DescriptorSynthesizer) synthesize(ctx context.Context, basic models.ScenarioDescriptor, freeformContext string) (models.ScenarioDescriptor, error) {
	ctx = WithOperation(ctx, "descriptor_synthesis")

	prompt := buildDescriptorPrompt(basic.Change.Type, basic.Change.Value, basic.Change.Direction, freeformContext)
	raw, err := s.client.Complete(ctx, descriptorSystemPrompt, prompt, true)
	if err != nil {
		return models.ScenarioDescriptor{}, err
	}

	var fields synthesizedFields
	if err := json.Unmarshal([]byte(extractJSON(raw)), &fields); err != nil {
		return models.ScenarioDescriptor{}, fmt.Errorf("malformed descriptor JSON: %w", err)
	}

	timeframe, err := parseTimeframe(fields.Timeframe)
	if err != nil {
		return models.ScenarioDescriptor{}, err
	}

	if fields.Rationale == "" {
		return models.ScenarioDescriptor{}, fmt.Errorf("synthesized rationale is empty")
	}

	// Magnitude stays a local derivation from the value; the
	// collaborator never sets it.
	enriched := basic
	enriched.Timeframe = timeframe
	enriched.Change.Rationale = fields.Rationale

	return enriched, nil
}

func parseTimeframe(raw string) (models.Timeframe, error) {
	switch models.Timeframe(raw) {
	case models.TimeframeImmediate, models.TimeframeShortTerm, models.TimeframeMediumTerm, models.TimeframeLongTerm:
		return models.Timeframe(raw), nil
	default:
		return "", fmt.Errorf("unrecognized timeframe %q", raw)
	}
}
