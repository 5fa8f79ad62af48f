package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finlearn/finlearn/internal/generative"
	"github.com/finlearn/finlearn/internal/models"
	"github.com/finlearn/finlearn/internal/scenario"
)

// DefaultPopularLimit bounds the popular-scenarios listing when the
// caller does not specify one.
const DefaultPopularLimit = 5

// ScenarioRepository is the storage contract for catalog scenarios.
// IncrementPopularity must be a single atomic operation; concurrent
// calls on the same id must not lose increments.
type ScenarioRepository interface {
	List(ctx context.Context) ([]models.Scenario, error)
	Get(ctx context.Context, id string) (*models.Scenario, error)
	ListByCategory(ctx context.Context, category string) ([]models.Scenario, error)
	ListPopular(ctx context.Context, limit int) ([]models.Scenario, error)
	Create(ctx context.Context, s models.Scenario) error
	IncrementPopularity(ctx context.Context, id string) (*models.Scenario, error)
}

// UserScenarioRepository stores user bookmarks of catalog scenarios.
type UserScenarioRepository interface {
	Save(ctx context.Context, us models.UserScenario) error
	ListByUser(ctx context.Context, userID string) ([]models.UserScenario, error)
	Delete(ctx context.Context, userID, id string) error
}

// TopicRepository resolves related-topic references.
type TopicRepository interface {
	Get(ctx context.Context, id string) (*models.Topic, error)
}

// Service orchestrates the scenario catalog and custom scenario
// analysis. Analysis runs are pure and independent; the only shared
// mutable state is the store behind the repositories.
type Service struct {
	scenarios     ScenarioRepository
	userScenarios UserScenarioRepository
	topics        TopicRepository
	synthesizer   *generative.DescriptorSynthesizer
	adapter       *generative.ImpactAdapter
	logger        *slog.Logger
}

// NewService wires the catalog service.
func NewService(scenarios ScenarioRepository, userScenarios UserScenarioRepository, topics TopicRepository, synthesizer *generative.DescriptorSynthesizer, adapter *generative.ImpactAdapter, logger *slog.Logger) *Service {
	return &Service{
		scenarios:     scenarios,
		userScenarios: userScenarios,
		topics:        topics,
		synthesizer:   synthesizer,
		adapter:       adapter,
		logger:        logger,
	}
}

// ListScenarios returns all catalog scenarios in insertion order.
func (s *Service) ListScenarios(ctx context.Context) ([]models.Scenario, error) {
	return s.scenarios.List(ctx)
}

// GetScenario returns a scenario by id, or models.ErrNotFound.
func (s *Service) GetScenario(ctx context.Context, id string) (*models.Scenario, error) {
	return s.scenarios.Get(ctx, id)
}

// ListScenariosByCategory filters by exact, case-sensitive category.
func (s *Service) ListScenariosByCategory(ctx context.Context, category string) ([]models.Scenario, error) {
	return s.scenarios.ListByCategory(ctx, category)
}

// ListPopularScenarios returns up to limit scenarios ordered by
// popularity descending, ties broken by lowest id.
func (s *Service) ListPopularScenarios(ctx context.Context, limit int) ([]models.Scenario, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	return s.scenarios.ListPopular(ctx, limit)
}

// RecordView atomically increments a scenario's popularity and returns
// the updated record. Returns models.ErrNotFound for an absent id.
func (s *Service) RecordView(ctx context.Context, id string) (*models.Scenario, error) {
	return s.scenarios.IncrementPopularity(ctx, id)
}

// CreateScenario validates and inserts a catalog scenario, assigning
// an id and zero popularity.
func (s *Service) CreateScenario(ctx context.Context, req models.CreateScenarioRequest) (*models.Scenario, error) {
	if req.Title == "" {
		return nil, &scenario.InvalidInputError{Field: "title", Message: "title is required"}
	}
	if req.Description == "" {
		return nil, &scenario.InvalidInputError{Field: "description", Message: "description is required"}
	}
	if req.Category == "" {
		return nil, &scenario.InvalidInputError{Field: "category", Message: "category is required"}
	}
	if req.Difficulty < 1 || req.Difficulty > 3 {
		return nil, &scenario.InvalidInputError{Field: "difficulty", Message: "difficulty must be between 1 and 3"}
	}

	if err := validateDescriptor(req.Descriptor); err != nil {
		return nil, err
	}

	if err := scenario.ValidateImpactAssessment(req.Impacts); err != nil {
		return nil, fmt.Errorf("invalid impact assessment: %w", err)
	}

	record := models.Scenario{
		ID:              uuid.New().String(),
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Difficulty:      req.Difficulty,
		Descriptor:      req.Descriptor,
		Impacts:         req.Impacts,
		Popularity:      0,
		RelatedTopicIDs: req.RelatedTopicIDs,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.scenarios.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store scenario: %w", err)
	}

	s.logger.Info("scenario created", "id", record.ID, "category", record.Category)

	return &record, nil
}

// AnalyzeCustomScenario runs the two-level fallback chain for a
// user-submitted scenario: descriptor synthesis falls back to the
// basic constructor, impact generation falls back to the
// deterministic generator. A total collaborator outage still yields a
// complete, valid result with zero external calls.
func (s *Service) AnalyzeCustomScenario(ctx context.Context, req models.AnalyzeScenarioRequest) (*models.AnalyzeScenarioResult, error) {
	basic, err := scenario.BuildBasicDescriptor(req.Type, req.Value, req.Direction, req.Context)
	if err != nil {
		return nil, err
	}

	descriptor := s.synthesizer.Synthesize(ctx, basic, req.Context)
	impacts := s.adapter.GenerateImpacts(ctx, descriptor)

	return &models.AnalyzeScenarioResult{
		Descriptor: descriptor,
		Impacts:    impacts,
	}, nil
}

// RelatedTopics resolves a scenario's topic references, silently
// skipping ids that no longer resolve.
func (s *Service) RelatedTopics(ctx context.Context, sc *models.Scenario) []models.Topic {
	topics := make([]models.Topic, 0, len(sc.RelatedTopicIDs))
	for _, id := range sc.RelatedTopicIDs {
		topic, err := s.topics.Get(ctx, id)
		if err != nil {
			// Dangling references are expected after topic removal.
			continue
		}
		topics = append(topics, *topic)
	}
	return topics
}

// SaveScenario bookmarks a scenario for a user.
func (s *Service) SaveScenario(ctx context.Context, userID, scenarioID, notes string, favorite bool, overrides map[string]string) (*models.UserScenario, error) {
	if _, err := s.scenarios.Get(ctx, scenarioID); err != nil {
		return nil, err
	}

	record := models.UserScenario{
		ID:         uuid.New().String(),
		UserID:     userID,
		ScenarioID: scenarioID,
		Notes:      notes,
		Favorite:   favorite,
		Overrides:  overrides,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.userScenarios.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save user scenario: %w", err)
	}

	return &record, nil
}

// ListSavedScenarios returns a user's bookmarks.
func (s *Service) ListSavedScenarios(ctx context.Context, userID string) ([]models.UserScenario, error) {
	return s.userScenarios.ListByUser(ctx, userID)
}

// DeleteSavedScenario removes a bookmark. The underlying catalog
// scenario is never touched.
func (s *Service) DeleteSavedScenario(ctx context.Context, userID, id string) error {
	return s.userScenarios.Delete(ctx, userID, id)
}

func validateDescriptor(d models.ScenarioDescriptor) error {
	if d.Change.Type == "" {
		return &scenario.InvalidInputError{Field: "descriptor.change.type", Message: "scenario type is required"}
	}
	if d.Change.Value <= 0 {
		return &scenario.InvalidInputError{Field: "descriptor.change.value", Message: "value must be positive"}
	}
	if _, err := scenario.ParseDirection(string(d.Change.Direction)); err != nil {
		return &scenario.InvalidInputError{Field: "descriptor.change.direction", Message: "must be 'increase' or 'decrease'"}
	}
	if d.Change.Magnitude != scenario.MagnitudeForValue(d.Change.Value) {
		return &scenario.InvalidInputError{Field: "descriptor.change.magnitude", Message: "magnitude must match the value-derived tier"}
	}
	switch d.Timeframe {
	case models.TimeframeImmediate, models.TimeframeShortTerm, models.TimeframeMediumTerm, models.TimeframeLongTerm:
	default:
		return &scenario.InvalidInputError{Field: "descriptor.timeframe", Message: "unrecognized timeframe"}
	}
	return nil
}
