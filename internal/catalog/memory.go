package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/finlearn/finlearn/internal/models"
)

// MemoryScenarioRepository is an in-memory ScenarioRepository used in
// tests and local development without a database. Increments happen
// under the lock, matching the atomicity the SQL implementation gets
// from a single UPDATE statement.
type MemoryScenarioRepository struct {
	mu        sync.RWMutex
	order     []string
	scenarios map[string]models.Scenario
}

// NewMemoryScenarioRepository creates an empty in-memory store.
func NewMemoryScenarioRepository() *MemoryScenarioRepository {
	return &MemoryScenarioRepository{
		scenarios: make(map[string]models.Scenario),
	}
}

func (r *MemoryScenarioRepository) List(ctx context.Context) ([]models.Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Scenario, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.scenarios[id])
	}
	return out, nil
}

func (r *MemoryScenarioRepository) Get(ctx context.Context, id string) (*models.Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.scenarios[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &s, nil
}

func (r *MemoryScenarioRepository) ListByCategory(ctx context.Context, category string) ([]models.Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Scenario
	for _, id := range r.order {
		if s := r.scenarios[id]; s.Category == category {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *MemoryScenarioRepository) ListPopular(ctx context.Context, limit int) ([]models.Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Scenario, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.scenarios[id])
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Popularity != out[j].Popularity {
			return out[i].Popularity > out[j].Popularity
		}
		return out[i].ID < out[j].ID
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryScenarioRepository) Create(ctx context.Context, s models.Scenario) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.scenarios[s.ID]; !exists {
		r.order = append(r.order, s.ID)
	}
	r.scenarios[s.ID] = s
	return nil
}

func (r *MemoryScenarioRepository) IncrementPopularity(ctx context.Context, id string) (*models.Scenario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.scenarios[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	s.Popularity++
	r.scenarios[id] = s
	return &s, nil
}

// MemoryUserScenarioRepository is an in-memory UserScenarioRepository.
type MemoryUserScenarioRepository struct {
	mu      sync.RWMutex
	records map[string]models.UserScenario
}

// NewMemoryUserScenarioRepository creates an empty in-memory store.
func NewMemoryUserScenarioRepository() *MemoryUserScenarioRepository {
	return &MemoryUserScenarioRepository{
		records: make(map[string]models.UserScenario),
	}
}

func (r *MemoryUserScenarioRepository) Save(ctx context.Context, us models.UserScenario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[us.ID] = us
	return nil
}

func (r *MemoryUserScenarioRepository) ListByUser(ctx context.Context, userID string) ([]models.UserScenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.UserScenario
	for _, us := range r.records {
		if us.UserID == userID {
			out = append(out, us)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryUserScenarioRepository) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	us, ok := r.records[id]
	if !ok || us.UserID != userID {
		return models.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

// MemoryTopicRepository is an in-memory TopicRepository.
type MemoryTopicRepository struct {
	mu     sync.RWMutex
	topics map[string]models.Topic
}

// NewMemoryTopicRepository creates an empty in-memory store.
func NewMemoryTopicRepository() *MemoryTopicRepository {
	return &MemoryTopicRepository{
		topics: make(map[string]models.Topic),
	}
}

// Put inserts or replaces a topic.
func (r *MemoryTopicRepository) Put(topic models.Topic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics[topic.ID] = topic
}

func (r *MemoryTopicRepository) Get(ctx context.Context, id string) (*models.Topic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.topics[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &t, nil
}
