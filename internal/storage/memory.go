// Package storage provides the compare.Store implementations: an in-memory
// store used by tests and the CLI's ephemeral mode, and a Postgres store for
// durable comparison history.
package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/advisorhq/planengine/internal/compare"
	"github.com/advisorhq/planengine/internal/domain"
)

// MemoryStore is a mutex-guarded in-memory compare.Store. State transitions
// check the record's current state under the lock, so concurrent attach or
// decide calls for the same id serialize with exactly one winner.
type MemoryStore struct {
	mu          sync.RWMutex
	plans       map[string]domain.PlanSnapshot
	comparisons map[string]*domain.Comparison
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		plans:       map[string]domain.PlanSnapshot{},
		comparisons: map[string]*domain.Comparison{},
	}
}

// SavePlan stores a plan snapshot keyed by plan id.
func (s *MemoryStore) SavePlan(_ context.Context, plan domain.PlanSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[plan.PlanID] = plan
	return nil
}

// GetPlan resolves a plan snapshot by id.
func (s *MemoryStore) GetPlan(_ context.Context, planID string) (*domain.PlanSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plan, ok := s.plans[planID]
	if !ok {
		return nil, compare.ErrNotFound
	}
	cp := plan
	return &cp, nil
}

// CreateComparison inserts a new record. The stored copy is detached from
// the caller's value.
func (s *MemoryStore) CreateComparison(_ context.Context, c *domain.Comparison) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comparisons[c.ID] = c.Clone()
	return nil
}

// GetComparison returns a detached copy of the record.
func (s *MemoryStore) GetComparison(_ context.Context, id string) (*domain.Comparison, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.comparisons[id]
	if !ok {
		return nil, compare.ErrNotFound
	}
	return c.Clone(), nil
}

// AttachAnalysis performs the CREATED -> ANALYZED transition under the lock.
func (s *MemoryStore) AttachAnalysis(_ context.Context, id string, analysis *domain.AIAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comparisons[id]
	if !ok {
		return compare.ErrNotFound
	}
	if c.State != domain.StateCreated {
		return &compare.AlreadyAnalyzedError{ID: id}
	}

	updated := c.Clone()
	updated.AIAnalysis = analysis
	updated.State = domain.StateAnalyzed
	s.comparisons[id] = updated
	return nil
}

// RecordDecision performs the ANALYZED -> DECIDED transition under the lock.
func (s *MemoryStore) RecordDecision(_ context.Context, id string, winner *domain.SelectedWinner) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comparisons[id]
	if !ok {
		return compare.ErrNotFound
	}
	switch c.State {
	case domain.StateCreated:
		return &compare.NotAnalyzedError{ID: id}
	case domain.StateDecided:
		return &compare.AlreadyDecidedError{ID: id}
	}

	updated := c.Clone()
	updated.SelectedWinner = winner
	updated.State = domain.StateDecided
	s.comparisons[id] = updated
	return nil
}

// ListByClient returns the client's comparisons, newest createdAt first.
func (s *MemoryStore) ListByClient(_ context.Context, clientID string) ([]domain.Comparison, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Comparison
	for _, c := range s.comparisons {
		if c.ClientID == clientID {
			out = append(out, *c.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
