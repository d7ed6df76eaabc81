package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"mealcare/internal/audit/models"
	"mealcare/pkg/domain"
	"mealcare/pkg/platform/sentinel"
)

// InMemoryStore keeps records in process for unit tests. It follows the same
// append-only rules as PostgresStore.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries []*models.Entry
	byID    map[domain.AuditRecordID]int
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byID: make(map[domain.AuditRecordID]int)}
}

func (s *InMemoryStore) Append(_ context.Context, e *models.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[e.ID]; exists {
		return fmt.Errorf("insert audit log %s: %w", e.ID, sentinel.ErrAlreadyUsed)
	}
	stored := *e
	s.byID[e.ID] = len(s.entries)
	s.entries = append(s.entries, &stored)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id domain.AuditRecordID) (*models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("find audit log %s: %w", id, sentinel.ErrNotFound)
	}
	found := *s.entries[idx]
	return &found, nil
}

// List returns matching records newest first; ties keep reverse insertion order.
func (s *InMemoryStore) List(_ context.Context, f models.Filter) ([]*models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Entry
	for i := len(s.entries) - 1; i >= 0; i-- {
		if f.Matches(s.entries[i]) {
			e := *s.entries[i]
			out = append(out, &e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit := f.EffectiveLimit(); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, id domain.AuditRecordID, _ *models.Entry) error {
	return fmt.Errorf("update audit log %s: %w", id, sentinel.ErrImmutable)
}

func (s *InMemoryStore) Delete(_ context.Context, id domain.AuditRecordID) error {
	return fmt.Errorf("delete audit log %s: %w", id, sentinel.ErrImmutable)
}
