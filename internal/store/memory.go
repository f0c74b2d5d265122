package store

import (
	"context"
	"sync"

	"github.com/seenimoa/vndrate/pkg/models"
)

// MemoryStore holds the record in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	rec    *models.CachedRate
	writes int
}

// NewMemoryStore creates a store, optionally pre-seeded with rec.
func NewMemoryStore(rec *models.CachedRate) *MemoryStore {
	s := &MemoryStore{}
	if rec != nil {
		cp := *rec
		s.rec = &cp
	}
	return s
}

// Read returns a copy of the held record, or nil if none.
func (s *MemoryStore) Read(_ context.Context) (*models.CachedRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.rec == nil {
		return nil, nil
	}
	cp := *s.rec
	return &cp, nil
}

// Write replaces the held record.
func (s *MemoryStore) Write(_ context.Context, rec models.CachedRate) error {
	s.mu.Lock()
	s.rec = &rec
	s.writes++
	s.mu.Unlock()
	return nil
}

// Writes reports how many times Write has been called.
func (s *MemoryStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
