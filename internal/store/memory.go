package store

import (
	"context"
	"sync"

	"github.com/roadhaul/fleet-sim/internal/models"
)

// MemoryStore keeps the latest snapshot in memory. It backs tests and runs
// without external services; state is lost on process exit.
type MemoryStore struct {
	mu    sync.Mutex
	snap  models.Snapshot
	saved bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save stores the snapshot, replacing any previous one.
func (s *MemoryStore) Save(_ context.Context, snap models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	s.saved = true
	return nil
}

// Load returns the last saved snapshot or ErrNoSnapshot.
func (s *MemoryStore) Load(_ context.Context) (models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved {
		return models.Snapshot{}, ErrNoSnapshot
	}
	return s.snap, nil
}
