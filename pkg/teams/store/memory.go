package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps snapshots in process memory.
type MemoryStore struct {
	snapshots []*Snapshot
	keep      int
	mu        sync.RWMutex
}

// NewMemoryStore creates a store retaining the newest keep snapshots.
// keep <= 0 retains a single snapshot.
func NewMemoryStore(keep int) *MemoryStore {
	if keep <= 0 {
		keep = 1
	}
	return &MemoryStore{keep: keep}
}

// Save stores a copy of snap.
func (s *MemoryStore) Save(ctx context.Context, snap *Snapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots = append(s.snapshots, cloneSnapshot(snap))
	if over := len(s.snapshots) - s.keep; over > 0 {
		s.snapshots = append([]*Snapshot(nil), s.snapshots[over:]...)
	}
	return nil
}

// Latest returns a copy of the newest snapshot.
func (s *MemoryStore) Latest(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.snapshots) == 0 {
		return nil, ErrNoSnapshot
	}
	return cloneSnapshot(s.snapshots[len(s.snapshots)-1]), nil
}

// Count returns the number of retained snapshots.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshots), nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
