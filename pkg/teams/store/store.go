// Package store keeps snapshots of successfully loaded team tables so the
// dashboard can fall back to the last good data when its source fails.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courtmap/dashboard/pkg/dataset"
)

// ErrNoSnapshot is returned by Latest when nothing has been saved.
var ErrNoSnapshot = errors.New("no snapshot available")

// Snapshot is one successful load of the team table.
type Snapshot struct {
	ID       string
	Source   string
	LoadedAt time.Time
	Columns  []string
	Records  dataset.Dataset
}

// Store persists snapshots.
type Store interface {
	// Save persists snap. Implementations assign an ID when it is empty.
	Save(ctx context.Context, snap *Snapshot) error
	// Latest returns the most recently loaded snapshot or ErrNoSnapshot.
	Latest(ctx context.Context) (*Snapshot, error)
	// Count returns the number of retained snapshots.
	Count(ctx context.Context) (int, error)
	Close() error
}

// StorageError represents an error from a snapshot backend.
type StorageError struct {
	Backend   string // Storage backend type ("sqlite", "memory")
	Operation string // Operation that failed ("save", "latest", etc.)
	Cause     error  // Underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}

func cloneSnapshot(s *Snapshot) *Snapshot {
	out := *s
	out.Columns = append([]string(nil), s.Columns...)
	out.Records = make(dataset.Dataset, len(s.Records))
	for i, r := range s.Records {
		out.Records[i] = r.Clone()
	}
	return &out
}
