package health

import (
	"context"
	"errors"
	"fmt"
)

// TeamCounter is satisfied by the team catalog.
type TeamCounter interface {
	Count() int
}

// SnapshotCounter is satisfied by every snapshot store.
type SnapshotCounter interface {
	Count(ctx context.Context) (int, error)
}

// TeamsCheck fails until the catalog holds at least one team.
func TeamsCheck(catalog TeamCounter) CheckFunc {
	return func(ctx context.Context) error {
		if catalog.Count() == 0 {
			return errors.New("no team data loaded")
		}
		return nil
	}
}

// SnapshotsCheck fails when the snapshot store cannot be queried.
func SnapshotsCheck(store SnapshotCounter) CheckFunc {
	return func(ctx context.Context) error {
		if _, err := store.Count(ctx); err != nil {
			return fmt.Errorf("snapshot store unavailable: %w", err)
		}
		return nil
	}
}
