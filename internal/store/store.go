package store

import (
	"context"
	"errors"

	"github.com/roadhaul/fleet-sim/internal/models"
)

// ErrNoSnapshot is returned by Load when no snapshot has been saved yet.
var ErrNoSnapshot = errors.New("no snapshot stored")

// SnapshotStore persists simulation snapshots. The clock saves through it on
// its own cadence; the daemon loads through it on startup to resume where the
// previous process left off.
type SnapshotStore interface {
	Save(ctx context.Context, snap models.Snapshot) error
	Load(ctx context.Context) (models.Snapshot, error)
}
