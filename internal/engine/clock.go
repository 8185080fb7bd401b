package engine

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/roadhaul/fleet-sim/internal/bus"
	"github.com/roadhaul/fleet-sim/internal/store"
)

// Clock drives the simulation at a fixed wall-clock cadence and persists
// snapshots at a slower one. A failed save is logged and skipped; the tick
// loop never stops for a persistence problem.
type Clock struct {
	engine        *Engine
	store         store.SnapshotStore
	tickEvery     time.Duration
	snapshotEvery time.Duration
}

// NewClock creates a clock for the engine. Non-positive cadences fall back to
// the reference 2s tick and 60s snapshot intervals. st may be nil, in which
// case no snapshots are taken.
func NewClock(e *Engine, st store.SnapshotStore, tickEvery, snapshotEvery time.Duration) *Clock {
	if tickEvery <= 0 {
		tickEvery = 2 * time.Second
	}
	if snapshotEvery <= 0 {
		snapshotEvery = 60 * time.Second
	}
	return &Clock{
		engine:        e,
		store:         st,
		tickEvery:     tickEvery,
		snapshotEvery: snapshotEvery,
	}
}

// Run ticks the engine until the context is cancelled, then takes a final
// snapshot so a restart resumes cleanly.
func (c *Clock) Run(ctx context.Context) {
	ticker := time.NewTicker(c.tickEvery)
	defer ticker.Stop()

	log.WithFields(log.Fields{
		"tick_every":     c.tickEvery,
		"snapshot_every": c.snapshotEvery,
	}).Info("Simulation clock started")

	lastSnapshot := time.Now()
	for {
		select {
		case <-ctx.Done():
			c.saveSnapshot(context.Background(), time.Now())
			log.Info("Simulation clock stopped")
			return
		case now := <-ticker.C:
			c.engine.Tick(now)
			if now.Sub(lastSnapshot) >= c.snapshotEvery {
				c.saveSnapshot(ctx, now)
				lastSnapshot = now
			}
		}
	}
}

func (c *Clock) saveSnapshot(ctx context.Context, now time.Time) {
	if c.store == nil {
		return
	}
	snap := c.engine.Snapshot(now)
	if err := c.store.Save(ctx, snap); err != nil {
		log.WithError(err).Error("Failed to save snapshot, keeping previous one")
		return
	}
	c.engine.Events().Publish(bus.Event{Type: bus.EventSnapshotSaved, Time: now})
	log.WithFields(log.Fields{
		"vehicles": len(snap.Vehicles),
		"drivers":  len(snap.Drivers),
	}).Debug("Snapshot saved")
}
