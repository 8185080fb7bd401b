package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadhaul/fleet-sim/internal/models"
	"github.com/roadhaul/fleet-sim/internal/store"
)

func TestClockTicksAndSnapshots(t *testing.T) {
	e := newTestEngine(nil)
	now := time.Now()
	require.NoError(t, e.RegisterVehicle(testSpecs("v1"), now))
	require.NoError(t, e.RegisterDriver("d1", true))
	require.NoError(t, e.StartDriving("v1", "d1", "", "A", "B", 10000, now))

	st := store.NewMemoryStore()
	clock := NewClock(e, st, 5*time.Millisecond, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	done := make(chan struct{})
	go func() {
		clock.Run(ctx)
		close(done)
	}()
	<-done

	v, err := e.VehicleState("v1")
	require.NoError(t, err)
	assert.Greater(t, v.OdometerKm, 0.0, "clock must have advanced the vehicle")

	snap, err := st.Load(context.Background())
	require.NoError(t, err, "a snapshot must have been written")
	assert.Contains(t, snap.Vehicles, "v1")
	assert.Contains(t, snap.Drivers, "d1")
}

func TestClockSurvivesFailingStore(t *testing.T) {
	e := newTestEngine(nil)
	now := time.Now()
	require.NoError(t, e.RegisterVehicle(testSpecs("v1"), now))
	require.NoError(t, e.RegisterDriver("d1", true))
	require.NoError(t, e.StartDriving("v1", "d1", "", "A", "B", 10000, now))

	clock := NewClock(e, failingStore{}, 5*time.Millisecond, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()
	done := make(chan struct{})
	go func() {
		clock.Run(ctx)
		close(done)
	}()
	<-done

	v, err := e.VehicleState("v1")
	require.NoError(t, err)
	assert.Greater(t, v.OdometerKm, 0.0, "tick loop must keep running despite save failures")
}

func TestClockDefaultsCadences(t *testing.T) {
	c := NewClock(newTestEngine(nil), nil, 0, 0)
	assert.Equal(t, 2*time.Second, c.tickEvery)
	assert.Equal(t, 60*time.Second, c.snapshotEvery)
}

type failingStore struct{}

func (failingStore) Save(context.Context, models.Snapshot) error {
	return errors.New("disk on fire")
}

func (failingStore) Load(context.Context) (models.Snapshot, error) {
	return models.Snapshot{}, store.ErrNoSnapshot
}
