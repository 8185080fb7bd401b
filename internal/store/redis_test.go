package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStoreWithClient(client)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSnapshot)

	snap := sampleSnapshot()
	require.NoError(t, s.Save(ctx, snap))

	got, err := s.Load(ctx)
	require.NoError(t, err)

	require.Contains(t, got.Vehicles, "v1")
	v := got.Vehicles["v1"]
	want := snap.Vehicles["v1"]
	assert.Equal(t, want.Specs, v.Specs)
	assert.Equal(t, want.OdometerKm, v.OdometerKm)
	assert.Equal(t, want.Condition, v.Condition)
	require.NotNil(t, v.Route)
	assert.Equal(t, want.Route.AccumulatedKm, v.Route.AccumulatedKm)

	// Absolute timestamps survive the round trip, so a reload cannot drift.
	assert.True(t, want.LastUpdate.Equal(v.LastUpdate))
	assert.True(t, snap.SavedAt.Equal(got.SavedAt))
	assert.True(t, snap.LastDailyReset.Equal(got.LastDailyReset))

	assert.Equal(t, snap.Drivers["d1"].HoursDriven, got.Drivers["d1"].HoursDriven)
}

func TestRedisStoreOverwrites(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()

	first := sampleSnapshot()
	require.NoError(t, s.Save(ctx, first))

	second := sampleSnapshot()
	v := second.Vehicles["v1"]
	v.OdometerKm = 999
	second.Vehicles["v1"] = v
	require.NoError(t, s.Save(ctx, second))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 999.0, got.Vehicles["v1"].OdometerKm)
}
