package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadhaul/fleet-sim/internal/models"
)

func sampleSnapshot() models.Snapshot {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return models.Snapshot{
		Vehicles: map[string]models.VehicleState{
			"v1": {
				Specs: models.VehicleSpecs{
					ID:               "v1",
					Class:            models.ClassHeavy,
					Price:            150000,
					ConsumptionL100:  30,
					MaxFuel:          400,
					Reliability:      models.GradeB,
					Durability:       5,
					MaintenanceGroup: 2,
					CruiseSpeedKmh:   80,
				},
				Fuel:       376,
				Condition:  99.2,
				OdometerKm: 80,
				SpeedKmh:   80,
				Driving:    true,
				Route: &models.Route{
					Origin:        "Hamburg",
					Destination:   "Munich",
					DistanceKm:    780,
					AccumulatedKm: 80,
					StartedAt:     now.Add(-time.Hour),
				},
				DriverID:   "d1",
				LastUpdate: now,
			},
		},
		Drivers: map[string]models.DriverState{
			"d1": {ID: "d1", Fit: true, HoursDriven: 1, VehicleID: "v1"},
		},
		LastDailyReset: now.Add(-2 * time.Hour),
		SavedAt:        now,
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSnapshot)

	snap := sampleSnapshot()
	require.NoError(t, s.Save(ctx, snap))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}
