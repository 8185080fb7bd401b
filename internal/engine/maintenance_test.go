package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateCostPerGroup(t *testing.T) {
	est := NewMaintenanceEstimator(&fixedRand{n: 0})

	cases := []struct {
		group    int
		wantCost float64
	}{
		{1, 150000 * 0.02 * 1.0},
		{2, 150000 * 0.02 * 1.6},
		{3, 150000 * 0.02 * 2.0},
	}
	for _, tc := range cases {
		specs := testSpecs("v1")
		specs.MaintenanceGroup = tc.group
		got := est.Estimate(specs)
		assert.InDelta(t, tc.wantCost, got.Cost, 1e-9, "group %d", tc.group)
	}
}

func TestEstimateDurationRanges(t *testing.T) {
	for group, want := range map[int][2]int{1: {1, 1}, 2: {1, 2}, 3: {2, 4}} {
		specs := testSpecs("v1")
		specs.MaintenanceGroup = group

		lo := NewMaintenanceEstimator(&fixedRand{n: 0}).Estimate(specs)
		hi := NewMaintenanceEstimator(&fixedRand{n: 100}).Estimate(specs)

		assert.Equal(t, want[0], lo.DurationDays, "group %d low", group)
		assert.Equal(t, want[1], hi.DurationDays, "group %d high", group)
	}
}

func TestEstimateRestoration(t *testing.T) {
	est := NewMaintenanceEstimator(&fixedRand{n: 0})

	specs := testSpecs("v1")
	specs.MaintenanceGroup = 2
	specs.Durability = 6
	// 20 * 1.6 * 6/6 = 32
	assert.InDelta(t, 32, est.Estimate(specs).RestorePct, 1e-9)

	specs.MaintenanceGroup = 3
	specs.Durability = 10
	// 20 * 2.0 * 10/6 = 66.7, rounded
	assert.InDelta(t, 67, est.Estimate(specs).RestorePct, 1e-9)
}

func TestPerformMaintenanceRestoresCondition(t *testing.T) {
	e := newTestEngine(&fixedRand{f: 0.999, n: 0})
	require.NoError(t, e.RegisterVehicle(testSpecs("v1"), t0))

	// Wear the vehicle down first.
	require.NoError(t, e.RegisterDriver("d1", true))
	require.NoError(t, e.StartDriving("v1", "d1", "", "Hamburg", "Munich", 10000, t0))
	e.Tick(t0.Add(5 * time.Hour)) // 400 km, condition drops by 4

	require.NoError(t, e.StopDriving("v1"))

	before, err := e.VehicleState("v1")
	require.NoError(t, err)
	require.Less(t, before.Condition, 100.0)

	est, err := e.PerformMaintenance("v1")
	require.NoError(t, err)
	assert.Greater(t, est.RestorePct, 0.0)

	after, err := e.VehicleState("v1")
	require.NoError(t, err)
	assert.Greater(t, after.Condition, before.Condition)
	assert.LessOrEqual(t, after.Condition, 100.0)
}

func TestPerformMaintenanceConditionCappedAt100(t *testing.T) {
	e := newTestEngine(nil)
	require.NoError(t, e.RegisterVehicle(testSpecs("v1"), t0))

	est, err := e.PerformMaintenance("v1")
	require.NoError(t, err)
	assert.Greater(t, est.RestorePct, 0.0)

	state, err := e.VehicleState("v1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, state.Condition)
}

func TestPerformMaintenanceRejectedWhileDriving(t *testing.T) {
	e := newTestEngine(nil)
	require.NoError(t, e.RegisterVehicle(testSpecs("v1"), t0))
	require.NoError(t, e.RegisterDriver("d1", true))
	require.NoError(t, e.StartDriving("v1", "d1", "", "Hamburg", "Munich", 780, t0))

	_, err := e.PerformMaintenance("v1")
	assert.ErrorIs(t, err, ErrVehicleDriving)
}

func TestMaintenanceUnknownVehicle(t *testing.T) {
	e := newTestEngine(nil)
	_, err := e.EstimateMaintenance("ghost")
	assert.ErrorIs(t, err, ErrVehicleNotFound)
	_, err = e.PerformMaintenance("ghost")
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestEstimateUnknownGroupFallsBack(t *testing.T) {
	est := NewMaintenanceEstimator(&fixedRand{n: 0})
	specs := testSpecs("v1")
	specs.MaintenanceGroup = 7
	got := est.Estimate(specs)
	assert.InDelta(t, specs.Price*0.02, got.Cost, 1e-9)
	assert.Equal(t, 1, got.DurationDays)
}
