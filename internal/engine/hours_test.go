package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestAndEndRest(t *testing.T) {
	e := newTestEngine(nil)
	require.NoError(t, e.RegisterDriver("d1", true))

	require.NoError(t, e.RequestRest("d1", t0))

	d, err := e.DriverState("d1")
	require.NoError(t, err)
	assert.True(t, d.Resting)
	assert.Equal(t, t0, d.RestStart)

	// Too short to count.
	assert.ErrorIs(t, e.EndRest("d1", t0.Add(30*time.Minute)), ErrRestTooShort)

	// A full hour resets the counter.
	require.NoError(t, e.EndRest("d1", t0.Add(time.Hour)))
	d, err = e.DriverState("d1")
	require.NoError(t, err)
	assert.False(t, d.Resting)
	assert.Equal(t, 0.0, d.HoursDriven)
}

func TestRequestRestTooSoonAfterLast(t *testing.T) {
	e := newTestEngine(nil)
	require.NoError(t, e.RegisterDriver("d1", true))

	require.NoError(t, e.RequestRest("d1", t0))
	require.NoError(t, e.EndRest("d1", t0.Add(time.Hour)))

	assert.ErrorIs(t, e.RequestRest("d1", t0.Add(90*time.Minute)), ErrRestTooSoon)
	assert.NoError(t, e.RequestRest("d1", t0.Add(3*time.Hour)))
}

func TestRestStateErrors(t *testing.T) {
	e := newTestEngine(nil)
	require.NoError(t, e.RegisterDriver("d1", true))

	assert.ErrorIs(t, e.EndRest("d1", t0), ErrNotResting)
	assert.ErrorIs(t, e.RequestRest("ghost", t0), ErrDriverNotFound)
	assert.ErrorIs(t, e.EndRest("ghost", t0), ErrDriverNotFound)

	require.NoError(t, e.RequestRest("d1", t0))
	assert.ErrorIs(t, e.RequestRest("d1", t0.Add(time.Minute)), ErrDriverResting)
}

func TestActiveDriverCannotRestMidRoute(t *testing.T) {
	e := newTestEngine(nil)
	require.NoError(t, e.RegisterVehicle(testSpecs("v1"), t0))
	require.NoError(t, e.RegisterDriver("d1", true))
	require.NoError(t, e.StartDriving("v1", "d1", "", "Hamburg", "Munich", 780, t0))

	assert.ErrorIs(t, e.RequestRest("d1", t0.Add(time.Hour)), ErrDriverAssigned)

	// The co-driver is just riding along and may rest.
	require.NoError(t, e.StopDriving("v1"))
	require.NoError(t, e.RegisterDriver("d2", true))
	require.NoError(t, e.StartDriving("v1", "d1", "d2", "Hamburg", "Munich", 780, t0))
	assert.NoError(t, e.RequestRest("d2", t0.Add(time.Hour)))
}

func TestHoursCapForcesRestBeforeFurtherDriving(t *testing.T) {
	e := newTestEngine(nil)
	require.NoError(t, e.RegisterVehicle(testSpecs("v1"), t0))
	require.NoError(t, e.RegisterDriver("d1", true))
	require.NoError(t, e.StartDriving("v1", "d1", "", "Hamburg", "Vladivostok", 10000, t0))

	// Drive up to 5.9 hours, then a 0.2h tick pushes past the 6h cap.
	e.Tick(t0.Add(time.Duration(5.9 * float64(time.Hour))))

	d, err := e.DriverState("d1")
	require.NoError(t, err)
	assert.InDelta(t, 5.9, d.HoursDriven, 1e-6)
	assert.False(t, d.Resting)

	e.Tick(t0.Add(time.Duration(6.1 * float64(time.Hour))))

	d, err = e.DriverState("d1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, d.HoursDriven, 6.0)
	assert.True(t, d.Resting, "driver must be forced into rest at the cap")

	v, err := e.VehicleState("v1")
	require.NoError(t, err)
	assert.False(t, v.Driving, "no co-driver, so the route stops")

	// No further driving hours accumulate while rest is pending.
	assert.ErrorIs(t,
		e.StartDriving("v1", "d1", "", "Hamburg", "Munich", 780, t0.Add(7*time.Hour)),
		ErrDriverResting)
}

func TestHoursCapWithCoDriverHandsOff(t *testing.T) {
	e := newTestEngine(nil)
	require.NoError(t, e.RegisterVehicle(testSpecs("v1"), t0))
	require.NoError(t, e.RegisterDriver("d1", true))
	require.NoError(t, e.RegisterDriver("d2", true))
	require.NoError(t, e.StartDriving("v1", "d1", "d2", "Hamburg", "Vladivostok", 10000, t0))

	sub := e.Events().Subscribe(64)
	e.Tick(t0.Add(time.Duration(6.5 * float64(time.Hour))))

	v, err := e.VehicleState("v1")
	require.NoError(t, err)
	assert.True(t, v.Driving, "handoff keeps the route alive")
	assert.Equal(t, "d2", v.DriverID)
	assert.Equal(t, "d1", v.CoDriverID)

	d1, err := e.DriverState("d1")
	require.NoError(t, err)
	assert.True(t, d1.Resting)

	var sawHandoff bool
	for _, ev := range drain(sub) {
		if ev.Handoff != nil {
			sawHandoff = true
			assert.Equal(t, "d1", ev.Handoff.FromDriver)
			assert.Equal(t, "d2", ev.Handoff.ToDriver)
		}
	}
	assert.True(t, sawHandoff)
}

func TestDailyResetClearsAllDrivers(t *testing.T) {
	e := newTestEngine(nil)
	require.NoError(t, e.RegisterDriver("d1", true))
	require.NoError(t, e.RegisterDriver("d2", true))

	e.Tick(t0) // establishes the reset window

	require.NoError(t, e.RequestRest("d1", t0))

	e.Tick(t0.Add(25 * time.Hour))

	for _, id := range []string{"d1", "d2"} {
		d, err := e.DriverState(id)
		require.NoError(t, err)
		assert.False(t, d.Resting, id)
		assert.Equal(t, 0.0, d.HoursDriven, id)
	}
}
