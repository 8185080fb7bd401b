package engine

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// Hours-of-service enforcement. A driver may accumulate at most
// Params.MaxDrivingHours of driving inside a 24h window, must rest at least
// Params.MinRest before resuming, and the whole fleet's counters reset
// together once per window.

// RequestRest puts a driver to rest. It fails if the driver is already
// resting, is behind the wheel of a driving vehicle, or completed a rest less
// than the minimum rest duration ago.
func (e *Engine) RequestRest(driverID string, now time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, ok := e.drivers[driverID]
	if !ok {
		return ErrDriverNotFound
	}
	if d.Resting {
		return ErrDriverResting
	}
	if d.VehicleID != "" {
		if v, ok := e.vehicles[d.VehicleID]; ok && v.Driving && v.DriverID == d.ID {
			return ErrDriverAssigned
		}
	}
	if !d.RestEnd.IsZero() && now.Sub(d.RestEnd) < e.params.MinRest {
		return ErrRestTooSoon
	}

	d.Resting = true
	d.RestStart = now
	return nil
}

// EndRest wakes a resting driver. It fails if the rest has not lasted the
// minimum duration; a completed rest resets the driver's hour counter.
func (e *Engine) EndRest(driverID string, now time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, ok := e.drivers[driverID]
	if !ok {
		return ErrDriverNotFound
	}
	if !d.Resting {
		return ErrNotResting
	}
	if now.Sub(d.RestStart) < e.params.MinRest {
		return ErrRestTooShort
	}

	d.Resting = false
	d.RestEnd = now
	d.HoursDriven = 0
	return nil
}

// recordDriving accumulates hours for the vehicle's active driver and reports
// whether the hours-of-service cap was reached. Caller holds the lock.
func (e *Engine) recordDriving(driverID string, hours float64) bool {
	d, ok := e.drivers[driverID]
	if !ok {
		return false
	}
	d.HoursDriven += hours
	return d.HoursDriven >= e.params.MaxDrivingHours
}

// dailyResetLocked clears every driver's hour counter and resting flag. This
// is a global reset keyed off the engine-wide window, not a per-driver
// rolling one. Caller holds the lock.
func (e *Engine) dailyResetLocked(now time.Time) {
	for _, d := range e.drivers {
		d.HoursDriven = 0
		if d.Resting {
			d.Resting = false
			d.RestEnd = now
		}
	}
	e.lastDailyReset = now
	log.WithField("drivers", len(e.drivers)).Debug("Daily hours-of-service reset")
}

// fitToDrive reports whether a driver can take the wheel right now. Caller
// holds the lock.
func (e *Engine) fitToDrive(driverID string) error {
	d, ok := e.drivers[driverID]
	if !ok {
		return ErrDriverNotFound
	}
	if d.Resting {
		return ErrDriverResting
	}
	if d.HoursDriven >= e.params.MaxDrivingHours {
		return ErrDriverOverHours
	}
	return nil
}
