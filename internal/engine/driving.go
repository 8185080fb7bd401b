package engine

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/roadhaul/fleet-sim/internal/bus"
	"github.com/roadhaul/fleet-sim/internal/models"
)

// StartDriving assigns a route and driver(s) to an idle vehicle and starts
// it. coDriverID may be empty; with a co-driver aboard the vehicle can hand
// the wheel over when the primary hits the hours-of-service cap instead of
// stopping. Drivers are bound exclusively: a driver cannot serve two vehicles
// at once.
func (e *Engine) StartDriving(vehicleID, driverID, coDriverID, origin, destination string, distanceKm float64, now time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	v, ok := e.vehicles[vehicleID]
	if !ok {
		return ErrVehicleNotFound
	}
	if v.Driving {
		return ErrVehicleDriving
	}
	if coDriverID != "" && coDriverID == driverID {
		return ErrSameDriver
	}

	if err := e.fitToDrive(driverID); err != nil {
		return err
	}
	if d := e.drivers[driverID]; d.VehicleID != "" && d.VehicleID != vehicleID {
		return ErrDriverAssigned
	}
	if coDriverID != "" {
		if err := e.fitToDrive(coDriverID); err != nil {
			return err
		}
		if d := e.drivers[coDriverID]; d.VehicleID != "" && d.VehicleID != vehicleID {
			return ErrDriverAssigned
		}
	}

	v.Driving = true
	v.SpeedKmh = v.Specs.CruiseSpeedKmh
	v.DriverID = driverID
	v.CoDriverID = coDriverID
	v.Route = &models.Route{
		Origin:      origin,
		Destination: destination,
		DistanceKm:  distanceKm,
		StartedAt:   now,
	}
	v.LastUpdate = now

	e.drivers[driverID].VehicleID = vehicleID
	if coDriverID != "" {
		e.drivers[coDriverID].VehicleID = vehicleID
	}

	log.WithFields(log.Fields{
		"vehicle_id":  vehicleID,
		"driver_id":   driverID,
		"origin":      origin,
		"destination": destination,
		"distance_km": distanceKm,
	}).Info("Route started")
	return nil
}

// StopDriving forces the vehicle back to idle, clearing its route and speed
// and releasing its drivers. Stopping an idle vehicle is a no-op.
func (e *Engine) StopDriving(vehicleID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	v, ok := e.vehicles[vehicleID]
	if !ok {
		return ErrVehicleNotFound
	}
	e.stopLocked(v)
	return nil
}

// stopLocked clears route and driver bindings. Caller holds the lock.
func (e *Engine) stopLocked(v *models.VehicleState) {
	if !v.Driving && v.Route == nil {
		return
	}
	v.Driving = false
	v.SpeedKmh = 0
	v.Route = nil
	e.releaseDriversLocked(v)
}

func (e *Engine) releaseDriversLocked(v *models.VehicleState) {
	if d, ok := e.drivers[v.DriverID]; ok && d.VehicleID == v.Specs.ID {
		d.VehicleID = ""
	}
	if d, ok := e.drivers[v.CoDriverID]; ok && d.VehicleID == v.Specs.ID {
		d.VehicleID = ""
	}
	v.DriverID = ""
	v.CoDriverID = ""
}

// advanceLocked moves a driving vehicle forward by deltaKm, decaying
// condition and burning fuel, and completes the route when its distance is
// covered. It returns the live-update payload and whether the route finished.
// Caller holds the lock.
func (e *Engine) advanceLocked(v *models.VehicleState, deltaKm float64) (bus.LiveUpdate, bool) {
	condBefore := v.Condition
	fuelBefore := v.Fuel

	v.OdometerKm += deltaKm
	v.Condition = clamp(v.Condition-deltaKm*e.params.DegradationPerKm, 0, 100)
	v.Fuel = clamp(v.Fuel-deltaKm/100*v.Specs.ConsumptionL100, 0, v.Specs.MaxFuel)
	v.Route.AccumulatedKm += deltaKm

	update := bus.LiveUpdate{
		VehicleID:  v.Specs.ID,
		DeltaKm:    deltaKm,
		DeltaCond:  v.Condition - condBefore,
		DeltaFuel:  v.Fuel - fuelBefore,
		Condition:  v.Condition,
		Fuel:       v.Fuel,
		OdometerKm: v.OdometerKm,
		SpeedKmh:   v.SpeedKmh,
	}
	rc := *v.Route
	update.Route = &rc

	// Empty fuel does not stall the route here; consumers watch DeltaFuel
	// and decide.
	completed := v.Route.AccumulatedKm >= v.Route.DistanceKm
	return update, completed
}

// handoffOrStopLocked reacts to the primary driver hitting the
// hours-of-service cap: a fit co-driver takes the wheel and the spent driver
// starts a rest in the cab; without one the route is force-stopped and the
// driver rests. Caller holds the lock.
func (e *Engine) handoffOrStopLocked(v *models.VehicleState, now time.Time) *bus.Handoff {
	spent := v.DriverID

	if v.CoDriverID != "" {
		if err := e.fitToDrive(v.CoDriverID); err == nil {
			v.DriverID, v.CoDriverID = v.CoDriverID, spent
			if d, ok := e.drivers[spent]; ok {
				d.Resting = true
				d.RestStart = now
			}
			log.WithFields(log.Fields{
				"vehicle_id": v.Specs.ID,
				"from":       spent,
				"to":         v.DriverID,
			}).Info("Driver handoff forced by hours of service")
			return &bus.Handoff{VehicleID: v.Specs.ID, FromDriver: spent, ToDriver: v.DriverID}
		}
	}

	e.stopLocked(v)
	if d, ok := e.drivers[spent]; ok {
		d.Resting = true
		d.RestStart = now
	}
	log.WithFields(log.Fields{
		"vehicle_id": v.Specs.ID,
		"driver_id":  spent,
	}).Info("Route stopped, driver over hours with no co-driver")
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
