package engine

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/roadhaul/fleet-sim/internal/bus"
	"github.com/roadhaul/fleet-sim/internal/models"
)

// Tick advances every driving vehicle by the wall-clock time elapsed since
// its last update. Vehicles do not interact, so processing order is
// irrelevant. LastUpdate moves forward unconditionally, even for vehicles
// that stop mid-tick, so no elapsed time is ever counted twice.
func (e *Engine) Tick(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.lastDailyReset.IsZero() {
		e.lastDailyReset = now
	} else if now.Sub(e.lastDailyReset) >= e.params.DailyResetEvery {
		e.dailyResetLocked(now)
	}

	for _, v := range e.vehicles {
		elapsed := now.Sub(v.LastUpdate)
		v.LastUpdate = now

		if !v.Driving || v.Route == nil || elapsed <= 0 {
			continue
		}

		deltaKm := v.SpeedKmh * elapsed.Hours()
		update, completed := e.advanceLocked(v, deltaKm)

		driverID := v.DriverID
		overHours := e.recordDriving(driverID, elapsed.Hours())

		p, incident := e.incidents.Evaluate(v, e.drivers[driverID], deltaKm, now)

		e.events.Publish(bus.Event{
			Type:      bus.EventLiveUpdate,
			VehicleID: v.Specs.ID,
			Time:      now,
			Live:      &update,
		})

		if incident != nil {
			log.WithFields(log.Fields{
				"vehicle_id": incident.VehicleID,
				"type":       incident.Type,
				"severity":   incident.Severity,
				"probability": p,
			}).Warn("Incident triggered")
			e.events.Publish(bus.Event{
				Type:      bus.EventIncident,
				VehicleID: v.Specs.ID,
				Time:      now,
				Incident:  incident,
			})
		}

		if completed {
			e.completeRouteLocked(v, now)
			continue
		}

		if overHours {
			if handoff := e.handoffOrStopLocked(v, now); handoff != nil {
				e.events.Publish(bus.Event{
					Type:      bus.EventHandoff,
					VehicleID: v.Specs.ID,
					Time:      now,
					Handoff:   handoff,
				})
			}
		}
	}
}

// completeRouteLocked finishes the active route: the vehicle returns to idle,
// drivers are released and completion events go out. Caller holds the lock.
func (e *Engine) completeRouteLocked(v *models.VehicleState, now time.Time) {
	summary := *v.Route
	destination := summary.Destination

	e.stopLocked(v)

	log.WithFields(log.Fields{
		"vehicle_id":  v.Specs.ID,
		"origin":      summary.Origin,
		"destination": destination,
		"distance_km": summary.DistanceKm,
	}).Info("Route completed")

	e.events.Publish(bus.Event{
		Type:      bus.EventRouteCompleted,
		VehicleID: v.Specs.ID,
		Time:      now,
		Route:     &summary,
	})
	e.events.Publish(bus.Event{
		Type:      bus.EventLocationUpdate,
		VehicleID: v.Specs.ID,
		Time:      now,
		Location:  destination,
	})
}
