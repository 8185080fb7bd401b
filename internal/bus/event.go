package bus

import (
	"time"

	"github.com/roadhaul/fleet-sim/internal/models"
)

// EventType identifies the kind of simulation event carried on the bus.
type EventType string

const (
	EventLiveUpdate     EventType = "live_update"
	EventRouteCompleted EventType = "route_completed"
	EventLocationUpdate EventType = "location_update"
	EventIncident       EventType = "incident"
	EventHandoff        EventType = "handoff"
	EventSnapshotSaved  EventType = "snapshot_saved"
)

// LiveUpdate is the per-tick progress payload for a driving vehicle.
type LiveUpdate struct {
	VehicleID  string        `json:"vehicle_id"`
	DeltaKm    float64       `json:"delta_km"`
	DeltaCond  float64       `json:"delta_cond"`
	DeltaFuel  float64       `json:"delta_fuel"`
	Condition  float64       `json:"condition"`
	Fuel       float64       `json:"fuel"`
	OdometerKm float64       `json:"odometer_km"`
	SpeedKmh   float64       `json:"speed_kmh"`
	Route      *models.Route `json:"route,omitempty"`
}

// Handoff reports a driver swap forced by the hours-of-service cap.
type Handoff struct {
	VehicleID  string `json:"vehicle_id"`
	FromDriver string `json:"from_driver"`
	ToDriver   string `json:"to_driver"`
}

// Event is a single simulation notification. Exactly one payload field is
// populated, matching Type.
type Event struct {
	Type      EventType        `json:"type"`
	VehicleID string           `json:"vehicle_id,omitempty"`
	Time      time.Time        `json:"time"`
	Live      *LiveUpdate      `json:"live,omitempty"`
	Route     *models.Route    `json:"route,omitempty"`
	Location  string           `json:"location,omitempty"`
	Incident  *models.Incident `json:"incident,omitempty"`
	Handoff   *Handoff         `json:"handoff,omitempty"`
}
