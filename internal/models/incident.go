package models

import "time"

// IncidentType classifies a breakdown event.
type IncidentType string

const (
	IncidentMinor     IncidentType = "minor"
	IncidentBreakdown IncidentType = "breakdown"
	IncidentTire      IncidentType = "tire"
	IncidentEngine    IncidentType = "engine"
	IncidentBrake     IncidentType = "brake"
)

// Incident is an ephemeral breakdown record. The engine emits it and forgets
// it; persistence is up to the consumer.
type Incident struct {
	ID         string       `bson:"id" json:"id"`
	VehicleID  string       `bson:"vehicle_id" json:"vehicle_id"`
	Type       IncidentType `bson:"type" json:"type"`
	Severity   int          `bson:"severity" json:"severity"` // 10-100
	OdometerKm float64      `bson:"odometer_km" json:"odometer_km"`
	Timestamp  time.Time    `bson:"timestamp" json:"timestamp"`
	Cause      string       `bson:"cause" json:"cause"`
}
