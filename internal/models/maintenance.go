package models

// MaintenanceEstimate is the projected cost and downtime of servicing a
// vehicle, together with the condition restored by the service.
type MaintenanceEstimate struct {
	VehicleID    string  `bson:"vehicle_id" json:"vehicle_id"`
	Cost         float64 `bson:"cost" json:"cost"` // in USD
	DurationDays int     `bson:"duration_days" json:"duration_days"`
	RestorePct   float64 `bson:"restore_pct" json:"restore_pct"` // condition points added
}
