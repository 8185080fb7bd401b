package models

import "time"

// DriverState is the runtime state of a driver, owned exclusively by the
// engine. Fitness is a hint supplied by the staff subsystem; an unfit driver
// raises incident risk but is not prevented from driving.
type DriverState struct {
	ID          string    `bson:"id" json:"id"`
	Fit         bool      `bson:"fit" json:"fit"`
	HoursDriven float64   `bson:"hours_driven" json:"hours_driven"` // hours in the current 24h window
	Resting     bool      `bson:"resting" json:"resting"`
	RestStart   time.Time `bson:"rest_start,omitempty" json:"rest_start,omitempty"`
	RestEnd     time.Time `bson:"rest_end,omitempty" json:"rest_end,omitempty"` // end of the last completed rest
	VehicleID   string    `bson:"vehicle_id,omitempty" json:"vehicle_id,omitempty"` // vehicle currently assigned to, if any
}
