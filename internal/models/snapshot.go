package models

import "time"

// Snapshot is a full copy of the simulation's runtime state, sufficient to
// resume exactly where it left off after a process restart. Timestamps are
// absolute so a reload does not drift against the wall clock.
type Snapshot struct {
	Vehicles       map[string]VehicleState `bson:"vehicles" json:"vehicles"`
	Drivers        map[string]DriverState  `bson:"drivers" json:"drivers"`
	LastDailyReset time.Time               `bson:"last_daily_reset" json:"last_daily_reset"`
	SavedAt        time.Time               `bson:"saved_at" json:"saved_at"`
}
