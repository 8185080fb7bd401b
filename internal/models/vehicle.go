package models

import "time"

// VehicleClass is the coarse weight class of a fleet vehicle.
type VehicleClass string

const (
	ClassLight  VehicleClass = "light"
	ClassMedium VehicleClass = "medium"
	ClassHeavy  VehicleClass = "heavy"
)

// ReliabilityGrade is the vehicle quality tier. Grade A is the best and
// carries the lowest incident risk, grade C the highest.
type ReliabilityGrade string

const (
	GradeA ReliabilityGrade = "A"
	GradeB ReliabilityGrade = "B"
	GradeC ReliabilityGrade = "C"
)

// VehicleSpecs holds the immutable registration data of a vehicle, supplied
// once by the owning application. Only maintenance touches it afterwards.
type VehicleSpecs struct {
	ID               string           `bson:"id" json:"id"`
	Class            VehicleClass     `bson:"class" json:"class"`
	Price            float64          `bson:"price" json:"price"` // purchase price in USD
	ConsumptionL100  float64          `bson:"consumption_l100" json:"consumption_l100"` // liters per 100 km
	MaxFuel          float64          `bson:"max_fuel" json:"max_fuel"` // tank capacity in liters
	Reliability      ReliabilityGrade `bson:"reliability" json:"reliability"`
	Durability       int              `bson:"durability" json:"durability"` // 1-10, higher is tougher
	MaintenanceGroup int              `bson:"maintenance_group" json:"maintenance_group"` // 1-3 cost/duration tier
	CruiseSpeedKmh   float64          `bson:"cruise_speed_kmh" json:"cruise_speed_kmh"`
}

// VehicleState is the runtime state of a vehicle. It is owned exclusively by
// the engine and mutated only by clock ticks and explicit start/stop calls.
type VehicleState struct {
	Specs      VehicleSpecs `bson:"specs" json:"specs"`
	Fuel       float64      `bson:"fuel" json:"fuel"` // liters, clamped to [0, MaxFuel]
	Condition  float64      `bson:"condition" json:"condition"` // 0-100 wear gauge
	OdometerKm float64      `bson:"odometer_km" json:"odometer_km"`
	SpeedKmh   float64      `bson:"speed_kmh" json:"speed_kmh"`
	Driving    bool         `bson:"driving" json:"driving"`
	Route      *Route       `bson:"route,omitempty" json:"route,omitempty"`
	DriverID   string       `bson:"driver_id,omitempty" json:"driver_id,omitempty"`
	CoDriverID string       `bson:"co_driver_id,omitempty" json:"co_driver_id,omitempty"`
	LastUpdate time.Time    `bson:"last_update" json:"last_update"`
}
