package engine

import (
	"math"

	"github.com/roadhaul/fleet-sim/internal/models"
)

// Per-group cost multipliers. The same tiers scale how much condition a
// service restores.
var groupMultipliers = map[int]float64{1: 1.0, 2: 1.6, 3: 2.0}

// MaintenanceEstimator prices a service visit and its downtime from the
// vehicle's price, maintenance group and durability. The duration spread
// within a group is cosmetic variance, kept behind the injected source.
type MaintenanceEstimator struct {
	rng Rand
}

// NewMaintenanceEstimator creates an estimator with the given random source.
func NewMaintenanceEstimator(rng Rand) *MaintenanceEstimator {
	return &MaintenanceEstimator{rng: rng}
}

// Estimate returns the cost, duration and condition restoration of servicing
// a vehicle with the given specs.
func (m *MaintenanceEstimator) Estimate(specs models.VehicleSpecs) models.MaintenanceEstimate {
	mult, ok := groupMultipliers[specs.MaintenanceGroup]
	if !ok {
		mult = 1.0
	}

	var days int
	switch specs.MaintenanceGroup {
	case 3:
		days = 2 + m.rng.Intn(3) // 2-4
	case 2:
		days = 1 + m.rng.Intn(2) // 1-2
	default:
		days = 1
	}

	restore := math.Round(20 * mult * float64(specs.Durability) / 6)
	if restore > 100 {
		restore = 100
	}

	return models.MaintenanceEstimate{
		VehicleID:    specs.ID,
		Cost:         specs.Price * 0.02 * mult,
		DurationDays: days,
		RestorePct:   restore,
	}
}

// PerformMaintenance estimates a service for the vehicle and applies its
// condition restoration. It fails while the vehicle is driving.
func (e *Engine) PerformMaintenance(vehicleID string) (models.MaintenanceEstimate, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	v, ok := e.vehicles[vehicleID]
	if !ok {
		return models.MaintenanceEstimate{}, ErrVehicleNotFound
	}
	if v.Driving {
		return models.MaintenanceEstimate{}, ErrVehicleDriving
	}

	est := e.maintenance.Estimate(v.Specs)
	v.Condition = math.Min(100, v.Condition+est.RestorePct)
	return est, nil
}

// EstimateMaintenance prices a service for the vehicle without touching its
// condition.
func (e *Engine) EstimateMaintenance(vehicleID string) (models.MaintenanceEstimate, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	v, ok := e.vehicles[vehicleID]
	if !ok {
		return models.MaintenanceEstimate{}, ErrVehicleNotFound
	}
	return e.maintenance.Estimate(v.Specs), nil
}
