package engine

import (
	"errors"
	"sync"
	"time"

	"github.com/roadhaul/fleet-sim/internal/bus"
	"github.com/roadhaul/fleet-sim/internal/models"
)

var (
	ErrVehicleExists    = errors.New("vehicle already registered")
	ErrVehicleNotFound  = errors.New("vehicle not found")
	ErrVehicleDriving   = errors.New("vehicle already driving")
	ErrVehicleIdle      = errors.New("vehicle not driving")
	ErrDriverExists     = errors.New("driver already registered")
	ErrDriverNotFound   = errors.New("driver not found")
	ErrDriverResting    = errors.New("driver is resting")
	ErrDriverOverHours  = errors.New("driver over maximum driving hours")
	ErrDriverAssigned   = errors.New("driver assigned to another vehicle")
	ErrSameDriver       = errors.New("primary and co-driver must differ")
	ErrRestTooSoon      = errors.New("minimum interval since last rest not elapsed")
	ErrRestTooShort     = errors.New("minimum rest duration not reached")
	ErrNotResting       = errors.New("driver is not resting")
)

// Params are the tunables of the simulation. Zero values are replaced by
// DefaultParams in New.
type Params struct {
	MaxDrivingHours   float64       // continuous driving cap per 24h window
	MinRest           time.Duration // minimum rest before a driver may resume
	DegradationPerKm  float64       // condition points lost per km
	BaseIncidentPerKm float64       // baseline incident probability per km
	DailyResetEvery   time.Duration // cadence of the global HOS reset
}

// DefaultParams returns the reference tuning.
func DefaultParams() Params {
	return Params{
		MaxDrivingHours:   6,
		MinRest:           time.Hour,
		DegradationPerKm:  0.01,
		BaseIncidentPerKm: 0.0006,
		DailyResetEvery:   24 * time.Hour,
	}
}

// Engine owns the vehicle and driver registries and advances them on clock
// ticks. All exported methods are safe for concurrent use; a single mutex
// makes registry mutations mutually exclusive with ticks.
type Engine struct {
	mu       sync.Mutex
	params   Params
	vehicles map[string]*models.VehicleState
	drivers  map[string]*models.DriverState

	incidents   *IncidentEvaluator
	maintenance *MaintenanceEstimator
	events      *bus.Bus

	lastDailyReset time.Time
}

// New creates an engine publishing to the given bus. A nil rng falls back to
// a time-seeded source; tests inject a deterministic one.
func New(params Params, events *bus.Bus, rng Rand) *Engine {
	if params.MaxDrivingHours <= 0 {
		params.MaxDrivingHours = 6
	}
	if params.MinRest <= 0 {
		params.MinRest = time.Hour
	}
	if params.DegradationPerKm <= 0 {
		params.DegradationPerKm = 0.01
	}
	if params.BaseIncidentPerKm <= 0 {
		params.BaseIncidentPerKm = 0.0006
	}
	if params.DailyResetEvery <= 0 {
		params.DailyResetEvery = 24 * time.Hour
	}
	if rng == nil {
		rng = NewRand()
	}
	if events == nil {
		events = bus.New()
	}
	return &Engine{
		params:      params,
		vehicles:    make(map[string]*models.VehicleState),
		drivers:     make(map[string]*models.DriverState),
		incidents:   NewIncidentEvaluator(params.BaseIncidentPerKm, rng),
		maintenance: NewMaintenanceEstimator(rng),
		events:      events,
	}
}

// Events returns the engine's event bus.
func (e *Engine) Events() *bus.Bus {
	return e.events
}

// RegisterVehicle adds a vehicle to the registry with full fuel, perfect
// condition and a zero odometer.
func (e *Engine) RegisterVehicle(specs models.VehicleSpecs, now time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.vehicles[specs.ID]; ok {
		return ErrVehicleExists
	}
	e.vehicles[specs.ID] = &models.VehicleState{
		Specs:      specs,
		Fuel:       specs.MaxFuel,
		Condition:  100,
		LastUpdate: now,
	}
	return nil
}

// RegisterDriver adds a driver to the registry. fit is the fitness hint from
// the staff subsystem.
func (e *Engine) RegisterDriver(id string, fit bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.drivers[id]; ok {
		return ErrDriverExists
	}
	e.drivers[id] = &models.DriverState{ID: id, Fit: fit}
	return nil
}

// VehicleState returns a copy of the vehicle's runtime state.
func (e *Engine) VehicleState(id string) (models.VehicleState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	v, ok := e.vehicles[id]
	if !ok {
		return models.VehicleState{}, ErrVehicleNotFound
	}
	return copyVehicle(v), nil
}

// DriverState returns a copy of the driver's runtime state.
func (e *Engine) DriverState(id string) (models.DriverState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, ok := e.drivers[id]
	if !ok {
		return models.DriverState{}, ErrDriverNotFound
	}
	return *d, nil
}

// Vehicles returns copies of all vehicle states.
func (e *Engine) Vehicles() []models.VehicleState {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.VehicleState, 0, len(e.vehicles))
	for _, v := range e.vehicles {
		out = append(out, copyVehicle(v))
	}
	return out
}

// Drivers returns copies of all driver states.
func (e *Engine) Drivers() []models.DriverState {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.DriverState, 0, len(e.drivers))
	for _, d := range e.drivers {
		out = append(out, *d)
	}
	return out
}

// Snapshot captures the full runtime state for persistence. The copy is deep,
// so a save can serialize it without observing a vehicle mid-tick.
func (e *Engine) Snapshot(now time.Time) models.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := models.Snapshot{
		Vehicles:       make(map[string]models.VehicleState, len(e.vehicles)),
		Drivers:        make(map[string]models.DriverState, len(e.drivers)),
		LastDailyReset: e.lastDailyReset,
		SavedAt:        now,
	}
	for id, v := range e.vehicles {
		snap.Vehicles[id] = copyVehicle(v)
	}
	for id, d := range e.drivers {
		snap.Drivers[id] = *d
	}
	return snap
}

// Restore replaces the registries with a previously saved snapshot.
func (e *Engine) Restore(snap models.Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.vehicles = make(map[string]*models.VehicleState, len(snap.Vehicles))
	for id, v := range snap.Vehicles {
		vc := v
		if v.Route != nil {
			rc := *v.Route
			vc.Route = &rc
		}
		e.vehicles[id] = &vc
	}
	e.drivers = make(map[string]*models.DriverState, len(snap.Drivers))
	for id, d := range snap.Drivers {
		dc := d
		e.drivers[id] = &dc
	}
	e.lastDailyReset = snap.LastDailyReset
}

func copyVehicle(v *models.VehicleState) models.VehicleState {
	out := *v
	if v.Route != nil {
		rc := *v.Route
		out.Route = &rc
	}
	return out
}
