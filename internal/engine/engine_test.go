package engine

import (
	"time"

	"github.com/roadhaul/fleet-sim/internal/bus"
	"github.com/roadhaul/fleet-sim/internal/models"
)

// fixedRand returns the same float on every draw, so tests can force or
// suppress incident rolls.
type fixedRand struct {
	f float64
	n int
}

func (r *fixedRand) Float64() float64 { return r.f }
func (r *fixedRand) Intn(n int) int {
	if r.n >= n {
		return n - 1
	}
	return r.n
}

// noIncidents suppresses every roll below certainty.
func noIncidents() Rand { return &fixedRand{f: 0.999} }

var t0 = time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

func testSpecs(id string) models.VehicleSpecs {
	return models.VehicleSpecs{
		ID:               id,
		Class:            models.ClassHeavy,
		Price:            150000,
		ConsumptionL100:  30,
		MaxFuel:          400,
		Reliability:      models.GradeB,
		Durability:       5,
		MaintenanceGroup: 2,
		CruiseSpeedKmh:   80,
	}
}

func newTestEngine(rng Rand) *Engine {
	if rng == nil {
		rng = noIncidents()
	}
	return New(DefaultParams(), bus.New(), rng)
}

// drain empties a subscription without blocking.
func drain(sub *bus.Subscription) []bus.Event {
	var out []bus.Event
	for {
		select {
		case ev, ok := <-sub.C:
			if !ok {
				return out
			}
			out = append(out, ev)
		default:
			return out
		}
	}
}
