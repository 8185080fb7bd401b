package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/roadhaul/fleet-sim/internal/models"
)

// Incident type weights out of 100. Minor hiccups dominate; brake failures
// are rare.
var incidentWeights = []struct {
	typ    models.IncidentType
	weight int
}{
	{models.IncidentMinor, 50},
	{models.IncidentBreakdown, 25},
	{models.IncidentTire, 12},
	{models.IncidentEngine, 8},
	{models.IncidentBrake, 5},
}

// IncidentEvaluator computes per-tick breakdown probabilities and rolls for
// incidents. It holds no vehicle state of its own.
type IncidentEvaluator struct {
	basePerKm float64
	rng       Rand
}

// NewIncidentEvaluator creates an evaluator with the given baseline risk per
// kilometer and random source.
func NewIncidentEvaluator(basePerKm float64, rng Rand) *IncidentEvaluator {
	return &IncidentEvaluator{basePerKm: basePerKm, rng: rng}
}

// Probability returns the chance of an incident over deltaKm for the given
// vehicle and driver, always within [0, 1].
func (ev *IncidentEvaluator) Probability(v *models.VehicleState, d *models.DriverState, deltaKm float64) float64 {
	if deltaKm <= 0 {
		return 0
	}

	reliability := 1.0
	switch v.Specs.Reliability {
	case models.GradeA:
		reliability = 0.6
	case models.GradeC:
		reliability = 1.6
	}

	durability := 1 + math.Max(0, float64(5-v.Specs.Durability)*0.08)

	condition := 1.0
	if v.Condition < 50 {
		condition = 1 + (50-v.Condition)/50
	}

	driver := 1.0
	if d != nil {
		if !d.Fit {
			driver += 0.6
		}
		switch {
		case d.HoursDriven >= 6:
			driver += 0.6
		case d.HoursDriven >= 4:
			driver += 0.25
		}
		if d.Resting {
			// A resting driver should never be behind the wheel; if the
			// vehicle is moving anyway, something is off.
			driver += 0.15
		}
	}

	p := ev.basePerKm * deltaKm * reliability * durability * condition * driver
	return math.Min(1, math.Max(0, p))
}

// Evaluate rolls for an incident over deltaKm. It returns the probability
// used and, if the roll triggered, the incident record.
func (ev *IncidentEvaluator) Evaluate(v *models.VehicleState, d *models.DriverState, deltaKm float64, now time.Time) (float64, *models.Incident) {
	p := ev.Probability(v, d, deltaKm)
	if p <= 0 || ev.rng.Float64() >= p {
		return p, nil
	}

	severity := (100-v.Condition)*0.8 + float64(11-v.Specs.Durability)*2
	if v.Specs.Reliability == models.GradeC {
		severity += 8
	}
	severity += ev.rng.Float64()*20 - 10 // +/-10 jitter
	severity = math.Min(100, math.Max(10, severity))

	typ := ev.pickType()

	return p, &models.Incident{
		ID:         uuid.NewString(),
		VehicleID:  v.Specs.ID,
		Type:       typ,
		Severity:   int(math.Round(severity)),
		OdometerKm: v.OdometerKm,
		Timestamp:  now,
		Cause: fmt.Sprintf("%s incident after %.0f km: condition %.0f, durability %d, grade %s",
			typ, v.OdometerKm, v.Condition, v.Specs.Durability, v.Specs.Reliability),
	}
}

func (ev *IncidentEvaluator) pickType() models.IncidentType {
	roll := ev.rng.Intn(100)
	for _, w := range incidentWeights {
		if roll < w.weight {
			return w.typ
		}
		roll -= w.weight
	}
	return models.IncidentMinor
}
