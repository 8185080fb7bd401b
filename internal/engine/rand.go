package engine

import (
	"math/rand"
	"time"
)

// Rand is the random source consumed by the incident evaluator and the
// maintenance estimator. Injecting it keeps stochastic outcomes reproducible
// in tests; *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a time-seeded source.
func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
