package models

import "time"

// Route represents an active haul from origin to destination.
type Route struct {
	Origin        string    `bson:"origin" json:"origin"`
	Destination   string    `bson:"destination" json:"destination"`
	DistanceKm    float64   `bson:"distance_km" json:"distance_km"`
	AccumulatedKm float64   `bson:"accumulated_km" json:"accumulated_km"`
	StartedAt     time.Time `bson:"started_at" json:"started_at"`
}

// Remaining returns the distance left on the route, never below zero.
func (r *Route) Remaining() float64 {
	left := r.DistanceKm - r.AccumulatedKm
	if left < 0 {
		return 0
	}
	return left
}
