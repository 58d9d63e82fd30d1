package engine

import (
	"github.com/roach88/partonmc/internal/kinematics"
	"github.com/roach88/partonmc/internal/rng"
)

// Point is one sampled phase-space point with its full weight, i.e. the
// differential cross section times every sampling Jacobian.
type Point struct {
	CosTheta float64
	HatS     float64
	X1, X2   float64
	Weight   float64
}

// Process is a weighted sampler for one physics process.
//
// Sample must draw from the same distributions every call; Generate relies
// on this to reuse the phase-one envelope.
type Process interface {
	// Name is a human-readable process description.
	Name() string

	// Sample draws a point and evaluates its weight.
	Sample(src rng.Source) Point

	// Build turns an accepted point and azimuth into an event.
	Build(p Point, phi float64) kinematics.Event
}
