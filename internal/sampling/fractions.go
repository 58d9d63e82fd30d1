package sampling

import (
	"fmt"
	"math"

	"github.com/roach88/partonmc/internal/rng"
)

// Fractions holds the incoming momentum fractions for one sample.
// X1*X2 equals τ = ŝ/s and X1/X2 equals exp(2Y).
type Fractions struct {
	X1, X2 float64
	Y      float64
	YMax   float64
}

// SampleFractions draws y uniformly in [-ymax, ymax] and derives x1, x2.
//
// hats must lie in (0, s]; Resonance guarantees this for its samples. A
// value rounded a hair above s is treated as s.
func SampleFractions(src rng.Source, s, hats float64) Fractions {
	ymax := math.Max(0, 0.5*math.Log(s/hats))
	y := (2*src.Float64() - 1) * ymax
	return fractionsAt(s, hats, y, ymax)
}

// NewFractions builds the fractions for a given rapidity, checking the
// domain. |y| must not exceed ymax.
func NewFractions(s, hats, y float64) (Fractions, error) {
	if !(hats > 0) || !(s > 0) {
		return Fractions{}, fmt.Errorf("%w: s and hats must be positive, got s = %g, hats = %g", ErrDomain, s, hats)
	}
	if hats > s {
		return Fractions{}, fmt.Errorf("%w: hats = %g exceeds s = %g", ErrDomain, hats, s)
	}
	ymax := 0.5 * math.Log(s/hats)
	if math.Abs(y) > ymax {
		return Fractions{}, fmt.Errorf("%w: |y| = %g exceeds ymax = %g", ErrDomain, math.Abs(y), ymax)
	}
	return fractionsAt(s, hats, y, ymax), nil
}

func fractionsAt(s, hats, y, ymax float64) Fractions {
	rt := math.Sqrt(hats / s)
	return Fractions{
		X1:   rt * math.Exp(y),
		X2:   rt * math.Exp(-y),
		Y:    y,
		YMax: ymax,
	}
}

// Jacobian is the width of the sampled rapidity range.
func (f Fractions) Jacobian() float64 {
	return 2 * f.YMax
}

// Beta is the longitudinal velocity of the partonic frame in the lab.
func (f Fractions) Beta() float64 {
	return (f.X2 - f.X1) / (f.X2 + f.X1)
}
