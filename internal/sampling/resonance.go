package sampling

import (
	"fmt"
	"math"

	"github.com/roach88/partonmc/internal/rng"
)

// ResonanceSample is one draw of the resonance transform.
type ResonanceSample struct {
	Rho      float64 // flat transform variable
	HatS     float64 // partonic energy squared
	Jacobian float64 // per-point factor MΓ / (cos²ρ s)
}

// Resonance flattens a Breit–Wigner peak of the given mass and width over
// ŝ in [qmin², s].
type Resonance struct {
	rho1, rho2 float64
	mass       float64
	width      float64
	s          float64
}

// NewResonance precomputes the rho bounds for ŝ in [qmin², s].
func NewResonance(qmin, mass, width, s float64) (*Resonance, error) {
	switch {
	case !(qmin > 0):
		return nil, fmt.Errorf("%w: qmin must be positive, got %g", ErrDomain, qmin)
	case !(mass > 0):
		return nil, fmt.Errorf("%w: resonance mass must be positive, got %g", ErrDomain, mass)
	case !(width > 0):
		return nil, fmt.Errorf("%w: resonance width must be positive, got %g", ErrDomain, width)
	case !(s > qmin*qmin):
		return nil, fmt.Errorf("%w: s = %g must exceed qmin^2 = %g", ErrDomain, s, qmin*qmin)
	}

	gm := mass * width
	m2 := mass * mass
	return &Resonance{
		rho1:  math.Atan((qmin*qmin - m2) / gm),
		rho2:  math.Atan((s - m2) / gm),
		mass:  mass,
		width: width,
		s:     s,
	}, nil
}

// Sample draws rho uniformly in [rho1, rho2).
func (r *Resonance) Sample(src rng.Source) float64 {
	return r.rho1 + src.Float64()*(r.rho2-r.rho1)
}

// Draw samples rho and derives ŝ and the per-point Jacobian.
func (r *Resonance) Draw(src rng.Source) ResonanceSample {
	rho := r.Sample(src)
	return ResonanceSample{
		Rho:      rho,
		HatS:     r.HatS(rho),
		Jacobian: r.Jacobian(rho),
	}
}

// HatS maps rho back to a partonic energy squared.
func (r *Resonance) HatS(rho float64) float64 {
	return r.mass*r.width*math.Tan(rho) + r.mass*r.mass
}

// QScale is √ŝ for rho.
func (r *Resonance) QScale(rho float64) float64 {
	return math.Sqrt(r.HatS(rho))
}

// Jacobian is dτ/dρ = MΓ / (cos²ρ s).
func (r *Resonance) Jacobian(rho float64) float64 {
	c := math.Cos(rho)
	return r.mass * r.width / (c * c * r.s)
}

// Span is the width of the sampled rho interval.
func (r *Resonance) Span() float64 {
	return r.rho2 - r.rho1
}

// Bounds returns the rho interval [rho1, rho2).
func (r *Resonance) Bounds() (lo, hi float64) {
	return r.rho1, r.rho2
}

// S returns the hadronic energy squared.
func (r *Resonance) S() float64 {
	return r.s
}
