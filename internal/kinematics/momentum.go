// Package kinematics builds the four-momenta of generated events.
package kinematics

import (
	"fmt"
	"math"
)

// FourMomentum is (E, px, py, pz) with value semantics.
type FourMomentum struct {
	E, Px, Py, Pz float64
}

// NewFourMomentum creates a four-momentum.
func NewFourMomentum(e, px, py, pz float64) FourMomentum {
	return FourMomentum{E: e, Px: px, Py: py, Pz: pz}
}

// Scale multiplies every component by f.
func (p FourMomentum) Scale(f float64) FourMomentum {
	return FourMomentum{E: p.E * f, Px: p.Px * f, Py: p.Py * f, Pz: p.Pz * f}
}

// BoostZ applies a Lorentz boost along z with velocity beta, |beta| < 1:
// E' = γ(E − β pz), pz' = γ(pz − β E).
func (p FourMomentum) BoostZ(beta float64) FourMomentum {
	gamma := 1 / math.Sqrt(1-beta*beta)
	gb := gamma * beta
	return FourMomentum{
		E:  gamma*p.E - gb*p.Pz,
		Px: p.Px,
		Py: p.Py,
		Pz: -gb*p.E + gamma*p.Pz,
	}
}

// Add returns p + q.
func (p FourMomentum) Add(q FourMomentum) FourMomentum {
	return FourMomentum{E: p.E + q.E, Px: p.Px + q.Px, Py: p.Py + q.Py, Pz: p.Pz + q.Pz}
}

// Sub returns p − q.
func (p FourMomentum) Sub(q FourMomentum) FourMomentum {
	return FourMomentum{E: p.E - q.E, Px: p.Px - q.Px, Py: p.Py - q.Py, Pz: p.Pz - q.Pz}
}

// Mass2 is the invariant E² − |p|².
func (p FourMomentum) Mass2() float64 {
	return p.E*p.E - p.Px*p.Px - p.Py*p.Py - p.Pz*p.Pz
}

// Pt is the transverse momentum.
func (p FourMomentum) Pt() float64 {
	return math.Hypot(p.Px, p.Py)
}

// MaxAbs is the largest absolute component, used for tolerance checks.
func (p FourMomentum) MaxAbs() float64 {
	return math.Max(math.Max(math.Abs(p.E), math.Abs(p.Px)), math.Max(math.Abs(p.Py), math.Abs(p.Pz)))
}

// String formats the momentum as "e = …, px = …, py = …, pz = …".
func (p FourMomentum) String() string {
	return fmt.Sprintf("e = %g, px = %g, py = %g, pz = %g", p.E, p.Px, p.Py, p.Pz)
}
