package process

import (
	"fmt"

	"github.com/roach88/partonmc/internal/engine"
	"github.com/roach88/partonmc/internal/kinematics"
	"github.com/roach88/partonmc/internal/physics"
	"github.com/roach88/partonmc/internal/rng"
	"github.com/roach88/partonmc/internal/sampling"
)

// DefaultLeptonicECM is the collision energy of the leptonic process in GeV.
const DefaultLeptonicECM = 90.0

// Leptonic is e⁺e⁻ → μ⁺μ⁻ at fixed ŝ = ECM².
type Leptonic struct {
	ecm   float64
	hats  float64
	angle sampling.AngleSampler
}

var _ engine.Process = (*Leptonic)(nil)

// NewLeptonic creates the leptonic process at collision energy ecm with the
// given cos θ window.
func NewLeptonic(ecm, window float64) (*Leptonic, error) {
	if !(ecm > 0) {
		return nil, fmt.Errorf("%w: collision energy must be positive, got %g", sampling.ErrDomain, ecm)
	}
	angle, err := sampling.NewAngleSampler(window)
	if err != nil {
		return nil, err
	}
	return &Leptonic{ecm: ecm, hats: ecm * ecm, angle: angle}, nil
}

func (l *Leptonic) Name() string {
	return "e+ e- -> Z/gamma* -> mu+ mu-"
}

// ECM returns the collision energy.
func (l *Leptonic) ECM() float64 {
	return l.ecm
}

// Window returns the cos θ window width.
func (l *Leptonic) Window() float64 {
	return l.angle.Window()
}

// Sample draws cos θ and weights it by dσ/dcosθ times the window width.
func (l *Leptonic) Sample(src rng.Source) engine.Point {
	c := l.angle.CosTheta(src)
	return engine.Point{
		CosTheta: c,
		HatS:     l.hats,
		Weight:   physics.LeptonicDSigma(c, l.hats) * l.angle.Window(),
	}
}

func (l *Leptonic) Build(p engine.Point, phi float64) kinematics.Event {
	return kinematics.Leptonic(p.CosTheta, phi, l.ecm)
}

// Analytic returns the exact cross section over the window in GeV⁻².
func (l *Leptonic) Analytic() float64 {
	lo, hi := l.angle.Bounds()
	return physics.NewCoefficients(l.hats, physics.Muon).Integral(lo, hi)
}
