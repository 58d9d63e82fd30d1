// Package physics evaluates the Born-level differential cross section for
// f f̄ → Z/γ* → μ⁺μ⁻.
//
// The angular dependence is always a0·(1+cos²θ) + a1·cosθ. Coefficients
// computes a0 and a1 for a given initial-state fermion, so the leptonic and
// hadronic weights share one formula and differ only in couplings, colour
// averaging and the parton-density sum.
package physics

import "math"

// PbConv converts GeV⁻² to picobarns.
const PbConv = 3.894e8

// Electroweak inputs.
const (
	MZ     = 91.188
	MZ2    = MZ * MZ
	GammaZ = 2.4414

	GammaZ2 = GammaZ * GammaZ

	// Alpha is the QED coupling at the Z scale.
	Alpha = 1 / 132.507

	// GF is the Fermi constant in GeV⁻².
	GF = 1.16639e-5

	// SW2 is sin²θ_W.
	SW2 = 0.222246
)

// kappa normalises the Z propagator relative to the photon.
var kappa = math.Sqrt2 * GF * MZ2 / (4 * math.Pi * Alpha)

// BreitWignerZ is 1/((ŝ − M²)² + Γ²M²) for the Z boson.
func BreitWignerZ(hats float64) float64 {
	d := hats - MZ2
	return 1 / (d*d + GammaZ2*MZ2)
}
