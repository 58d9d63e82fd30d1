// Package sampling implements the importance-sampling transforms used by the
// Monte Carlo integrator.
//
// # Angles
//
// AngleSampler draws the polar-angle cosine flat over [-1, -1+window) and
// Phi draws the azimuth flat over [0, 2π). The window is the width of the
// integrated cosine range and is also the angular Jacobian of the weight.
//
// # Resonance flattening
//
// Resonance maps a flat variable rho onto ŝ = MΓ tan(rho) + M². The
// Breit–Wigner lineshape is flat in rho, so uniform sampling in rho puts
// points where the integrand peaks. The weight picks up Span() once and
// Jacobian(rho) per point.
//
// # Momentum fractions
//
// SampleFractions draws the rapidity y of the partonic system flat in
// [-ymax, ymax] and returns x1 = √τ eʸ, x2 = √τ e⁻ʸ with τ = ŝ/s. The weight
// picks up the rapidity range 2·ymax.
//
// All domain checks happen in the constructors. The per-sample methods do
// not return errors.
package sampling

import "errors"

// ErrDomain marks a sampler configuration outside the transform's domain.
var ErrDomain = errors.New("sampling domain error")
