package physics

import "math"

// Coefficients is the angular decomposition of dσ/dcosθ:
// Prefac·(A0·(1+cos²θ) + A1·cosθ).
type Coefficients struct {
	A0, A1 float64
	Prefac float64
}

// NewCoefficients returns the coefficients for an initial fermion with
// couplings f annihilating into μ⁺μ⁻ at partonic energy squared hats.
// The colour average is applied by the caller through the prefactor.
func NewCoefficients(hats float64, f Couplings) Coefficients {
	bw := BreitWignerZ(hats)
	chi1 := kappa * hats * (hats - MZ2) * bw
	chi2 := kappa * kappa * hats * hats * bw

	l := Muon
	a0 := f.Q*f.Q - 2*f.Q*l.V*f.V*chi1 +
		(l.V*l.V+l.A*l.A)*(f.V*f.V+f.A*f.A)*chi2
	a1 := -4*f.Q*l.A*f.A*chi1 + 8*l.A*l.V*f.A*f.V*chi2

	// 2π from the φ integral.
	return Coefficients{
		A0:     a0,
		A1:     a1,
		Prefac: 2 * math.Pi * Alpha * Alpha / (4 * hats),
	}
}

// Eval returns dσ/dcosθ.
func (c Coefficients) Eval(costh float64) float64 {
	return c.Prefac * (c.A0*(1+costh*costh) + c.A1*costh)
}

// Symmetric returns the part of dσ/dcosθ even in cosθ.
func (c Coefficients) Symmetric(costh float64) float64 {
	return c.Prefac * c.A0 * (1 + costh*costh)
}

// Asymmetric returns the forward–backward part, odd in cosθ.
func (c Coefficients) Asymmetric(costh float64) float64 {
	return c.Prefac * c.A1 * costh
}

// Integral returns ∫ dσ/dcosθ over [lo, hi].
func (c Coefficients) Integral(lo, hi float64) float64 {
	even := (hi - lo) + (hi*hi*hi-lo*lo*lo)/3
	odd := (hi*hi - lo*lo) / 2
	return c.Prefac * (c.A0*even + c.A1*odd)
}

// ForwardBackward returns A_FB = 3A1 / (8A0) over the full angular range.
func (c Coefficients) ForwardBackward() float64 {
	return 3 * c.A1 / (8 * c.A0)
}

// LeptonicDSigma is dσ/dcosθ for e⁺e⁻ → Z/γ* → μ⁺μ⁻.
func LeptonicDSigma(costh, hats float64) float64 {
	return NewCoefficients(hats, Muon).Eval(costh)
}

// QuarkCoefficients returns the colour-averaged coefficients for q q̄ → μ⁺μ⁻.
func QuarkCoefficients(hats float64, typ QuarkType) Coefficients {
	c := NewCoefficients(hats, QuarkCouplings(typ))
	c.Prefac /= 3
	return c
}

// QuarkDSigma is dσ/dcosθ for q q̄ → Z/γ* → μ⁺μ⁻, with θ measured from the
// quark direction.
func QuarkDSigma(costh, hats float64, typ QuarkType) float64 {
	return QuarkCoefficients(hats, typ).Eval(costh)
}
