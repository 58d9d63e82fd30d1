package kinematics

import "math"

// UnitPair returns the incoming and outgoing unit-energy momenta of a 2 → 2
// scattering in its centre-of-mass frame: the beams along ±z and the
// products back to back at polar angle acos(costh) and azimuth phi.
func UnitPair(costh, phi float64) (in, out [2]FourMomentum) {
	sinth := math.Sqrt(math.Max(0, 1-costh*costh))
	sinphi, cosphi := math.Sincos(phi)

	in[0] = NewFourMomentum(1, 0, 0, 1)
	in[1] = NewFourMomentum(1, 0, 0, -1)
	out[0] = NewFourMomentum(1, sinth*cosphi, sinth*sinphi, costh)
	out[1] = NewFourMomentum(1, -sinth*cosphi, -sinth*sinphi, -costh)
	return in, out
}

// Leptonic builds e⁻ e⁺ → μ⁻ μ⁺ at collision energy ecm in the
// centre-of-mass frame.
func Leptonic(costh, phi, ecm float64) Event {
	in, out := UnitPair(costh, phi)
	half := ecm / 2
	return Event{
		Particles: []Particle{
			{Label: "e-", P: in[0].Scale(half)},
			{Label: "e+", P: in[1].Scale(half)},
			{Label: "mu-", P: out[0].Scale(half)},
			{Label: "mu+", P: out[1].Scale(half)},
		},
		NumIncoming: 2,
		CosTheta:    costh,
		Phi:         phi,
		HatS:        ecm * ecm,
	}
}

// Hadronic builds q1 q2 → μ⁻ μ⁺ in the lab frame. The partons carry
// fractions x1 and x2 of the beam energy ecm/2; the muon pair is built in
// the partonic frame at √hats and boosted along z with
// β = (x2 − x1)/(x2 + x1).
func Hadronic(costh, phi, x1, x2, hats, ecm float64) Event {
	_, out := UnitPair(costh, phi)
	halfBeam := ecm / 2
	halfHat := math.Sqrt(hats) / 2
	beta := (x2 - x1) / (x2 + x1)

	return Event{
		Particles: []Particle{
			{Label: "q1", P: NewFourMomentum(1, 0, 0, 1).Scale(x1 * halfBeam)},
			{Label: "q2", P: NewFourMomentum(1, 0, 0, -1).Scale(x2 * halfBeam)},
			{Label: "mu-", P: out[0].Scale(halfHat).BoostZ(beta)},
			{Label: "mu+", P: out[1].Scale(halfHat).BoostZ(beta)},
		},
		NumIncoming: 2,
		CosTheta:    costh,
		Phi:         phi,
		HatS:        hats,
		X1:          x1,
		X2:          x2,
	}
}
