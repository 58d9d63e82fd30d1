package physics

// PDF returns momentum-weighted parton densities x·f(x, Q).
//
// Implemented by pdf.Builtin and pdf.Grid.
type PDF interface {
	XfxQ(id int, x, q float64) float64
}

// generations lists the PDG ids summed per quark type.
var generations = map[QuarkType][]int{
	Up:   {2, 4},
	Down: {1, 3},
}

// Hadronic evaluates the parton-level weight for pp → Z/γ* → μ⁺μ⁻.
type Hadronic struct {
	pdf   PDF
	scale float64
}

// NewHadronic creates a weight function querying pdf at a fixed scale.
func NewHadronic(pdf PDF, scale float64) *Hadronic {
	return &Hadronic{pdf: pdf, scale: scale}
}

// Scale returns the factorisation scale in GeV.
func (h *Hadronic) Scale() float64 {
	return h.scale
}

// Weight returns Σ_q [dσ(cosθ) q(x1)q̄(x2) + dσ(−cosθ) q̄(x1)q(x2)] with the
// densities f(x) = xf(x)/x, i.e. the x·f products divided once by x1·x2.
// x1 and x2 must lie strictly inside (0, 1].
func (h *Hadronic) Weight(hats, x1, x2, costh float64) float64 {
	w := 0.0
	for _, typ := range []QuarkType{Up, Down} {
		c := QuarkCoefficients(hats, typ)
		fwd, bwd := c.Eval(costh), c.Eval(-costh)
		for _, id := range generations[typ] {
			w += fwd * h.pdf.XfxQ(id, x1, h.scale) * h.pdf.XfxQ(-id, x2, h.scale)
			w += bwd * h.pdf.XfxQ(-id, x1, h.scale) * h.pdf.XfxQ(id, x2, h.scale)
		}
	}
	return w / (x1 * x2)
}

// Luminosity returns the flavour-summed x·f product for quark type typ with
// the quark taken from hadron 1. Useful for diagnostics and tests.
func (h *Hadronic) Luminosity(typ QuarkType, x1, x2 float64) float64 {
	l := 0.0
	for _, id := range generations[typ] {
		l += h.pdf.XfxQ(id, x1, h.scale) * h.pdf.XfxQ(-id, x2, h.scale)
	}
	return l
}
