package pdf

import "math"

// shape is x·f(x) = norm · x^a · (1−x)^b.
type shape struct {
	norm, a, b float64
}

func (s shape) xf(x float64) float64 {
	return s.norm * math.Pow(x, s.a) * math.Pow(1-x, s.b)
}

// numberIntegral is ∫₀¹ f(x) dx for unit norm.
func (s shape) numberIntegral() float64 {
	return beta(s.a, s.b+1)
}

// momentumIntegral is ∫₀¹ x·f(x) dx.
func (s shape) momentumIntegral() float64 {
	return s.norm * beta(s.a+1, s.b+1)
}

func beta(p, q float64) float64 {
	lp, _ := math.Lgamma(p)
	lq, _ := math.Lgamma(q)
	lpq, _ := math.Lgamma(p + q)
	return math.Exp(lp + lq - lpq)
}

// Builtin is an analytic leading-order-like set at a fixed scale near M_Z.
//
// Valence normalisations satisfy ∫u_v = 2 and ∫d_v = 1, and the gluon
// normalisation closes the momentum sum rule. The scale argument is
// accepted and ignored.
type Builtin struct {
	uv, dv     shape
	ubar, dbar shape
	strange    shape
	charm      shape
	bottom     shape
	gluon      shape
}

// NewBuiltin creates the builtin set.
func NewBuiltin() *Builtin {
	b := &Builtin{
		uv:      shape{a: 0.5, b: 3},
		dv:      shape{a: 0.5, b: 4},
		ubar:    shape{norm: 0.15, a: -0.15, b: 7},
		dbar:    shape{norm: 0.17, a: -0.15, b: 7},
		strange: shape{norm: 0.08, a: -0.15, b: 7},
		charm:   shape{norm: 0.03, a: -0.15, b: 8},
		bottom:  shape{norm: 0.015, a: -0.15, b: 9},
		gluon:   shape{a: -0.2, b: 5},
	}
	b.uv.norm = 2 / b.uv.numberIntegral()
	b.dv.norm = 1 / b.dv.numberIntegral()

	// Each sea shape is counted twice: quark and antiquark.
	quarks := b.uv.momentumIntegral() + b.dv.momentumIntegral() +
		2*(b.ubar.momentumIntegral()+b.dbar.momentumIntegral()+
			b.strange.momentumIntegral()+b.charm.momentumIntegral()+
			b.bottom.momentumIntegral())
	b.gluon.norm = (1 - quarks) / beta(b.gluon.a+1, b.gluon.b+1)
	return b
}

// Name implements Provider.
func (b *Builtin) Name() string {
	return BuiltinName
}

// XfxQ implements Provider.
func (b *Builtin) XfxQ(id int, x, q float64) float64 {
	if !(x > 0) || x >= 1 {
		return 0
	}
	switch id {
	case 2:
		return b.uv.xf(x) + b.ubar.xf(x)
	case -2:
		return b.ubar.xf(x)
	case 1:
		return b.dv.xf(x) + b.dbar.xf(x)
	case -1:
		return b.dbar.xf(x)
	case 3, -3:
		return b.strange.xf(x)
	case 4, -4:
		return b.charm.xf(x)
	case 5, -5:
		return b.bottom.xf(x)
	case Gluon, 0:
		return b.gluon.xf(x)
	default:
		return 0
	}
}
