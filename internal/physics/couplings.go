package physics

// Couplings are the vector and axial Z couplings and the electric charge of
// a fermion.
type Couplings struct {
	V, A, Q float64
}

// QuarkType selects the up-type or down-type quark couplings.
type QuarkType int

const (
	Up QuarkType = iota
	Down
)

// String implements fmt.Stringer.
func (q QuarkType) String() string {
	switch q {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Muon couplings, shared by all charged leptons.
var Muon = Couplings{V: -0.5 + 2*SW2, A: -0.5, Q: -1}

// QuarkCouplings returns the couplings of an up- or down-type quark.
func QuarkCouplings(typ QuarkType) Couplings {
	if typ == Up {
		return Couplings{V: 0.5 - 4.0*SW2/3, A: 0.5, Q: 2.0 / 3}
	}
	return Couplings{V: -0.5 + 2.0*SW2/3, A: -0.5, Q: -1.0 / 3}
}
