package kinematics

// Particle is a species label with its four-momentum.
type Particle struct {
	Label string
	P     FourMomentum
}

// Event is an ordered list of particles, incoming first. Built once per
// accepted sample and not modified afterwards.
type Event struct {
	Particles   []Particle
	NumIncoming int

	// Sampled parameters, kept for diagnostics.
	CosTheta float64
	Phi      float64
	HatS     float64
	X1, X2   float64
}

// Incoming returns the incoming particles.
func (e Event) Incoming() []Particle {
	return e.Particles[:e.NumIncoming]
}

// Outgoing returns the outgoing particles.
func (e Event) Outgoing() []Particle {
	return e.Particles[e.NumIncoming:]
}

// Imbalance returns Σ incoming − Σ outgoing; zero when momentum is conserved.
func (e Event) Imbalance() FourMomentum {
	var sum FourMomentum
	for _, p := range e.Incoming() {
		sum = sum.Add(p.P)
	}
	for _, p := range e.Outgoing() {
		sum = sum.Sub(p.P)
	}
	return sum
}

// Conserves reports whether every component of the imbalance is within tol.
func (e Event) Conserves(tol float64) bool {
	return e.Imbalance().MaxAbs() <= tol
}
