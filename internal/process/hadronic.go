package process

import (
	"fmt"

	"github.com/roach88/partonmc/internal/engine"
	"github.com/roach88/partonmc/internal/kinematics"
	"github.com/roach88/partonmc/internal/physics"
	"github.com/roach88/partonmc/internal/rng"
	"github.com/roach88/partonmc/internal/sampling"
)

// Defaults for the hadronic process. The resonance transform uses its own
// mass and width, which need not match the Z.
const (
	DefaultQMin           = 60.0
	DefaultTransformMass  = 60.0
	DefaultTransformWidth = 60.0
)

// HadronicConfig configures the hadronic process.
type HadronicConfig struct {
	ECM    float64 // hadronic collision energy √s
	Window float64 // cos θ window width
	QMin   float64 // lower cut on √ŝ
	Mass   float64 // resonance transform mass
	Width  float64 // resonance transform width
	Scale  float64 // PDF factorisation scale
	PDF    physics.PDF
}

// DefaultHadronicConfig returns the standard setup at ecm with pdf.
func DefaultHadronicConfig(ecm float64, pdf physics.PDF) HadronicConfig {
	return HadronicConfig{
		ECM:    ecm,
		Window: sampling.DefaultWindow,
		QMin:   DefaultQMin,
		Mass:   DefaultTransformMass,
		Width:  DefaultTransformWidth,
		Scale:  physics.MZ,
		PDF:    pdf,
	}
}

// Hadronic is pp → μ⁺μ⁻ through q q̄ annihilation.
type Hadronic struct {
	ecm       float64
	s         float64
	angle     sampling.AngleSampler
	resonance *sampling.Resonance
	weight    *physics.Hadronic
}

var _ engine.Process = (*Hadronic)(nil)

// NewHadronic validates cfg and creates the process.
func NewHadronic(cfg HadronicConfig) (*Hadronic, error) {
	if cfg.PDF == nil {
		return nil, fmt.Errorf("hadronic process: no PDF provider")
	}
	if !(cfg.ECM > 0) {
		return nil, fmt.Errorf("%w: collision energy must be positive, got %g", sampling.ErrDomain, cfg.ECM)
	}
	if !(cfg.Scale > 0) {
		return nil, fmt.Errorf("%w: PDF scale must be positive, got %g", sampling.ErrDomain, cfg.Scale)
	}
	angle, err := sampling.NewAngleSampler(cfg.Window)
	if err != nil {
		return nil, err
	}
	s := cfg.ECM * cfg.ECM
	res, err := sampling.NewResonance(cfg.QMin, cfg.Mass, cfg.Width, s)
	if err != nil {
		return nil, fmt.Errorf("resonance transform: %w", err)
	}
	return &Hadronic{
		ecm:       cfg.ECM,
		s:         s,
		angle:     angle,
		resonance: res,
		weight:    physics.NewHadronic(cfg.PDF, cfg.Scale),
	}, nil
}

func (h *Hadronic) Name() string {
	return "p p -> Z/gamma* -> mu+ mu-"
}

// ECM returns the hadronic collision energy.
func (h *Hadronic) ECM() float64 {
	return h.ecm
}

// Window returns the cos θ window width.
func (h *Hadronic) Window() float64 {
	return h.angle.Window()
}

// Sample draws cos θ, ŝ and the parton fractions, in that order. The weight
// carries the window width, the resonance span and per-point Jacobian, and
// the rapidity range.
func (h *Hadronic) Sample(src rng.Source) engine.Point {
	c := h.angle.CosTheta(src)
	r := h.resonance.Draw(src)
	f := sampling.SampleFractions(src, h.s, r.HatS)

	w := h.weight.Weight(r.HatS, f.X1, f.X2, c)
	w *= h.angle.Window() * h.resonance.Span() * r.Jacobian * f.Jacobian()
	return engine.Point{
		CosTheta: c,
		HatS:     r.HatS,
		X1:       f.X1,
		X2:       f.X2,
		Weight:   w,
	}
}

func (h *Hadronic) Build(p engine.Point, phi float64) kinematics.Event {
	return kinematics.Hadronic(p.CosTheta, phi, p.X1, p.X2, p.HatS, h.ecm)
}
