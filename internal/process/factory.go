package process

import (
	"fmt"

	"github.com/roach88/partonmc/internal/engine"
	"github.com/roach88/partonmc/internal/pdf"
	"github.com/roach88/partonmc/internal/sampling"
)

// Process kinds accepted by New.
const (
	KindLeptonic = "ee"
	KindHadronic = "pp"
)

// Config selects and parameterises a process. Zero values fall back to
// the package defaults.
type Config struct {
	Kind    string
	ECM     float64
	Window  float64
	PDF     string
	PDFPath []string
	QMin    float64
	Mass    float64
	Width   float64
	Scale   float64
}

// Analytic is implemented by processes with an exact cross section.
type Analytic interface {
	Analytic() float64
}

// New builds the process described by cfg, loading the PDF set for
// hadronic processes.
func New(cfg Config) (engine.Process, error) {
	window := orDefault(cfg.Window, sampling.DefaultWindow)

	switch cfg.Kind {
	case KindLeptonic:
		return NewLeptonic(orDefault(cfg.ECM, DefaultLeptonicECM), window)

	case KindHadronic:
		provider, err := pdf.Load(cfg.PDF, cfg.PDFPath)
		if err != nil {
			return nil, fmt.Errorf("load pdf: %w", err)
		}
		hc := DefaultHadronicConfig(cfg.ECM, provider)
		hc.Window = window
		hc.QMin = orDefault(cfg.QMin, hc.QMin)
		hc.Mass = orDefault(cfg.Mass, hc.Mass)
		hc.Width = orDefault(cfg.Width, hc.Width)
		hc.Scale = orDefault(cfg.Scale, hc.Scale)
		return NewHadronic(hc)

	default:
		return nil, fmt.Errorf("unknown process %q (want %q or %q)", cfg.Kind, KindLeptonic, KindHadronic)
	}
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
