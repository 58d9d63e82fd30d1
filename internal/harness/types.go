package harness

import (
	"github.com/roach88/partonmc/internal/engine"
	"github.com/roach88/partonmc/internal/kinematics"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Name is the scenario name.
	Name string `json:"name"`

	// Pass indicates every assertion held.
	Pass bool `json:"pass"`

	// Process is the process description.
	Process string `json:"process"`

	// ECM and Window echo the effective configuration.
	ECM    float64 `json:"ecm"`
	Window float64 `json:"window"`

	// Integration is the phase-one result.
	Integration engine.Integration `json:"integration"`

	// Stats summarises phase two.
	Stats engine.Stats `json:"stats"`

	// Events holds every generated event.
	Events []kinematics.Event `json:"-"`

	// Replicas holds the independent replica integrations.
	Replicas []engine.Integration `json:"replicas,omitempty"`

	// Combined merges the main integration with every replica.
	Combined engine.Integration `json:"combined"`

	// Analytic is the exact cross section in GeV⁻², when known.
	Analytic float64 `json:"analytic,omitempty"`

	// Errors contains assertion failure messages.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult(name string) *Result {
	return &Result{Name: name, Pass: true, Errors: []string{}}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
