package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/partonmc/internal/process"
)

// Scenario defines one end-to-end generator run and its checks.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Process is "ee" or "pp".
	Process string `yaml:"process"`

	// ECM is the collision energy in GeV.
	ECM float64 `yaml:"ecm"`

	// Events is the number of unweighted events to generate.
	Events int `yaml:"events"`

	// Samples is the number of integration samples.
	Samples int64 `yaml:"samples"`

	// Seed fixes the random streams.
	Seed uint64 `yaml:"seed"`

	// Window is the cos θ window width. Zero means 2.
	Window float64 `yaml:"window,omitempty"`

	// PDF names the PDF set for pp scenarios. Empty means builtin.
	PDF string `yaml:"pdf,omitempty"`

	// PDFPath lists directories searched for PDF sets.
	PDFPath []string `yaml:"pdf_path,omitempty"`

	// Replicas is the number of additional independent integrations.
	Replicas int `yaml:"replicas,omitempty"`

	// Assertions are evaluated after the run.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion checks one property of a scenario result.
type Assertion struct {
	// Type selects the check; see the package documentation.
	Type string `yaml:"type"`

	// Count is used by event_count and particle_count.
	Count int `yaml:"count,omitempty"`

	// Tolerance is used by momentum_conserved and incoming_energy.
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Sigmas is used by replicas_consistent and analytic_cross_section.
	Sigmas float64 `yaml:"sigmas,omitempty"`

	// Fraction is used by replicas_consistent.
	Fraction float64 `yaml:"fraction,omitempty"`
}

// Assertion type constants.
const (
	AssertPositiveCrossSection   = "positive_cross_section"
	AssertErrorBelowCrossSection = "error_below_cross_section"
	AssertMaxWeightPositive      = "max_weight_positive"
	AssertEventCount             = "event_count"
	AssertParticleCount          = "particle_count"
	AssertMomentumConserved      = "momentum_conserved"
	AssertIncomingEnergy         = "incoming_energy"
	AssertCosThetaWindow         = "cos_theta_window"
	AssertReplicasConsistent     = "replicas_consistent"
	AssertAnalyticCrossSection   = "analytic_cross_section"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// FindScenarios returns the .yaml and .yml files under dir, sorted. When
// filter is non-empty only files whose base name (without extension)
// matches the glob are returned.
func FindScenarios(dir, filter string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		if filter != "" {
			name := filepath.Base(path)
			name = name[:len(name)-len(ext)]
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Process != process.KindLeptonic && s.Process != process.KindHadronic {
		return fmt.Errorf("process must be %q or %q, got %q", process.KindLeptonic, process.KindHadronic, s.Process)
	}

	if s.Process == process.KindHadronic && s.ECM <= 0 {
		return fmt.Errorf("ecm is required for pp scenarios")
	}

	if s.ECM < 0 {
		return fmt.Errorf("ecm must not be negative")
	}

	if s.Events <= 0 {
		return fmt.Errorf("events must be positive")
	}

	if s.Samples <= 0 {
		return fmt.Errorf("samples must be positive")
	}

	if s.Replicas < 0 {
		return fmt.Errorf("replicas must not be negative")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i], s); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, s *Scenario) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertPositiveCrossSection, AssertErrorBelowCrossSection, AssertMaxWeightPositive,
		AssertMomentumConserved, AssertIncomingEnergy, AssertCosThetaWindow:
	case AssertEventCount, AssertParticleCount:
		if a.Count <= 0 {
			return fmt.Errorf("assertions[%d]: count must be positive for %s", index, a.Type)
		}
	case AssertReplicasConsistent:
		if s.Replicas < 2 {
			return fmt.Errorf("assertions[%d]: replicas_consistent needs at least 2 replicas", index)
		}
		if a.Fraction < 0 || a.Fraction > 1 {
			return fmt.Errorf("assertions[%d]: fraction must be in [0, 1]", index)
		}
	case AssertAnalyticCrossSection:
		if s.Process != process.KindLeptonic {
			return fmt.Errorf("assertions[%d]: analytic_cross_section is only available for ee", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	if a.Tolerance < 0 || a.Sigmas < 0 {
		return fmt.Errorf("assertions[%d]: tolerance and sigmas must not be negative", index)
	}

	return nil
}
