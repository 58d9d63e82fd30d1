package harness

import (
	"fmt"
	"math"
	"strings"

	"github.com/roach88/partonmc/internal/engine"
)

// Defaults applied when an assertion leaves a parameter zero.
const (
	DefaultTolerance = 1e-6
	DefaultSigmas    = 2.0
	DefaultFraction  = 0.9
	analyticSigmas   = 4.0
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	Event    int    // 1-based index of the offending event, 0 if none
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	if e.Event > 0 {
		fmt.Fprintf(&buf, "\n  Event: %d", e.Event)
	}
	return buf.String()
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func assertPositiveCrossSection(r *Result, _ Assertion) error {
	if r.Integration.Sigma > 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertPositiveCrossSection,
		Expected: "cross section > 0",
		Actual:   fmt.Sprintf("%g pb", r.Integration.SigmaPb()),
	}
}

func assertErrorBelowCrossSection(r *Result, _ Assertion) error {
	if r.Integration.Error < r.Integration.Sigma {
		return nil
	}
	return &AssertionError{
		Type:     AssertErrorBelowCrossSection,
		Expected: fmt.Sprintf("error < %g pb", r.Integration.SigmaPb()),
		Actual:   fmt.Sprintf("error = %g pb", r.Integration.ErrorPb()),
	}
}

func assertMaxWeightPositive(r *Result, _ Assertion) error {
	if r.Integration.MaxWeight > 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertMaxWeightPositive,
		Expected: "maximum weight > 0",
		Actual:   fmt.Sprintf("%g", r.Integration.MaxWeight),
	}
}

func assertEventCount(r *Result, a Assertion) error {
	if len(r.Events) == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertEventCount,
		Expected: fmt.Sprintf("%d events", a.Count),
		Actual:   fmt.Sprintf("%d events", len(r.Events)),
	}
}

func assertParticleCount(r *Result, a Assertion) error {
	for i, ev := range r.Events {
		if len(ev.Particles) != a.Count {
			return &AssertionError{
				Type:     AssertParticleCount,
				Expected: fmt.Sprintf("%d particles", a.Count),
				Actual:   fmt.Sprintf("%d particles", len(ev.Particles)),
				Event:    i + 1,
			}
		}
	}
	return nil
}

func assertMomentumConserved(r *Result, a Assertion) error {
	tol := orDefault(a.Tolerance, DefaultTolerance)
	for i, ev := range r.Events {
		if !ev.Conserves(tol) {
			return &AssertionError{
				Type:     AssertMomentumConserved,
				Expected: fmt.Sprintf("imbalance within %g", tol),
				Actual:   ev.Imbalance().String(),
				Event:    i + 1,
			}
		}
	}
	return nil
}

// assertIncomingEnergy checks E_i = x_i·ECM/2 for both incoming particles.
// Leptonic events carry no fractions and are checked against x = 1.
func assertIncomingEnergy(r *Result, a Assertion) error {
	tol := orDefault(a.Tolerance, DefaultTolerance)
	for i, ev := range r.Events {
		x1, x2 := ev.X1, ev.X2
		if x1 == 0 && x2 == 0 {
			x1, x2 = 1, 1
		}
		in := ev.Incoming()
		if len(in) != 2 {
			return &AssertionError{
				Type:     AssertIncomingEnergy,
				Expected: "2 incoming particles",
				Actual:   fmt.Sprintf("%d incoming particles", len(in)),
				Event:    i + 1,
			}
		}
		want := [2]float64{x1 * r.ECM / 2, x2 * r.ECM / 2}
		for j, p := range in {
			if math.Abs(p.P.E-want[j]) > tol {
				return &AssertionError{
					Type:     AssertIncomingEnergy,
					Expected: fmt.Sprintf("%s energy %g", p.Label, want[j]),
					Actual:   fmt.Sprintf("%g", p.P.E),
					Event:    i + 1,
				}
			}
		}
	}
	return nil
}

func assertCosThetaWindow(r *Result, _ Assertion) error {
	lo, hi := -1.0, -1+r.Window
	for i, ev := range r.Events {
		if ev.CosTheta < lo || ev.CosTheta >= hi {
			return &AssertionError{
				Type:     AssertCosThetaWindow,
				Expected: fmt.Sprintf("cos theta in [%g, %g)", lo, hi),
				Actual:   fmt.Sprintf("%g", ev.CosTheta),
				Event:    i + 1,
			}
		}
	}
	return nil
}

func assertReplicasConsistent(r *Result, a Assertion) error {
	sigmas := orDefault(a.Sigmas, DefaultSigmas)
	fraction := orDefault(a.Fraction, DefaultFraction)
	if len(r.Replicas) == 0 {
		return &AssertionError{
			Type:     AssertReplicasConsistent,
			Expected: "at least one replica",
			Actual:   "none",
		}
	}

	within := 0
	for _, rep := range r.Replicas {
		if replicaAgrees(rep, r.Combined, sigmas) {
			within++
		}
	}
	got := float64(within) / float64(len(r.Replicas))
	if got >= fraction {
		return nil
	}
	return &AssertionError{
		Type:     AssertReplicasConsistent,
		Expected: fmt.Sprintf("at least %g of replicas within %g standard errors of the remaining samples", fraction, sigmas),
		Actual:   fmt.Sprintf("%d of %d", within, len(r.Replicas)),
	}
}

// replicaAgrees compares rep with the combination of every other sample,
// so the two estimates are independent. combined must include rep.
func replicaAgrees(rep, combined engine.Integration, sigmas float64) bool {
	restN := combined.Samples - rep.Samples
	if rep.Samples <= 0 || restN <= 0 {
		return false
	}
	rest := (float64(combined.Samples)*combined.Sigma - float64(rep.Samples)*rep.Sigma) / float64(restN)
	restErr := combined.Error * math.Sqrt(float64(combined.Samples)/float64(restN))
	return math.Abs(rep.Sigma-rest) <= sigmas*math.Hypot(rep.Error, restErr)
}

func assertAnalyticCrossSection(r *Result, a Assertion) error {
	sigmas := orDefault(a.Sigmas, analyticSigmas)
	if r.Analytic <= 0 {
		return &AssertionError{
			Type:     AssertAnalyticCrossSection,
			Expected: "an analytic cross section",
			Actual:   "none available",
		}
	}
	diff := math.Abs(r.Integration.Sigma - r.Analytic)
	if diff <= sigmas*r.Integration.Error {
		return nil
	}
	return &AssertionError{
		Type:     AssertAnalyticCrossSection,
		Expected: fmt.Sprintf("within %g standard errors of %g", sigmas, r.Analytic),
		Actual:   fmt.Sprintf("%g +- %g", r.Integration.Sigma, r.Integration.Error),
	}
}

var checks = map[string]func(*Result, Assertion) error{
	AssertPositiveCrossSection:   assertPositiveCrossSection,
	AssertErrorBelowCrossSection: assertErrorBelowCrossSection,
	AssertMaxWeightPositive:      assertMaxWeightPositive,
	AssertEventCount:             assertEventCount,
	AssertParticleCount:          assertParticleCount,
	AssertMomentumConserved:      assertMomentumConserved,
	AssertIncomingEnergy:         assertIncomingEnergy,
	AssertCosThetaWindow:         assertCosThetaWindow,
	AssertReplicasConsistent:     assertReplicasConsistent,
	AssertAnalyticCrossSection:   assertAnalyticCrossSection,
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		check, ok := checks[assertion.Type]
		if !ok {
			errors = append(errors, fmt.Sprintf("assertion[%d]: unknown assertion type %q", i, assertion.Type))
			continue
		}
		if err := check(result, assertion); err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
