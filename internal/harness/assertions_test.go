package harness

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/partonmc/internal/engine"
	"github.com/roach88/partonmc/internal/kinematics"
)

func goodResult() *Result {
	r := NewResult("unit")
	r.ECM = 90
	r.Window = 2
	r.Integration = engine.Integration{Sigma: 1e-5, Error: 1e-8, MaxWeight: 2e-5}
	r.Analytic = 1e-5 + 2e-8
	r.Events = []kinematics.Event{
		kinematics.Leptonic(0.5, 1, 90),
		kinematics.Leptonic(-0.9, 4, 90),
	}
	// Primary plus four replicas of 1000 samples each.
	r.Combined = engine.Integration{Sigma: 1e-5 + 1e-8, Error: 0.5e-8, Samples: 5000}
	r.Replicas = []engine.Integration{
		{Sigma: 1e-5 + 1e-8, Error: 1e-8, Samples: 1000},
		{Sigma: 1e-5 - 1e-8, Error: 1e-8, Samples: 1000},
		{Sigma: 1e-5 + 5e-8, Error: 1e-8, Samples: 1000},
		{Sigma: 1e-5, Error: 1e-8, Samples: 1000},
	}
	return r
}

func TestEvaluateAssertions_AllPass(t *testing.T) {
	assertions := []Assertion{
		{Type: AssertPositiveCrossSection},
		{Type: AssertErrorBelowCrossSection},
		{Type: AssertMaxWeightPositive},
		{Type: AssertEventCount, Count: 2},
		{Type: AssertParticleCount, Count: 4},
		{Type: AssertMomentumConserved},
		{Type: AssertIncomingEnergy},
		{Type: AssertCosThetaWindow},
		{Type: AssertReplicasConsistent, Fraction: 0.5},
		{Type: AssertAnalyticCrossSection},
	}
	assert.Empty(t, EvaluateAssertions(goodResult(), assertions))
}

func TestEvaluateAssertions_Failures(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Result)
		assertion Assertion
		want      string
	}{
		{"zero sigma", func(r *Result) { r.Integration.Sigma = 0 }, Assertion{Type: AssertPositiveCrossSection}, "cross section > 0"},
		{"large error", func(r *Result) { r.Integration.Error = 2e-5 }, Assertion{Type: AssertErrorBelowCrossSection}, "error <"},
		{"zero max", func(r *Result) { r.Integration.MaxWeight = 0 }, Assertion{Type: AssertMaxWeightPositive}, "maximum weight > 0"},
		{"event count", func(r *Result) {}, Assertion{Type: AssertEventCount, Count: 3}, "3 events"},
		{"particle count", func(r *Result) { r.Events[1].Particles = r.Events[1].Particles[:3] }, Assertion{Type: AssertParticleCount, Count: 4}, "Event: 2"},
		{"momentum", func(r *Result) { r.Events[0].Particles[2].P.E += 1 }, Assertion{Type: AssertMomentumConserved}, "imbalance within"},
		{"incoming energy", func(r *Result) { r.ECM = 100 }, Assertion{Type: AssertIncomingEnergy}, "e- energy 50"},
		{"window", func(r *Result) { r.Window = 1 }, Assertion{Type: AssertCosThetaWindow}, "cos theta in [-1, 0)"},
		{"replicas", func(r *Result) {}, Assertion{Type: AssertReplicasConsistent, Fraction: 1}, "2 of 4"},
		{"no replicas", func(r *Result) { r.Replicas = nil }, Assertion{Type: AssertReplicasConsistent}, "at least one replica"},
		{"analytic", func(r *Result) { r.Analytic = 2e-5 }, Assertion{Type: AssertAnalyticCrossSection}, "within 4 standard errors"},
		{"no analytic", func(r *Result) { r.Analytic = 0 }, Assertion{Type: AssertAnalyticCrossSection}, "none available"},
		{"unknown", func(r *Result) {}, Assertion{Type: "bogus"}, "unknown assertion type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := goodResult()
			tt.mutate(r)
			errs := EvaluateAssertions(r, []Assertion{tt.assertion})
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0], tt.want)
		})
	}
}

func TestReplicasComparedWithRemainingSamples(t *testing.T) {
	r := NewResult("loo")
	// A replica at 14 merged with a primary at 10 gives 12. Against the
	// merged value the replica sits two errors away; against the primary
	// alone it is four away.
	r.Combined = engine.Integration{Sigma: 12, Error: math.Sqrt(0.5), Samples: 2000}
	r.Replicas = []engine.Integration{{Sigma: 14, Error: 1, Samples: 1000}}

	errs := EvaluateAssertions(r, []Assertion{{Type: AssertReplicasConsistent, Sigmas: 2, Fraction: 1}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "0 of 1")

	r.Replicas[0].Sigma = 11
	assert.Empty(t, EvaluateAssertions(r, []Assertion{{Type: AssertReplicasConsistent, Sigmas: 2, Fraction: 1}}))
}

func TestReplicaWithoutRemainingSamplesFails(t *testing.T) {
	r := NewResult("alone")
	r.Combined = engine.Integration{Sigma: 1, Error: 0.1, Samples: 1000}
	r.Replicas = []engine.Integration{{Sigma: 1, Error: 0.1, Samples: 1000}}

	assert.Len(t, EvaluateAssertions(r, []Assertion{{Type: AssertReplicasConsistent, Fraction: 1}}), 1)
}

func TestIncomingEnergyUsesFractions(t *testing.T) {
	r := NewResult("pp")
	r.ECM = 13000
	r.Events = []kinematics.Event{kinematics.Hadronic(0.1, 0.2, 0.01, 0.05, 0.0005*13000*13000, 13000)}

	assert.Empty(t, EvaluateAssertions(r, []Assertion{{Type: AssertIncomingEnergy}}))

	r.Events[0].X1 = 0.02
	assert.Len(t, EvaluateAssertions(r, []Assertion{{Type: AssertIncomingEnergy}}), 1)
}

func TestAssertionErrorFormat(t *testing.T) {
	err := &AssertionError{Type: "event_count", Expected: "5 events", Actual: "4 events"}
	assert.Equal(t, "Assertion failed: event_count\n  Expected: 5 events\n  Actual: 4 events", err.Error())

	err.Event = 3
	assert.Contains(t, err.Error(), "\n  Event: 3")
}

func TestResultAddError(t *testing.T) {
	r := NewResult("x")
	assert.True(t, r.Pass)
	r.AddError("boom")
	assert.False(t, r.Pass)
	assert.Equal(t, []string{"boom"}, r.Errors)
}
