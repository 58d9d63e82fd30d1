package engine

import (
	"math"

	"github.com/roach88/partonmc/internal/physics"
)

// Accumulator holds the running sums of the integration phase.
//
// The zero value is an empty accumulator ready for use.
type Accumulator struct {
	n             int64
	sum           float64
	sum2          float64
	maxWeight     float64
	cosThetaAtMax float64
}

// Add records one sampled weight and the cos θ it was drawn at.
func (a *Accumulator) Add(w, costh float64) {
	a.n++
	a.sum += w
	a.sum2 += w * w
	if w > a.maxWeight {
		a.maxWeight = w
		a.cosThetaAtMax = costh
	}
}

// Merge folds b into a. Sums add and the maximum is a max-reduction; ties
// keep the smaller cos θ so the result does not depend on merge order.
func (a *Accumulator) Merge(b Accumulator) {
	a.n += b.n
	a.sum += b.sum
	a.sum2 += b.sum2
	if b.maxWeight > a.maxWeight || (b.maxWeight == a.maxWeight && b.cosThetaAtMax < a.cosThetaAtMax) {
		a.maxWeight = b.maxWeight
		a.cosThetaAtMax = b.cosThetaAtMax
	}
}

// N returns the number of recorded samples.
func (a Accumulator) N() int64 {
	return a.n
}

// NoCosTheta marks CosThetaAtMax when no sample had a positive weight. It
// lies outside [-1, 1].
const NoCosTheta = -2.0

// Result finalizes the accumulator. The variance is clamped at zero to
// absorb roundoff when every weight is equal.
func (a Accumulator) Result() Integration {
	if a.n == 0 {
		return Integration{CosThetaAtMax: NoCosTheta}
	}
	n := float64(a.n)
	mean := a.sum / n
	variance := math.Max(0, a.sum2/n-mean*mean)
	res := Integration{
		Samples:       a.n,
		Sigma:         mean,
		Error:         math.Sqrt(variance / n),
		MaxWeight:     a.maxWeight,
		CosThetaAtMax: a.cosThetaAtMax,
	}
	if a.maxWeight <= 0 {
		res.CosThetaAtMax = NoCosTheta
	}
	return res
}

// Integration is the immutable outcome of phase one, in natural units
// (GeV⁻²).
type Integration struct {
	RunID         string  `json:"run_id,omitempty"`
	Samples       int64   `json:"samples"`
	Sigma         float64 `json:"sigma"`
	Error         float64 `json:"error"`
	MaxWeight     float64 `json:"max_weight"`
	CosThetaAtMax float64 `json:"costh_at_max"`
}

// SigmaPb returns the cross section in picobarns.
func (r Integration) SigmaPb() float64 {
	return r.Sigma * physics.PbConv
}

// ErrorPb returns the standard error in picobarns.
func (r Integration) ErrorPb() float64 {
	return r.Error * physics.PbConv
}

// ExpectedEfficiency is the acceptance rate phase two should see, σ/wmax.
// Zero when the envelope is empty.
func (r Integration) ExpectedEfficiency() float64 {
	if r.MaxWeight <= 0 {
		return 0
	}
	return r.Sigma / r.MaxWeight
}

// Stats summarises a generation phase.
type Stats struct {
	Trials     int64 `json:"trials"`
	Accepted   int64 `json:"accepted"`
	Overweight int64 `json:"overweight"`
}

// Efficiency is Accepted/Trials, or zero before the first trial.
func (s Stats) Efficiency() float64 {
	if s.Trials == 0 {
		return 0
	}
	return float64(s.Accepted) / float64(s.Trials)
}
