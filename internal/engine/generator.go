package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/partonmc/internal/kinematics"
	"github.com/roach88/partonmc/internal/rng"
	"github.com/roach88/partonmc/internal/sampling"
)

// DefaultSamples is the number of integration-phase samples.
const DefaultSamples = 1_000_000

// LowEfficiency is the expected acceptance rate below which a warning is
// logged after integration.
const LowEfficiency = 1e-3

// checkInterval is how many iterations pass between context checks.
const checkInterval = 1 << 14

// State is the generator phase.
type State int

const (
	Integrating State = iota
	Generating
	Done
)

func (s State) String() string {
	switch s {
	case Integrating:
		return "integrating"
	case Generating:
		return "generating"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ProgressFunc is called roughly every 1% of a phase.
type ProgressFunc func(phase State, done, total int64)

// Sink receives accepted events; i counts from 1. A non-nil error stops
// generation.
type Sink func(i int, ev kinematics.Event) error

// Generator runs a Process through integration and event generation.
//
// A Generator is single-use and not safe for concurrent use; run replicas
// on separate Generators with separate rng streams.
type Generator struct {
	proc      Process
	samples   int64
	maxTrials int64
	progress  ProgressFunc
	logger    *slog.Logger
	runIDs    RunIDGenerator
	state     State
}

// Option configures a Generator.
type Option func(*Generator)

// WithSamples sets the number of integration samples.
//
// Default: 1,000,000 (DefaultSamples).
func WithSamples(n int64) Option {
	return func(g *Generator) {
		g.samples = n
	}
}

// WithMaxTrials caps the number of phase-two trials. Zero means no cap.
func WithMaxTrials(n int64) Option {
	return func(g *Generator) {
		g.maxTrials = n
	}
}

// WithProgress installs a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(g *Generator) {
		g.progress = fn
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

// WithRunIDs sets the run ID source. Default: UUIDv7Generator.
func WithRunIDs(gen RunIDGenerator) Option {
	return func(g *Generator) {
		g.runIDs = gen
	}
}

// New creates a Generator for proc.
func New(proc Process, opts ...Option) *Generator {
	g := &Generator{
		proc:    proc,
		samples: DefaultSamples,
		logger:  slog.Default(),
		runIDs:  UUIDv7Generator{},
		state:   Integrating,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// State returns the current phase.
func (g *Generator) State() State {
	return g.state
}

// Samples returns the configured number of integration samples.
func (g *Generator) Samples() int64 {
	return g.samples
}

// Accumulate draws n points from src into a fresh Accumulator. It does not
// change the generator state, so it can be used for independent replicas.
func (g *Generator) Accumulate(ctx context.Context, src rng.Source, n int64) (Accumulator, error) {
	var acc Accumulator
	step := progressStep(n)
	for i := int64(0); i < n; i++ {
		if i%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return acc, err
			}
		}
		p := g.proc.Sample(src)
		acc.Add(p.Weight, p.CosTheta)
		if g.progress != nil && (i+1)%step == 0 {
			g.progress(Integrating, i+1, n)
		}
	}
	return acc, nil
}

// Integrate runs phase one and moves the generator to Generating.
func (g *Generator) Integrate(ctx context.Context, src rng.Source) (Integration, error) {
	if g.state != Integrating {
		return Integration{}, NewPhaseOrderError(g.proc.Name(), Integrating, g.state)
	}

	g.logger.Debug("integration starting", "process", g.proc.Name(), "samples", g.samples)
	acc, err := g.Accumulate(ctx, src, g.samples)
	if err != nil {
		return Integration{}, fmt.Errorf("integrate: %w", err)
	}
	return g.Finalize(acc)
}

// Finalize ends phase one with an accumulator built by Accumulate and
// moves the generator to Generating.
func (g *Generator) Finalize(acc Accumulator) (Integration, error) {
	if g.state != Integrating {
		return Integration{}, NewPhaseOrderError(g.proc.Name(), Integrating, g.state)
	}

	res := acc.Result()
	res.RunID = g.runIDs.Generate()
	g.state = Generating

	g.logger.Debug("integration finished",
		"run_id", res.RunID,
		"samples", res.Samples,
		"sigma_pb", res.SigmaPb(),
		"error_pb", res.ErrorPb(),
		"max_weight", res.MaxWeight,
		"costh_at_max", res.CosThetaAtMax,
	)
	if eff := res.ExpectedEfficiency(); res.MaxWeight > 0 && eff < LowEfficiency {
		g.logger.Warn("low expected rejection efficiency",
			"process", g.proc.Name(),
			"efficiency", eff,
		)
	}
	return res, nil
}

// Generate runs phase two: hit-or-miss sampling against res.MaxWeight
// until n events have been handed to sink. The generator must be in the
// Generating state; it ends in Done on success.
func (g *Generator) Generate(ctx context.Context, src rng.Source, res Integration, n int, sink Sink) (Stats, error) {
	var stats Stats
	name := g.proc.Name()
	if g.state != Generating {
		return stats, NewPhaseOrderError(name, Generating, g.state)
	}
	if res.MaxWeight <= 0 {
		return stats, NewZeroMaxWeightError(name, res.MaxWeight)
	}

	g.logger.Debug("generation starting", "process", name, "events", n, "max_weight", res.MaxWeight)
	wmax := res.MaxWeight
	step := progressStep(int64(n))
	warned := false

	for stats.Accepted < int64(n) {
		if stats.Trials%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return stats, fmt.Errorf("generate: %w", err)
			}
		}
		if g.maxTrials > 0 && stats.Trials >= g.maxTrials {
			return stats, NewTrialLimitError(name, stats, n)
		}

		p := g.proc.Sample(src)
		stats.Trials++
		if p.Weight > wmax {
			stats.Overweight++
			if !warned {
				g.logger.Warn("weight exceeds integration maximum",
					"process", name,
					"weight", p.Weight,
					"max_weight", wmax,
				)
				warned = true
			}
		}
		if src.Float64()*wmax >= p.Weight {
			continue
		}

		stats.Accepted++
		ev := g.proc.Build(p, sampling.Phi(src))
		if err := sink(int(stats.Accepted), ev); err != nil {
			return stats, fmt.Errorf("sink event %d: %w", stats.Accepted, err)
		}
		if g.progress != nil && stats.Accepted%step == 0 {
			g.progress(Generating, stats.Accepted, int64(n))
		}
	}

	g.state = Done
	g.logger.Debug("generation finished",
		"trials", stats.Trials,
		"accepted", stats.Accepted,
		"efficiency", stats.Efficiency(),
		"overweight", stats.Overweight,
	)
	return stats, nil
}

func progressStep(total int64) int64 {
	if total < 100 {
		return 1
	}
	return total / 100
}
