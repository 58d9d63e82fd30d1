package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/partonmc/internal/engine"
	"github.com/roach88/partonmc/internal/kinematics"
	"github.com/roach88/partonmc/internal/process"
	"github.com/roach88/partonmc/internal/rng"
	"github.com/roach88/partonmc/internal/sampling"
)

// Option configures Run.
type Option func(*runner)

type runner struct {
	logger *slog.Logger
}

// WithLogger routes generator logs to l. By default they are discarded.
func WithLogger(l *slog.Logger) Option {
	return func(r *runner) {
		r.logger = l
	}
}

// Run executes a scenario: integration, optional replicas, generation,
// then assertion evaluation. Configuration errors are returned as errors;
// failed assertions are reported in the Result.
func Run(ctx context.Context, scenario *Scenario, opts ...Option) (*Result, error) {
	r := &runner{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(r)
	}

	window := scenario.Window
	if window == 0 {
		window = sampling.DefaultWindow
	}
	proc, err := process.New(process.Config{
		Kind:    scenario.Process,
		ECM:     scenario.ECM,
		Window:  window,
		PDF:     scenario.PDF,
		PDFPath: scenario.PDFPath,
	})
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	gen := engine.New(proc,
		engine.WithSamples(scenario.Samples),
		engine.WithLogger(r.logger),
		engine.WithRunIDs(engine.NewFixedGenerator(scenario.Name)),
	)

	result := NewResult(scenario.Name)
	result.Process = proc.Name()
	result.Window = window
	switch p := proc.(type) {
	case *process.Leptonic:
		result.ECM = p.ECM()
	case *process.Hadronic:
		result.ECM = p.ECM()
	}
	if a, ok := proc.(process.Analytic); ok {
		result.Analytic = a.Analytic()
	}

	primary, err := gen.Accumulate(ctx, rng.Stream(scenario.Seed, 0), scenario.Samples)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	combined := primary
	for i := 0; i < scenario.Replicas; i++ {
		acc, err := gen.Accumulate(ctx, rng.Stream(scenario.Seed, uint64(2+i)), scenario.Samples)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: replica %d: %w", scenario.Name, i, err)
		}
		result.Replicas = append(result.Replicas, acc.Result())
		combined.Merge(acc)
	}
	result.Combined = combined.Result()

	// The rejection envelope comes from the main integration alone.
	res, err := gen.Finalize(primary)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	result.Integration = res

	result.Events = make([]kinematics.Event, 0, scenario.Events)
	stats, err := gen.Generate(ctx, rng.Stream(scenario.Seed, 1), res, scenario.Events,
		func(_ int, ev kinematics.Event) error {
			result.Events = append(result.Events, ev)
			return nil
		})
	result.Stats = stats
	if err != nil {
		if !engine.IsDegenerate(err) {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		result.AddError(err.Error())
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}
