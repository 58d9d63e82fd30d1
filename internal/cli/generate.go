package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/roach88/partonmc/internal/config"
	"github.com/roach88/partonmc/internal/engine"
	"github.com/roach88/partonmc/internal/kinematics"
	"github.com/roach88/partonmc/internal/physics"
	"github.com/roach88/partonmc/internal/process"
	"github.com/roach88/partonmc/internal/report"
	"github.com/roach88/partonmc/internal/rng"
	"github.com/roach88/partonmc/internal/sampling"
	"github.com/roach88/partonmc/internal/store"
)

// GenerateOptions holds the flags shared by the ee and pp commands. A flag
// only overrides the configuration when it is set explicitly.
type GenerateOptions struct {
	*RootOptions
	Samples   int64
	Seed      uint64
	Window    float64
	MaxTrials int64
	PDF       string
	PDFPath   []string
	Database  string
	Quiet     bool

	ECM   float64 // ee only
	QMin  float64 // pp only
	Mass  float64
	Width float64
	Scale float64

	// RunIDs overrides the run ID source (for tests).
	RunIDs engine.RunIDGenerator
}

// GenerateResult is the JSON payload of a generator run.
type GenerateResult struct {
	Process    string      `json:"process"`
	ECM        float64     `json:"ecm"`
	Seed       uint64      `json:"seed"`
	Samples    int64       `json:"samples"`
	SigmaPb    float64     `json:"sigma_pb"`
	ErrorPb    float64     `json:"error_pb"`
	AnalyticPb float64     `json:"analytic_pb,omitempty"`
	MaxWeight  float64     `json:"max_weight"`
	CosThAtMax float64     `json:"costh_at_max"`
	Trials     int64       `json:"trials"`
	Accepted   int64       `json:"accepted"`
	Overweight int64       `json:"overweight,omitempty"`
	Efficiency float64     `json:"efficiency"`
	Events     []EventView `json:"events"`
}

// EventView is the JSON form of one event.
type EventView struct {
	Index     int            `json:"index"`
	CosTheta  float64        `json:"costh"`
	Phi       float64        `json:"phi"`
	X1        float64        `json:"x1,omitempty"`
	X2        float64        `json:"x2,omitempty"`
	Particles []ParticleView `json:"particles"`
}

// ParticleView is the JSON form of one particle.
type ParticleView struct {
	Label string  `json:"label"`
	E     float64 `json:"e"`
	Px    float64 `json:"px"`
	Py    float64 `json:"py"`
	Pz    float64 `json:"pz"`
}

func newEventView(i int, ev kinematics.Event) EventView {
	v := EventView{Index: i, CosTheta: ev.CosTheta, Phi: ev.Phi, X1: ev.X1, X2: ev.X2}
	for _, p := range ev.Particles {
		v.Particles = append(v.Particles, ParticleView{
			Label: p.Label, E: p.P.E, Px: p.P.Px, Py: p.P.Py, Pz: p.P.Pz,
		})
	}
	return v
}

func addGenerateFlags(fs *pflag.FlagSet, opts *GenerateOptions) {
	fs.Int64Var(&opts.Samples, "samples", engine.DefaultSamples, "integration samples")
	fs.Uint64Var(&opts.Seed, "seed", 0, "random seed (0 picks one)")
	fs.Float64Var(&opts.Window, "window", sampling.DefaultWindow, "cos theta window width in (0, 2]")
	fs.Int64Var(&opts.MaxTrials, "max-trials", 0, "cap on generation trials (0 means no cap)")
	fs.StringVar(&opts.Database, "db", "", "SQLite run ledger to record the run in")
	fs.BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress progress output")
}

// applyFlags overlays explicitly set flags on cfg.
func applyFlags(fs *pflag.FlagSet, opts *GenerateOptions, cfg *config.Config) {
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("samples", func() { cfg.Samples = opts.Samples })
	set("seed", func() { cfg.Seed = opts.Seed })
	set("window", func() { cfg.Window = opts.Window })
	set("max-trials", func() { cfg.MaxTrials = opts.MaxTrials })
	set("pdf", func() { cfg.PDF = opts.PDF })
	set("pdf-path", func() { cfg.PDFPath = opts.PDFPath })
	set("db", func() { cfg.Database = opts.Database })
	set("quiet", func() { cfg.Quiet = opts.Quiet })
	set("ecm", func() { cfg.Leptonic.ECM = opts.ECM })
	set("qmin", func() { cfg.Hadronic.QMin = opts.QMin })
	set("mass", func() { cfg.Hadronic.Mass = opts.Mass })
	set("width", func() { cfg.Hadronic.Width = opts.Width })
	set("scale", func() { cfg.Hadronic.Scale = opts.Scale })
}

// usageArgs validates the positional argument count, reporting a usage
// error with exit code 2.
func usageArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return NewExitError(ExitCommandError,
				fmt.Sprintf("usage: partonmc %s (got %d arguments)", usage, len(args)))
		}
		return nil
	}
}

func parseEvents(s, usage string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, NewExitError(ExitCommandError,
			fmt.Sprintf("usage: partonmc %s: nevent must be a positive integer, got %q", usage, s))
	}
	return n, nil
}

func parseEnergy(s, usage string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, NewExitError(ExitCommandError,
			fmt.Sprintf("usage: partonmc %s: ECM must be a positive number, got %q", usage, s))
	}
	return v, nil
}

// generation is one resolved ee or pp run.
type generation struct {
	kind   string
	ecm    float64 // pp only; ee takes it from the configuration
	events int
}

func runGenerate(cmd *cobra.Command, opts *GenerateOptions, g generation) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	applyFlags(cmd.Flags(), opts, &cfg)
	if err := config.Validate(cfg); err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	seed := cfg.Seed
	if seed == 0 {
		if seed, err = rng.NewSeed(); err != nil {
			return WrapExitError(ExitFailure, "failed to draw a seed", err)
		}
	}

	pc := process.Config{
		Kind:    g.kind,
		ECM:     g.ecm,
		Window:  cfg.Window,
		PDF:     cfg.PDF,
		PDFPath: cfg.PDFPath,
		QMin:    cfg.Hadronic.QMin,
		Mass:    cfg.Hadronic.Mass,
		Width:   cfg.Hadronic.Width,
		Scale:   cfg.Hadronic.Scale,
	}
	header := report.Header{Samples: cfg.Samples, Seed: seed}
	if g.kind == process.KindLeptonic {
		pc.ECM = cfg.Leptonic.ECM
	} else {
		header.PDF = cfg.PDF
		header.Scale = cfg.Hadronic.Scale
	}
	header.ECM = pc.ECM

	proc, err := process.New(pc)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to set up process", err)
	}
	header.Process = proc.Name()

	genOpts := []engine.Option{
		engine.WithSamples(cfg.Samples),
		engine.WithMaxTrials(cfg.MaxTrials),
		engine.WithLogger(logger),
	}
	if opts.RunIDs != nil {
		genOpts = append(genOpts, engine.WithRunIDs(opts.RunIDs))
	}
	if !cfg.Quiet {
		genOpts = append(genOpts, engine.WithProgress(report.Progress(cmd.ErrOrStderr())))
	}
	gen := engine.New(proc, genOpts...)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("integrating", "process", proc.Name(), "ecm", pc.ECM, "samples", cfg.Samples, "seed", seed)
	res, err := gen.Integrate(ctx, rng.Stream(seed, 0))
	if err != nil {
		return WrapExitError(ExitFailure, "integration failed", err)
	}

	var analytic float64
	if a, ok := proc.(process.Analytic); ok {
		analytic = a.Analytic() * physics.PbConv
	}

	jsonOut := opts.Format == "json"
	rw := report.New(cmd.OutOrStdout())
	if !jsonOut {
		rw.Header(header)
		rw.Integration(res)
		if analytic > 0 {
			rw.Analytic(analytic)
		}
	}

	var events []EventView
	logger.Info("generating", "events", g.events, "max_weight", res.MaxWeight)
	stats, err := gen.Generate(ctx, rng.Stream(seed, 1), res, g.events, func(i int, ev kinematics.Event) error {
		if jsonOut {
			events = append(events, newEventView(i, ev))
			return nil
		}
		rw.Event(i, ev)
		return rw.Err()
	})
	if err != nil {
		var rerr *engine.RuntimeError
		if jsonOut && errors.As(err, &rerr) {
			f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			_ = f.Error(string(rerr.Code), rerr.Message, rerr.Details)
		}
		return WrapExitError(ExitFailure, "generation failed", err)
	}

	if cfg.Database != "" {
		if err := recordRun(ctx, logger, cfg, g.kind, pc.ECM, seed, res, stats); err != nil {
			return WrapExitError(ExitFailure, "failed to record run", err)
		}
	}

	if !jsonOut {
		rw.Summary(stats)
		return rw.Err()
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return f.SuccessWithRun(res.RunID, GenerateResult{
		Process:    proc.Name(),
		ECM:        pc.ECM,
		Seed:       seed,
		Samples:    res.Samples,
		SigmaPb:    res.SigmaPb(),
		ErrorPb:    res.ErrorPb(),
		AnalyticPb: analytic,
		MaxWeight:  res.MaxWeight,
		CosThAtMax: res.CosThetaAtMax,
		Trials:     stats.Trials,
		Accepted:   stats.Accepted,
		Overweight: stats.Overweight,
		Efficiency: stats.Efficiency(),
		Events:     events,
	})
}

func recordRun(ctx context.Context, logger *slog.Logger, cfg config.Config, kind string, ecm float64, seed uint64, res engine.Integration, stats engine.Stats) error {
	st, err := store.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	run := store.Run{
		ID:            res.RunID,
		Process:       kind,
		ECM:           ecm,
		Seed:          seed,
		Window:        cfg.Window,
		Samples:       res.Samples,
		Events:        stats.Accepted,
		Trials:        stats.Trials,
		SigmaPb:       res.SigmaPb(),
		ErrorPb:       res.ErrorPb(),
		MaxWeight:     res.MaxWeight,
		CosThetaAtMax: res.CosThetaAtMax,
		Efficiency:    stats.Efficiency(),
	}
	if kind == process.KindHadronic {
		run.PDF = cfg.PDF
	}
	seq, err := st.WriteRun(ctx, run)
	if err != nil {
		return err
	}
	logger.Debug("run recorded", "db", cfg.Database, "seq", seq, "run_id", res.RunID)
	return nil
}
