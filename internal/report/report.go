// Package report writes the console report of a generator run.
package report

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/partonmc/internal/engine"
	"github.com/roach88/partonmc/internal/kinematics"
)

// Header describes the run being reported.
type Header struct {
	Process string
	ECM     float64
	Samples int64
	Seed    uint64
	PDF     string  // empty for leptonic runs
	Scale   float64 // PDF scale, printed with PDF
}

// Writer formats report sections. The first write error is kept and
// returned by Err; later writes become no-ops.
type Writer struct {
	w   io.Writer
	p   *message.Printer
	err error
}

// New creates a Writer on w. Counts are printed with English digit
// grouping.
func New(w io.Writer) *Writer {
	return &Writer{w: w, p: message.NewPrinter(language.English)}
}

func (r *Writer) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

func (r *Writer) count(n int64) string {
	return r.p.Sprintf("%d", n)
}

// Err returns the first write error.
func (r *Writer) Err() error {
	return r.err
}

// Header writes the process description.
func (r *Writer) Header(h Header) {
	r.printf("==== %s\n", h.Process)
	r.printf("==== ECM = %g GeV, samples = %s, seed = %d\n", h.ECM, r.count(h.Samples), h.Seed)
	if h.PDF != "" {
		r.printf("==== PDF set = %s, scale = %g GeV\n", h.PDF, h.Scale)
	}
}

// Integration writes the phase-one summary in picobarns.
func (r *Writer) Integration(res engine.Integration) {
	if res.MaxWeight > 0 {
		r.printf("---- Maximum value of dsigma = %g, found at costh = %g\n", res.MaxWeight, res.CosThetaAtMax)
	} else {
		r.printf("---- No sample had a positive dsigma\n")
	}
	r.printf("---- Total cross section = %g +- %g pb\n", res.SigmaPb(), res.ErrorPb())
}

// Analytic writes the exact cross section for comparison.
func (r *Writer) Analytic(pb float64) {
	r.printf("---- Analytic cross section = %g pb\n", pb)
}

// Event writes one event, one particle per line.
func (r *Writer) Event(i int, ev kinematics.Event) {
	r.printf("---- event (%d)\n", i)
	for _, p := range ev.Particles {
		r.printf("%s: %s\n", p.Label, p.P)
	}
}

// Summary writes the acceptance statistics of phase two.
func (r *Writer) Summary(stats engine.Stats) {
	r.printf("---- Accepted %s events in %s trials (efficiency = %.4g)\n",
		r.count(stats.Accepted), r.count(stats.Trials), stats.Efficiency())
	if stats.Overweight > 0 {
		r.printf("---- %s samples exceeded the maximum weight\n", r.count(stats.Overweight))
	}
}

// Progress returns a progress callback printing a percentage line to w.
func Progress(w io.Writer) engine.ProgressFunc {
	return func(phase engine.State, done, total int64) {
		pct := 100 * done / total
		fmt.Fprintf(w, "\r---- %s: %3d%%", phase, pct)
		if done == total {
			fmt.Fprintln(w)
		}
	}
}
