// Package pdf provides parton distribution functions.
//
// A Provider answers x·f(x, Q) queries by PDG flavour id (1 d, 2 u, 3 s,
// 4 c, 5 b, negative for antiquarks, 21 or 0 for the gluon). Two providers
// exist:
//
//   - Builtin: an analytic, sum-rule-normalised set at a fixed scale. It
//     needs no data files and is the default.
//   - Grid: a member of an LHAPDF6 set (lhagrid1 format) read from disk and
//     interpolated bilinearly in (ln x, ln Q).
//
// Providers are read-only after construction and safe for concurrent use.
package pdf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BuiltinName selects the analytic set in Load.
const BuiltinName = "builtin"

// Gluon is the PDG id of the gluon.
const Gluon = 21

// ErrSetNotFound is returned by Load when no search path holds the set.
var ErrSetNotFound = errors.New("pdf set not found")

// Provider returns momentum-weighted parton densities.
type Provider interface {
	// XfxQ returns x·f(x, Q) for flavour id. Unknown flavours give 0.
	XfxQ(id int, x, q float64) float64

	// Name identifies the set.
	Name() string
}

// Load resolves a set by name. "builtin" returns the analytic set; any
// other name is looked up as <path>/<name>/<name>.info on each search path
// and member 0 is loaded.
func Load(set string, paths []string) (Provider, error) {
	if set == "" || set == BuiltinName {
		return NewBuiltin(), nil
	}

	for _, dir := range paths {
		if dir == "" {
			continue
		}
		info := filepath.Join(dir, set, set+".info")
		if _, err := os.Stat(info); err == nil {
			return LoadGrid(dir, set, 0)
		}
	}

	return nil, fmt.Errorf("%w: %q (searched %s)", ErrSetNotFound, set, strings.Join(paths, ", "))
}
