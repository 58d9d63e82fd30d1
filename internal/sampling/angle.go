package sampling

import (
	"fmt"
	"math"

	"github.com/roach88/partonmc/internal/rng"
)

// DefaultWindow integrates the full cosine range.
const DefaultWindow = 2.0

// AngleSampler draws cosθ uniformly over [-1, -1+window).
type AngleSampler struct {
	window float64
}

// NewAngleSampler validates window and returns a sampler.
// The window must lie in (0, 2].
func NewAngleSampler(window float64) (AngleSampler, error) {
	if math.IsNaN(window) || window <= 0 || window > 2 {
		return AngleSampler{}, fmt.Errorf("%w: cos(theta) window must be in (0, 2], got %g", ErrDomain, window)
	}
	return AngleSampler{window: window}, nil
}

// CosTheta draws a cosine in [-1, -1+window).
func (a AngleSampler) CosTheta(src rng.Source) float64 {
	return -1 + a.window*src.Float64()
}

// Window returns the sampled cosine width, the angular Jacobian.
func (a AngleSampler) Window() float64 {
	return a.window
}

// Bounds returns the half-open cosine interval [lo, hi).
func (a AngleSampler) Bounds() (lo, hi float64) {
	return -1, -1 + a.window
}

// Phi draws an azimuth in [0, 2π).
func Phi(src rng.Source) float64 {
	return 2 * math.Pi * src.Float64()
}
