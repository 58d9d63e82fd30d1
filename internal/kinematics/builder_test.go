package kinematics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/partonmc/internal/rng"
)

func TestUnitPairIsMassless(t *testing.T) {
	in, out := UnitPair(0.3, 1.2)
	for _, p := range append(in[:], out[:]...) {
		assert.InDelta(t, 0, p.Mass2(), 1e-15)
		assert.Equal(t, 1.0, p.E)
	}
	assert.InDelta(t, 0.3, out[0].Pz, 1e-15)
	assert.InDelta(t, -0.3, out[1].Pz, 1e-15)
}

func TestUnitPairClampsRoundoff(t *testing.T) {
	_, out := UnitPair(-1, 0)
	assert.False(t, math.IsNaN(out[0].Px))
	assert.Equal(t, -1.0, out[0].Pz)
}

func TestLeptonicEvent(t *testing.T) {
	ev := Leptonic(0, 0, 90)

	require.Len(t, ev.Particles, 4)
	labels := []string{ev.Particles[0].Label, ev.Particles[1].Label, ev.Particles[2].Label, ev.Particles[3].Label}
	assert.Equal(t, []string{"e-", "e+", "mu-", "mu+"}, labels)
	assert.Equal(t, NewFourMomentum(45, 0, 0, 45), ev.Particles[0].P)
	assert.Equal(t, NewFourMomentum(45, 0, 0, -45), ev.Particles[1].P)
	assert.InDelta(t, 45, ev.Particles[2].P.Px, 1e-12)
	assert.Len(t, ev.Incoming(), 2)
	assert.Len(t, ev.Outgoing(), 2)
	assert.True(t, ev.Conserves(1e-9))
	assert.Equal(t, 8100.0, ev.HatS)
}

func TestLeptonicConservationRandom(t *testing.T) {
	src := rng.New(12)
	for i := 0; i < 1000; i++ {
		c := -1 + 2*src.Float64()
		phi := 2 * math.Pi * src.Float64()
		ev := Leptonic(c, phi, 91.188)
		require.True(t, ev.Conserves(1e-6), "event %d imbalance %v", i, ev.Imbalance())
	}
}

func TestHadronicEventConservation(t *testing.T) {
	const ecm = 13000.0
	s := ecm * ecm
	src := rng.New(21)
	for i := 0; i < 2000; i++ {
		hats := 3600 + (s-3600)*src.Float64()*src.Float64()
		ymax := 0.5 * math.Log(s/hats)
		y := (2*src.Float64() - 1) * ymax
		rt := math.Sqrt(hats / s)
		x1, x2 := rt*math.Exp(y), rt*math.Exp(-y)
		c := -1 + 2*src.Float64()
		phi := 2 * math.Pi * src.Float64()

		ev := Hadronic(c, phi, x1, x2, hats, ecm)
		require.True(t, ev.Conserves(1e-6), "event %d imbalance %v", i, ev.Imbalance())

		assert.InDelta(t, x1*ecm/2, ev.Particles[0].P.E, 1e-9)
		assert.InDelta(t, x2*ecm/2, ev.Particles[1].P.E, 1e-9)
		for _, p := range ev.Outgoing() {
			assert.InDelta(t, 0, p.P.Mass2()/hats, 1e-9)
		}
		pair := ev.Outgoing()[0].P.Add(ev.Outgoing()[1].P)
		assert.InEpsilon(t, hats, pair.Mass2(), 1e-8)
	}
}

func TestHadronicSymmetricIsUnboosted(t *testing.T) {
	hats := 91.188 * 91.188
	s := 13000.0 * 13000.0
	x := math.Sqrt(hats / s)
	ev := Hadronic(0.5, 0, x, x, hats, 13000)

	want := Leptonic(0.5, 0, 91.188)
	for i := 2; i < 4; i++ {
		assert.InDelta(t, want.Particles[i].P.E, ev.Particles[i].P.E, 1e-9)
		assert.InDelta(t, want.Particles[i].P.Pz, ev.Particles[i].P.Pz, 1e-9)
	}
	assert.Equal(t, "q1", ev.Particles[0].Label)
	assert.Equal(t, "q2", ev.Particles[1].Label)
	assert.Equal(t, x, ev.X1)
}
