// Package rng provides the uniform variate streams consumed by the samplers.
//
// Every sampling component takes a Source explicitly. There is no package
// level generator: a run is reproducible from its seed, and independent
// streams for separate phases or replicas are derived with Stream.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Source supplies independent uniform variates in [0, 1).
type Source interface {
	Float64() float64
}

// PCG is a seeded Source backed by the PCG generator from math/rand/v2.
//
// Not safe for concurrent use. Give each goroutine its own stream.
type PCG struct {
	seed  uint64
	index uint64
	r     *rand.Rand
}

// New creates the base stream (index 0) for seed.
func New(seed uint64) *PCG {
	return Stream(seed, 0)
}

// Stream creates the index-th stream of seed.
//
// Streams with different indices are seeded from disjoint splitmix64
// outputs, so phase one, phase two and replica runs never share state.
func Stream(seed, index uint64) *PCG {
	x := seed ^ 0x9e3779b97f4a7c15
	x += index * 0xbf58476d1ce4e5b9
	hi := splitmix64(x)
	lo := splitmix64(x ^ 0xda942042e4dd58b5)
	return &PCG{
		seed:  seed,
		index: index,
		r:     rand.New(rand.NewPCG(hi, lo)),
	}
}

// Float64 returns a uniform variate in [0, 1).
func (p *PCG) Float64() float64 {
	return p.r.Float64()
}

// Seed returns the seed this stream was derived from.
func (p *PCG) Seed() uint64 {
	return p.seed
}

// Index returns the stream index.
func (p *PCG) Index() uint64 {
	return p.index
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
