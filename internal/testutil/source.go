// Package testutil holds deterministic helpers shared by package tests.
package testutil

import "sync"

// SequenceSource replays a fixed list of uniform variates.
//
// This makes sampler and kinematics tests exact: a test states which
// variates the code under test will see and checks the closed-form result.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type SequenceSource struct {
	mu     sync.Mutex
	values []float64
	idx    int
}

// NewSequenceSource creates a source that returns values in order.
//
// Example:
//
//	src := NewSequenceSource(0.25, 0.5)
//	src.Float64() // 0.25
//	src.Float64() // 0.5
//	src.Float64() // panic: all values consumed
func NewSequenceSource(values ...float64) *SequenceSource {
	return &SequenceSource{values: values}
}

// Float64 returns the next predetermined variate.
//
// Panics when the sequence is exhausted, so a test that consumes more
// variates than it declared fails loudly.
func (s *SequenceSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.idx >= len(s.values) {
		panic("SequenceSource: all values consumed")
	}
	v := s.values[s.idx]
	s.idx++
	return v
}

// Consumed returns how many variates have been drawn.
func (s *SequenceSource) Consumed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idx
}

// Reset rewinds the source to the first value.
func (s *SequenceSource) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idx = 0
}

// ConstantSource returns the same variate forever.
//
// Thread-safety: ConstantSource is stateless and safe for concurrent use.
type ConstantSource struct {
	value float64
}

// NewConstantSource creates a source that always returns v.
func NewConstantSource(v float64) ConstantSource {
	return ConstantSource{value: v}
}

// Float64 returns the constant variate.
func (c ConstantSource) Float64() float64 {
	return c.value
}
