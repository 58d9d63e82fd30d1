// Package engine implements the two-phase Monte Carlo generator.
//
// A Generator drives a Process (the weight function plus its sampling
// transforms) through two phases:
//
// Integrating:
// N points are drawn and their weights accumulated into Σw and Σw² along
// with the running maximum weight. The phase ends with an immutable
// Integration value: the cross section Σw/N, its standard error
// √(var/N) and the maximum weight.
//
// Generating:
// Hit-or-miss rejection sampling against the phase-one maximum. A fresh
// point is drawn from the same distributions and accepted when a uniform
// variate falls below w/wmax. Accepted points are turned into events and
// handed to a sink. The expected efficiency is σ/wmax.
//
// Done:
// The requested number of events has been produced.
//
// ARCHITECTURE:
//
// The phase-one result is threaded into phase two as a value; nothing the
// second phase does can alter it. Both loops are single-threaded and take
// their uniform variates from an explicit rng.Source, so a run is fully
// determined by its seed. Independent replicas use separate rng streams
// and combine through Accumulator.Merge, which is associative and
// commutative.
//
// Degenerate outcomes (a zero envelope, a trial cap reached) are reported
// as RuntimeError values; see IsDegenerate.
package engine
