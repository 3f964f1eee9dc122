// SPDX-License-Identifier: MIT
//
// Package rng centralizes deterministic random generation for every
// stochastic step of the engine: availability draws, tree sampling,
// neighbour selection and annealing acceptance.
//
// Goals:
//   - Determinism: same seed ⇒ identical plans across runs.
//   - Encapsulation: no time-based or global sources hidden anywhere.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Never share one across goroutines.
//   - Use Derive to create independent streams for parallel vehicles or restarts.
package rng

import "math/rand"

// DefaultSeed is the fixed seed used when callers pass seed==0.
const DefaultSeed int64 = 1

// FromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ DefaultSeed; otherwise the seed is used verbatim.
//
// Complexity: O(1).
func FromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = DefaultSeed
	}

	return rand.New(rand.NewSource(s))
}

// DeriveSeed mixes a parent seed and a stream identifier into a new seed
// using a SplitMix64 finalizer, so neighbouring stream ids give unrelated
// sequences.
//
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// Derive creates an independent stream from base and a stream identifier.
// If base==nil, DefaultSeed is the parent. Otherwise base.Int63() is consumed
// once, so deriving the same stream id twice still yields different children.
//
// Call during setup, not in hot loops.
func Derive(base *rand.Rand, stream uint64) *rand.Rand {
	parent := DefaultSeed
	if base != nil {
		parent = base.Int63()
	}

	return rand.New(rand.NewSource(DeriveSeed(parent, stream)))
}

// Streams derives n independent generators from base in stream order.
// All draws from base happen here, before any goroutine starts.
func Streams(base *rand.Rand, n int) []*rand.Rand {
	out := make([]*rand.Rand, n)
	for i := range out {
		out[i] = Derive(base, uint64(i))
	}

	return out
}
