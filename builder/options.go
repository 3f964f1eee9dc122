// SPDX-License-Identifier: MIT
// Package: skylane/builder
//
// options.go: functional options for the builder package.
//
// Contract (strict):
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Lattice itself never panics.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import (
	"math/rand"

	"github.com/katalvlaran/skylane/core"
	"github.com/katalvlaran/skylane/internal/rng"
)

// BuilderOption customizes Lattice by mutating a builderConfig before
// construction begins.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit RNG for the availability draw.
// Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a deterministic RNG from seed (0 maps to rng.DefaultSeed).
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rng.FromSeed(seed)
	}
}

// WithAvailability sets an explicit availability predicate. It takes
// precedence over WithAvailabilityProbability. Panics on nil.
func WithAvailability(fn func(core.NodeID) bool) BuilderOption {
	if fn == nil {
		panic("builder: WithAvailability(nil)")
	}
	return func(c *builderConfig) {
		c.available = fn
	}
}

// WithAvailabilityProbability marks each node available with probability p,
// drawn from the configured RNG in flat node order. p is validated by
// Lattice (ErrInvalidProbability) rather than here, so configuration files
// can surface the problem as an error.
func WithAvailabilityProbability(p float64) BuilderOption {
	return func(c *builderConfig) {
		c.availProb = p
		c.hasProb = true
	}
}

// WithDistance overrides the edge weight function. Panics on nil.
func WithDistance(fn DistanceFn) BuilderOption {
	if fn == nil {
		panic("builder: WithDistance(nil)")
	}
	return func(c *builderConfig) {
		c.distanceFn = fn
	}
}
