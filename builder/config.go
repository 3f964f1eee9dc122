// SPDX-License-Identifier: MIT
// Package: skylane/builder
//
// config.go: internal configuration and deterministic defaults.
//
// Design:
//   • builderConfig is the single source of truth for all builder knobs.
//   • Defaults are deterministic and documented; no globals.
//   • newBuilderConfig applies options in-order (later overrides earlier).
//
// Deterministic defaults:
//   • rng          = nil          (no randomness unless seeded)
//   • available    = nil          (all nodes available)
//   • availProb    = unset        (no Bernoulli draw)
//   • distanceFn   = SlantRange

package builder

import (
	"math/rand"

	"github.com/katalvlaran/skylane/core"
)

// builderConfig aggregates all knobs used by Lattice.
// It is passed by VALUE to keep callers from mutating a resolved config.
type builderConfig struct {
	// RNG for stochastic availability; nil means no randomness.
	rng *rand.Rand
	// Availability predicate; nil means "consult availProb or default to true".
	available func(core.NodeID) bool
	// Probability that a node is available when drawn; only used if hasProb.
	availProb float64
	hasProb   bool
	// Edge weight function.
	distanceFn DistanceFn
}

// newBuilderConfig constructs a config with deterministic defaults and
// applies all options in order.
// Complexity: O(len(opts)).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		distanceFn: SlantRange,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
