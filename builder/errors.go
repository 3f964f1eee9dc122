// SPDX-License-Identifier: MIT
// Package: skylane/builder
//
// errors.go: sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers use errors.Is.
//   • Implementations attach context with `%w` and a method tag.
//   • Lattice never panics at runtime; option constructors may panic on
//     meaningless arguments (nil predicate, nil rng, nil distance fn).

package builder

import (
	"errors"
	"fmt"
)

// ErrInvalidDimension indicates a malformed grid configuration: an axis count
// below one, or inverted/empty bounds (min ≥ max) on an axis.
// Classification: fatal configuration error; the caller must fix its input.
var ErrInvalidDimension = errors.New("builder: invalid lattice dimension")

// ErrInvalidProbability indicates an availability probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates a stochastic availability draw without an RNG
// in the resolved builderConfig (use WithSeed or WithRand).
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates core rejected an edge while wiring the
// lattice. It signals a broken invariant (e.g. a distance function returning
// a negative value), never a user-input problem.
var ErrConstructFailed = errors.New("builder: construction failed")

// builderErrorf formats "<method>: <message>: <sentinel>" keeping the
// sentinel reachable through errors.Is.
func builderErrorf(method string, sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), sentinel)
}
