// SPDX-License-Identifier: MIT
// Package: skylane/builder
//
// validators.go: parameter contracts for Lattice.
// Each helper returns a wrapped sentinel when its precondition is violated.

package builder

import (
	"math"

	"github.com/katalvlaran/skylane/core"
)

// Probability bounds, inclusive.
const (
	MinProbability = 0.0
	MaxProbability = 1.0
)

// MinAxisCount is the smallest node count allowed on an axis.
const MinAxisCount = 1

// validateDims ensures every axis count is ≥ MinAxisCount.
// Complexity: O(1).
func validateDims(method string, d core.Dims) error {
	if d.NI < MinAxisCount || d.NJ < MinAxisCount || d.NK < MinAxisCount {
		return builderErrorf(method, ErrInvalidDimension,
			"counts must be ≥ %d, got %d×%d×%d", MinAxisCount, d.NI, d.NJ, d.NK)
	}

	return nil
}

// validateBounds ensures min < max on every axis and all values are finite.
// Complexity: O(1).
func validateBounds(method string, b Bounds) error {
	axes := [3]struct {
		name     string
		min, max float64
	}{
		{"x", b.Min.X, b.Max.X},
		{"y", b.Min.Y, b.Max.Y},
		{"z", b.Min.Z, b.Max.Z},
	}
	for _, a := range axes {
		if math.IsNaN(a.min) || math.IsNaN(a.max) || math.IsInf(a.min, 0) || math.IsInf(a.max, 0) {
			return builderErrorf(method, ErrInvalidDimension, "axis %s bounds must be finite", a.name)
		}
		if a.min >= a.max {
			return builderErrorf(method, ErrInvalidDimension,
				"axis %s needs min < max, got [%g, %g]", a.name, a.min, a.max)
		}
	}

	return nil
}

// validateProbability enforces p ∈ [MinProbability, MaxProbability].
// Complexity: O(1).
func validateProbability(method string, p float64) error {
	if math.IsNaN(p) || p < MinProbability || p > MaxProbability {
		return builderErrorf(method, ErrInvalidProbability,
			"probability must be in [%.1f,%.1f], got %g", MinProbability, MaxProbability, p)
	}

	return nil
}
