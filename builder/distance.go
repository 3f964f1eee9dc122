// SPDX-License-Identifier: MIT
// Package: skylane/builder
//
// distance.go: edge weight (distance) functions.
//
// Contract:
//   • A DistanceFn is pure and symmetric: fn(a,b) == fn(b,a) ≥ 0.
//   • Positions are already in a linear unit; no geodesy happens here.

package builder

import (
	"fmt"
	"math"

	"github.com/katalvlaran/skylane/core"
)

// DistanceFn computes the weight of an edge between two node positions.
type DistanceFn func(a, b core.Vec3) float64

// SlantRange is the 3-D Euclidean distance combining horizontal and vertical
// separation. It is the default DistanceFn.
// Complexity: O(1).
func SlantRange(a, b core.Vec3) float64 {
	return b.Sub(a).Norm()
}

// ScaledSlantRange returns a DistanceFn that multiplies each axis delta by
// its scale before taking the Euclidean norm. Use it when axes carry
// different physical meaning, e.g. ScaledSlantRange(1, 1, 3) to make climbing
// three times as expensive as level flight.
// Panics if any scale is negative or NaN.
func ScaledSlantRange(sx, sy, sz float64) DistanceFn {
	for _, s := range []float64{sx, sy, sz} {
		if s < 0 || math.IsNaN(s) {
			panic(fmt.Sprintf("builder: ScaledSlantRange(%g,%g,%g) needs non-negative scales", sx, sy, sz))
		}
	}

	return func(a, b core.Vec3) float64 {
		d := b.Sub(a)
		d.X *= sx
		d.Y *= sy
		d.Z *= sz

		return d.Norm()
	}
}
