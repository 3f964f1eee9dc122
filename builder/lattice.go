// SPDX-License-Identifier: MIT
// Package: skylane/builder
//
// lattice.go: the 3-D lattice constructor.
//
// Contract:
//   • Validates bounds, dims and availability source before allocating.
//   • Positions are linear interpolations between axis bounds.
//   • Availability is resolved once per node in flat index order, so a
//     seeded probability draw is reproducible.
//   • Wires the 26-connected neighbourhood between available nodes and
//     freezes the graph before returning it.
//
// Complexity: O(V·26) time, O(V + E) memory.

package builder

import (
	"github.com/katalvlaran/skylane/core"
)

const methodLattice = "Lattice"

// Bounds holds per-axis physical extents in a linear unit.
type Bounds struct {
	Min core.Vec3 `json:"min" yaml:"min"`
	Max core.Vec3 `json:"max" yaml:"max"`
}

// neighbourOffsets enumerates {-1,0,1}^3 \ {0} in a fixed order, so edge
// lists come out identical for identical inputs.
var neighbourOffsets = func() []core.NodeID {
	offs := make([]core.NodeID, 0, 26)
	for di := -1; di <= 1; di++ {
		for dj := -1; dj <= 1; dj++ {
			for dk := -1; dk <= 1; dk++ {
				if di == 0 && dj == 0 && dk == 0 {
					continue
				}
				offs = append(offs, core.NodeID{I: di, J: dj, K: dk})
			}
		}
	}

	return offs
}()

// Lattice builds a frozen lattice graph over b with dims nodes per axis.
//
// Errors:
//   - ErrInvalidDimension   if a count < 1 or min ≥ max on any axis.
//   - ErrInvalidProbability if WithAvailabilityProbability got p ∉ [0,1].
//   - ErrNeedRandSource     if a probability draw has no RNG.
//   - ErrConstructFailed    if core rejects an edge (bad DistanceFn output).
func Lattice(b Bounds, dims core.Dims, opts ...BuilderOption) (*core.Graph, error) {
	cfg := newBuilderConfig(opts...)

	if err := validateDims(methodLattice, dims); err != nil {
		return nil, err
	}
	if err := validateBounds(methodLattice, b); err != nil {
		return nil, err
	}
	if cfg.available == nil && cfg.hasProb {
		if err := validateProbability(methodLattice, cfg.availProb); err != nil {
			return nil, err
		}
		if cfg.rng == nil {
			return nil, builderErrorf(methodLattice, ErrNeedRandSource,
				"availability probability %g needs WithSeed or WithRand", cfg.availProb)
		}
	}

	xs := linspace(b.Min.X, b.Max.X, dims.NI)
	ys := linspace(b.Min.Y, b.Max.Y, dims.NJ)
	zs := linspace(b.Min.Z, b.Max.Z, dims.NK)

	nodes := make([]core.Node, dims.Len())
	for idx := range nodes {
		id := dims.ID(idx)
		nodes[idx] = core.Node{
			ID:        id,
			Pos:       core.Vec3{X: xs[id.I], Y: ys[id.J], Z: zs[id.K]},
			Available: cfg.isAvailable(id),
		}
	}

	g, err := core.NewGraph(dims, nodes)
	if err != nil {
		return nil, builderErrorf(methodLattice, ErrConstructFailed, "%v", err)
	}

	for idx := range nodes {
		u := nodes[idx]
		if !u.Available {
			continue
		}
		for _, off := range neighbourOffsets {
			vid := core.NodeID{I: u.ID.I + off.I, J: u.ID.J + off.J, K: u.ID.K + off.K}
			if !dims.Contains(vid) {
				continue
			}
			v := nodes[dims.Index(vid)]
			if !v.Available {
				continue
			}
			if err = g.AddEdge(u.ID, vid, cfg.distanceFn(u.Pos, v.Pos)); err != nil {
				return nil, builderErrorf(methodLattice, ErrConstructFailed, "edge %v→%v: %v", u.ID, vid, err)
			}
		}
	}

	g.Freeze()

	return g, nil
}

// isAvailable resolves the availability source: predicate first, then the
// Bernoulli draw, otherwise true.
func (c builderConfig) isAvailable(id core.NodeID) bool {
	switch {
	case c.available != nil:
		return c.available(id)
	case c.hasProb:
		return c.rng.Float64() < c.availProb
	default:
		return true
	}
}

// linspace returns n evenly spaced values from lo to hi inclusive.
// n == 1 yields {lo}.
func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	out[n-1] = hi

	return out
}
