// SPDX-License-Identifier: MIT
//
// Package mapper converts between physical positions and lattice nodes.
//
// Positions are in the same linear unit as the lattice (no geodesy). The
// node extent is read from the graph itself: the first node sits at the
// minimum corner and the last node at the maximum corner. Nearest snaps any
// position to the closest available node; rejecting positions outside the
// airspace is opt-in through WithArea.
package mapper

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/skylane/builder"
	"github.com/katalvlaran/skylane/core"
)

var (
	// ErrNoAvailableNode indicates the lattice has no available node at all.
	ErrNoAvailableNode = errors.New("mapper: no available node")

	// ErrOutOfBounds indicates a position outside the configured area (plus tolerance).
	ErrOutOfBounds = errors.New("mapper: position out of bounds")

	// ErrUnknownNode indicates an identifier outside the lattice.
	ErrUnknownNode = errors.New("mapper: unknown node")
)

// Mapper resolves positions against one frozen graph. It is safe for
// concurrent use.
type Mapper struct {
	g         *core.Graph
	min, max  core.Vec3 // node extent
	area      *builder.Bounds
	tolerance float64
}

// Option customizes a Mapper.
type Option func(*Mapper)

// WithArea makes Nearest reject positions outside b. Panics when b is
// inverted or not finite.
func WithArea(b builder.Bounds) Option {
	for _, v := range [...]float64{b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			panic(fmt.Sprintf("mapper: WithArea(%+v) needs finite bounds", b))
		}
	}
	if b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z {
		panic(fmt.Sprintf("mapper: WithArea(%+v) needs Min ≤ Max", b))
	}
	return func(m *Mapper) { m.area = &b }
}

// WithTolerance widens the WithArea box by d on each axis. It has no
// effect without an area. Panics on negative or NaN values.
func WithTolerance(d float64) Option {
	if d < 0 || math.IsNaN(d) {
		panic(fmt.Sprintf("mapper: WithTolerance(%g) needs d ≥ 0", d))
	}
	return func(m *Mapper) { m.tolerance = d }
}

// New creates a Mapper for g. Panics on a nil or empty graph.
func New(g *core.Graph, opts ...Option) *Mapper {
	if g == nil || g.Len() == 0 {
		panic("mapper: New needs a non-empty graph")
	}
	m := &Mapper{
		g:   g,
		min: g.NodeAt(0).Pos,
		max: g.NodeAt(g.Len() - 1).Pos,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Graph returns the underlying lattice.
func (m *Mapper) Graph() *core.Graph { return m.g }

// Bounds returns the configured area, or the node extent without one.
func (m *Mapper) Bounds() (min, max core.Vec3) {
	if m.area != nil {
		return m.area.Min, m.area.Max
	}

	return m.min, m.max
}

// Restricted reports whether Nearest rejects positions outside an area.
func (m *Mapper) Restricted() bool { return m.area != nil }

// Contains reports whether Nearest accepts pos: always true without an
// area, otherwise pos must lie inside the area widened by the tolerance.
func (m *Mapper) Contains(pos core.Vec3) bool {
	if m.area == nil {
		return true
	}
	in := func(v, lo, hi float64) bool {
		return v >= lo-m.tolerance && v <= hi+m.tolerance
	}
	a := m.area

	return in(pos.X, a.Min.X, a.Max.X) && in(pos.Y, a.Min.Y, a.Max.Y) && in(pos.Z, a.Min.Z, a.Max.Z)
}

// Nearest returns the available node closest to pos (3-D Euclidean distance)
// and that distance. Positions outside the node extent snap like any other.
// Ties go to the lower flat index.
//
// Errors: ErrNoAvailableNode; ErrOutOfBounds only under WithArea.
// Complexity: O(V).
func (m *Mapper) Nearest(pos core.Vec3) (core.NodeID, float64, error) {
	if !m.Contains(pos) {
		return core.NodeID{}, 0, fmt.Errorf("Nearest(%+v): %w", pos, ErrOutOfBounds)
	}

	best, bestD := -1, math.Inf(1)
	for idx := 0; idx < m.g.Len(); idx++ {
		n := m.g.NodeAt(idx)
		if !n.Available {
			continue
		}
		if d := pos.Sub(n.Pos).Norm(); d < bestD {
			best, bestD = idx, d
		}
	}
	if best < 0 {
		return core.NodeID{}, 0, fmt.Errorf("Nearest(%+v): %w", pos, ErrNoAvailableNode)
	}

	return m.g.NodeAt(best).ID, bestD, nil
}

// GridIndex maps pos to the grid cell it falls in, clamped to the lattice.
// The result may be an unavailable node; use Nearest for routing.
func (m *Mapper) GridIndex(pos core.Vec3) core.NodeID {
	d := m.g.Dims()

	return core.NodeID{
		I: cell(pos.X, m.min.X, m.max.X, d.NI),
		J: cell(pos.Y, m.min.Y, m.max.Y, d.NJ),
		K: cell(pos.Z, m.min.Z, m.max.Z, d.NK),
	}
}

func cell(v, lo, hi float64, n int) int {
	if n < 2 || hi <= lo {
		return 0
	}
	f := (v - lo) / (hi - lo) * float64(n-1)
	f = math.Max(0, math.Min(f, float64(n-1)))

	return int(f)
}

// Position returns the physical position of id.
func (m *Mapper) Position(id core.NodeID) (core.Vec3, error) {
	n, ok := m.g.Node(id)
	if !ok {
		return core.Vec3{}, fmt.Errorf("Position(%v): %w", id, ErrUnknownNode)
	}

	return n.Pos, nil
}
