// SPDX-License-Identifier: MIT
// Package core_test verifies the lattice arena contracts: index flattening,
// edge invariants, freeze semantics, islands and path helpers.

package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/skylane/core"
)

// newLine builds a 1×n×1 lattice with unit spacing along J and the given
// availability, without edges.
func newLine(t *testing.T, avail ...bool) *core.Graph {
	t.Helper()
	dims := core.Dims{NI: 1, NJ: len(avail), NK: 1}
	nodes := make([]core.Node, dims.Len())
	for i := range nodes {
		id := dims.ID(i)
		nodes[i] = core.Node{ID: id, Pos: core.Vec3{Y: float64(id.J)}, Available: avail[id.J]}
	}
	g, err := core.NewGraph(dims, nodes)
	require.NoError(t, err)

	return g
}

func id(i, j, k int) core.NodeID { return core.NodeID{I: i, J: j, K: k} }

func TestDims_IndexRoundTrip(t *testing.T) {
	d := core.Dims{NI: 3, NJ: 4, NK: 2}
	require.Equal(t, 24, d.Len())
	seen := make(map[int]bool)
	for i := 0; i < d.NI; i++ {
		for j := 0; j < d.NJ; j++ {
			for k := 0; k < d.NK; k++ {
				n := id(i, j, k)
				idx := d.Index(n)
				require.False(t, seen[idx], "index %d reused", idx)
				seen[idx] = true
				require.Equal(t, n, d.ID(idx))
			}
		}
	}
	require.False(t, d.Contains(id(3, 0, 0)))
	require.False(t, d.Contains(id(0, -1, 0)))
}

func TestNodeID_IsNeighbour(t *testing.T) {
	tests := []struct {
		a, b core.NodeID
		want bool
	}{
		{id(0, 0, 0), id(0, 0, 0), false},
		{id(0, 0, 0), id(1, 1, 1), true},
		{id(1, 1, 1), id(0, 2, 1), true},
		{id(0, 0, 0), id(2, 0, 0), false},
		{id(0, 0, 0), id(0, 0, -1), true},
	}
	for _, tt := range tests {
		if got := tt.a.IsNeighbour(tt.b); got != tt.want {
			t.Errorf("%v.IsNeighbour(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNewGraph_RejectsBadInput(t *testing.T) {
	_, err := core.NewGraph(core.Dims{NI: 0, NJ: 1, NK: 1}, nil)
	require.ErrorIs(t, err, core.ErrBadDims)

	dims := core.Dims{NI: 1, NJ: 2, NK: 1}
	_, err = core.NewGraph(dims, []core.Node{{ID: id(0, 1, 0)}, {ID: id(0, 0, 0)}})
	require.ErrorIs(t, err, core.ErrBadDims)
}

func TestAddEdge_Invariants(t *testing.T) {
	g := newLine(t, true, true, false, true)

	require.NoError(t, g.AddEdge(id(0, 0, 0), id(0, 1, 0), 1))

	tests := []struct {
		name string
		u, v core.NodeID
		w    float64
		want error
	}{
		{"out of bounds", id(0, 0, 0), id(0, 9, 0), 1, core.ErrNodeNotFound},
		{"self loop", id(0, 0, 0), id(0, 0, 0), 1, core.ErrLoopNotAllowed},
		{"not adjacent", id(0, 0, 0), id(0, 3, 0), 1, core.ErrNotAdjacent},
		{"unavailable", id(0, 1, 0), id(0, 2, 0), 1, core.ErrNodeUnavailable},
		{"negative", id(0, 1, 0), id(0, 0, 0), -1, core.ErrBadWeight},
		{"duplicate", id(0, 0, 0), id(0, 1, 0), 1, core.ErrDuplicateEdge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.AddEdge(tt.u, tt.v, tt.w)
			require.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
	require.Equal(t, 1, g.EdgeCount())

	g.Freeze()
	require.ErrorIs(t, g.AddEdge(id(0, 1, 0), id(0, 0, 0), 1), core.ErrFrozen)
}

func TestWeightAndNeighbours(t *testing.T) {
	g := newLine(t, true, true, true)
	require.NoError(t, g.AddEdge(id(0, 0, 0), id(0, 1, 0), 1.5))
	require.NoError(t, g.AddEdge(id(0, 1, 0), id(0, 2, 0), 2.5))
	g.Freeze()

	w, ok := g.Weight(id(0, 0, 0), id(0, 1, 0))
	require.True(t, ok)
	require.Equal(t, 1.5, w)

	_, ok = g.Weight(id(0, 1, 0), id(0, 0, 0))
	require.False(t, ok, "edges are directed")

	require.Equal(t, []core.NodeID{id(0, 2, 0)}, g.Neighbours(id(0, 1, 0)))
	require.Nil(t, g.Neighbours(id(5, 5, 5)))
}

func TestIslands(t *testing.T) {
	g := newLine(t, true, true, false, true, true)
	require.NoError(t, g.AddEdge(id(0, 0, 0), id(0, 1, 0), 1))
	require.NoError(t, g.AddEdge(id(0, 1, 0), id(0, 0, 0), 1))
	// one-way edge still joins the island (weak connectivity)
	require.NoError(t, g.AddEdge(id(0, 4, 0), id(0, 3, 0), 1))
	g.Freeze()

	require.True(t, g.SameIsland(id(0, 0, 0), id(0, 1, 0)))
	require.True(t, g.SameIsland(id(0, 3, 0), id(0, 4, 0)))
	require.False(t, g.SameIsland(id(0, 0, 0), id(0, 4, 0)))
	require.Equal(t, -1, g.Island(id(0, 2, 0)))
	require.Len(t, g.Islands(), 2)

	st := g.Stats()
	require.Equal(t, 2, st.Islands)
	require.Equal(t, 4, st.AvailableNodes)
	require.Equal(t, 3, st.Edges)
}

func TestPath_LengthAndValidate(t *testing.T) {
	g := newLine(t, true, true, true)
	require.NoError(t, g.AddEdge(id(0, 0, 0), id(0, 1, 0), 1))
	require.NoError(t, g.AddEdge(id(0, 1, 0), id(0, 2, 0), 2))
	g.Freeze()

	p := core.Path{id(0, 0, 0), id(0, 1, 0), id(0, 2, 0)}
	l, ok := p.Length(g)
	require.True(t, ok)
	require.Equal(t, 3.0, l)
	require.NoError(t, p.Validate(g))

	bad := core.Path{id(0, 2, 0), id(0, 1, 0)}
	_, ok = bad.Length(g)
	require.False(t, ok)
	require.ErrorIs(t, bad.Validate(g), core.ErrEdgeNotFound)
	require.ErrorIs(t, core.Path{}.Validate(g), core.ErrEmptyPath)

	single := core.Path{id(0, 1, 0)}
	l, ok = single.Length(g)
	require.True(t, ok)
	require.Zero(t, l)
}

func TestSolution_CloneIsDeep(t *testing.T) {
	s := core.Solution{
		{id(0, 0, 0), id(0, 1, 0)},
		{id(1, 0, 0)},
	}
	cp := s.Clone()
	require.True(t, s.Equal(cp))

	cp[0][1] = id(9, 9, 9)
	require.Equal(t, id(0, 1, 0), s[0][1], "clone must not alias the original")
	require.False(t, s.Equal(cp))
	require.Equal(t, 2, s.Horizon())
}
