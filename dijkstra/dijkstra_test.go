// SPDX-License-Identifier: MIT
// These tests validate the search on small lattices: straight and diagonal
// routes, blocked nodes, disconnected islands, range caps and endpoint validation.

package dijkstra_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/skylane/builder"
	"github.com/katalvlaran/skylane/core"
	"github.com/katalvlaran/skylane/dijkstra"
)

func id(i, j, k int) core.NodeID { return core.NodeID{I: i, J: j, K: k} }

// flat builds an n×m×1 lattice with unit spacing (for counts ≥ 2); blocked
// nodes are unavailable.
func flat(t *testing.T, n, m int, blocked ...core.NodeID) *core.Graph {
	t.Helper()
	skip := make(map[core.NodeID]bool, len(blocked))
	for _, b := range blocked {
		skip[b] = true
	}
	g, err := builder.Lattice(
		builder.Bounds{Max: core.Vec3{X: math.Max(float64(n-1), 1), Y: math.Max(float64(m-1), 1), Z: 1}},
		core.Dims{NI: n, NJ: m, NK: 1},
		builder.WithAvailability(func(id core.NodeID) bool { return !skip[id] }),
	)
	require.NoError(t, err)

	return g
}

func TestShortestPath_SameNode(t *testing.T) {
	g := flat(t, 3, 3)
	p, d, err := dijkstra.ShortestPath(g, id(1, 1, 0), id(1, 1, 0))
	require.NoError(t, err)
	require.Equal(t, core.Path{id(1, 1, 0)}, p)
	require.Zero(t, d)
}

func TestShortestPath_StraightAndDiagonal(t *testing.T) {
	g := flat(t, 3, 3)

	p, d, err := dijkstra.ShortestPath(g, id(0, 1, 0), id(2, 1, 0))
	require.NoError(t, err)
	require.Equal(t, core.Path{id(0, 1, 0), id(1, 1, 0), id(2, 1, 0)}, p)
	require.InDelta(t, 2.0, d, 1e-12)

	p, d, err = dijkstra.ShortestPath(g, id(0, 0, 0), id(2, 2, 0))
	require.NoError(t, err)
	require.Equal(t, core.Path{id(0, 0, 0), id(1, 1, 0), id(2, 2, 0)}, p)
	require.InDelta(t, 2*math.Sqrt2, d, 1e-12)
	require.NoError(t, p.Validate(g))
}

func TestShortestPath_Deterministic(t *testing.T) {
	g := flat(t, 5, 5)
	first, _, err := dijkstra.ShortestPath(g, id(0, 0, 0), id(4, 2, 0))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, _, err := dijkstra.ShortestPath(g, id(0, 0, 0), id(4, 2, 0))
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestShortestPath_WithBlocked(t *testing.T) {
	g := flat(t, 3, 3)
	centre := id(1, 1, 0)
	p, d, err := dijkstra.ShortestPath(g, id(0, 1, 0), id(2, 1, 0),
		dijkstra.WithBlocked(func(n core.NodeID) bool { return n == centre }))
	require.NoError(t, err)
	require.NotContains(t, p, centre)
	require.Len(t, p, 3) // detour over a corner of the middle column
	require.InDelta(t, 2*math.Sqrt2, d, 1e-12)

	// Endpoints are exempt from the predicate.
	p, _, err = dijkstra.ShortestPath(g, centre, id(2, 1, 0),
		dijkstra.WithBlocked(func(core.NodeID) bool { return true }))
	require.NoError(t, err)
	require.Equal(t, core.Path{centre, id(2, 1, 0)}, p)
}

func TestShortestPath_DisjointIslands(t *testing.T) {
	g := flat(t, 3, 3, id(1, 0, 0), id(1, 1, 0), id(1, 2, 0))
	_, _, err := dijkstra.ShortestPath(g, id(0, 0, 0), id(2, 2, 0))
	require.ErrorIs(t, err, dijkstra.ErrNoPath)
}

func TestShortestPath_EndpointErrors(t *testing.T) {
	g := flat(t, 3, 3, id(2, 2, 0))

	_, _, err := dijkstra.ShortestPath(nil, id(0, 0, 0), id(1, 1, 0))
	require.ErrorIs(t, err, dijkstra.ErrNilGraph)

	_, _, err = dijkstra.ShortestPath(g, id(0, 0, 0), id(5, 0, 0))
	require.ErrorIs(t, err, dijkstra.ErrVertexNotFound)

	_, _, err = dijkstra.ShortestPath(g, id(0, 0, 0), id(2, 2, 0))
	require.ErrorIs(t, err, dijkstra.ErrVertexUnavailable)
}

func TestDijkstra_Distances(t *testing.T) {
	g := flat(t, 4, 2, id(2, 1, 0))
	dist, err := dijkstra.Dijkstra(g, dijkstra.Source(id(0, 0, 0)))
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		idx, _ := g.Index(id(i, 0, 0))
		require.InDelta(t, float64(i), dist[idx], 1e-12)
	}
	up, _ := g.Index(id(0, 1, 0))
	require.InDelta(t, 1.0, dist[up], 1e-12)
	diag, _ := g.Index(id(1, 1, 0))
	require.InDelta(t, math.Sqrt2, dist[diag], 1e-12)
	blocked, _ := g.Index(id(2, 1, 0))
	require.True(t, math.IsInf(dist[blocked], 1))

	_, err = dijkstra.Dijkstra(nil)
	require.ErrorIs(t, err, dijkstra.ErrNilGraph)
	_, err = dijkstra.Dijkstra(g, dijkstra.Source(id(2, 1, 0)))
	require.ErrorIs(t, err, dijkstra.ErrVertexUnavailable)
}

func TestMaxDistance(t *testing.T) {
	g := flat(t, 5, 1)
	dist, err := dijkstra.Dijkstra(g, dijkstra.Source(id(0, 0, 0)), dijkstra.WithMaxDistance(2))
	require.NoError(t, err)
	edge, _ := g.Index(id(2, 0, 0))
	require.InDelta(t, 2.0, dist[edge], 1e-12)
	far, _ := g.Index(id(3, 0, 0))
	require.True(t, math.IsInf(dist[far], 1))

	// The cap is inclusive: exactly 4 units reaches the far end.
	p, d, err := dijkstra.ShortestPath(g, id(0, 0, 0), id(4, 0, 0), dijkstra.WithMaxDistance(4))
	require.NoError(t, err)
	require.Len(t, p, 5)
	require.InDelta(t, 4.0, d, 1e-12)

	_, _, err = dijkstra.ShortestPath(g, id(0, 0, 0), id(4, 0, 0), dijkstra.WithMaxDistance(3.5))
	require.ErrorIs(t, err, dijkstra.ErrNoPath)
}

func TestOptions_Panics(t *testing.T) {
	require.Panics(t, func() { dijkstra.WithMaxDistance(-1) })
	require.Panics(t, func() { dijkstra.WithMaxDistance(math.NaN()) })
}
