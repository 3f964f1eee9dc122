// SPDX-License-Identifier: MIT
//
// File: methods.go
// Role: Edge insertion (builder only), Freeze, and read-only node/edge queries.
// Concurrency:
//   - AddEdge/Freeze are single-goroutine construction steps.
//   - Every query is safe for concurrent use once Freeze has returned.

package core

import "fmt"

const methodAddEdge = "AddEdge"

// AddEdge inserts the directed edge u→v with weight w.
//
// Validation (in order):
//  1. graph not frozen (ErrFrozen).
//  2. both endpoints inside the bounds (ErrNodeNotFound).
//  3. u != v (ErrLoopNotAllowed).
//  4. u and v are 26-neighbours (ErrNotAdjacent).
//  5. both endpoints available (ErrNodeUnavailable).
//  6. w is finite and ≥ 0 (ErrBadWeight).
//  7. u→v not present yet (ErrDuplicateEdge).
//
// Complexity: O(deg(u)) for the duplicate scan (deg ≤ 26).
func (g *Graph) AddEdge(u, v NodeID, w float64) error {
	if g.frozen {
		return fmt.Errorf("%s(%v→%v): %w", methodAddEdge, u, v, ErrFrozen)
	}
	if !g.dims.Contains(u) || !g.dims.Contains(v) {
		return fmt.Errorf("%s(%v→%v): %w", methodAddEdge, u, v, ErrNodeNotFound)
	}
	if u == v {
		return fmt.Errorf("%s(%v→%v): %w", methodAddEdge, u, v, ErrLoopNotAllowed)
	}
	if !u.IsNeighbour(v) {
		return fmt.Errorf("%s(%v→%v): %w", methodAddEdge, u, v, ErrNotAdjacent)
	}
	ui, vi := g.dims.Index(u), g.dims.Index(v)
	if !g.nodes[ui].Available || !g.nodes[vi].Available {
		return fmt.Errorf("%s(%v→%v): %w", methodAddEdge, u, v, ErrNodeUnavailable)
	}
	if w < 0 || w != w { // w != w catches NaN
		return fmt.Errorf("%s(%v→%v, w=%g): %w", methodAddEdge, u, v, w, ErrBadWeight)
	}
	for _, e := range g.out[ui] {
		if e.To == vi {
			return fmt.Errorf("%s(%v→%v): %w", methodAddEdge, u, v, ErrDuplicateEdge)
		}
	}

	g.out[ui] = append(g.out[ui], Edge{From: ui, To: vi, Weight: w})
	g.edgeCount++

	return nil
}

// Freeze ends construction: it labels islands (weakly connected components
// of available nodes) and rejects any later AddEdge. Calling Freeze twice is
// a no-op.
//
// Complexity: O(V + E).
func (g *Graph) Freeze() {
	if g.frozen {
		return
	}
	g.labelIslands()
	g.frozen = true
}

// Frozen reports whether Freeze has been called.
func (g *Graph) Frozen() bool { return g.frozen }

// Dims returns the grid dimensions.
func (g *Graph) Dims() Dims { return g.dims }

// Len returns the number of nodes (available or not).
func (g *Graph) Len() int { return len(g.nodes) }

// EdgeCount returns the number of directed edges.
func (g *Graph) EdgeCount() int { return g.edgeCount }

// Has reports whether id is inside the grid bounds.
func (g *Graph) Has(id NodeID) bool { return g.dims.Contains(id) }

// Index returns the arena index of id and whether it exists.
func (g *Graph) Index(id NodeID) (int, bool) {
	if !g.dims.Contains(id) {
		return 0, false
	}

	return g.dims.Index(id), true
}

// Node returns the node record for id.
func (g *Graph) Node(id NodeID) (Node, bool) {
	if !g.dims.Contains(id) {
		return Node{}, false
	}

	return g.nodes[g.dims.Index(id)], true
}

// NodeAt returns the node at arena index idx. The caller guarantees
// 0 ≤ idx < Len().
func (g *Graph) NodeAt(idx int) Node { return g.nodes[idx] }

// Available reports whether id exists and is available.
func (g *Graph) Available(id NodeID) bool {
	if !g.dims.Contains(id) {
		return false
	}

	return g.nodes[g.dims.Index(id)].Available
}

// OutEdges returns the outgoing edges of arena index idx.
// The slice is owned by the graph and MUST NOT be modified.
func (g *Graph) OutEdges(idx int) []Edge { return g.out[idx] }

// Neighbours returns the destinations of id's outgoing edges in insertion order.
func (g *Graph) Neighbours(id NodeID) []NodeID {
	idx, ok := g.Index(id)
	if !ok {
		return nil
	}
	res := make([]NodeID, 0, len(g.out[idx]))
	for _, e := range g.out[idx] {
		res = append(res, g.nodes[e.To].ID)
	}

	return res
}

// Weight returns the weight of u→v and whether the edge exists.
//
// Complexity: O(deg(u)).
func (g *Graph) Weight(u, v NodeID) (float64, bool) {
	ui, ok := g.Index(u)
	if !ok || !g.dims.Contains(v) {
		return 0, false
	}
	vi := g.dims.Index(v)
	for _, e := range g.out[ui] {
		if e.To == vi {
			return e.Weight, true
		}
	}

	return 0, false
}

// HasEdge reports whether u→v exists.
func (g *Graph) HasEdge(u, v NodeID) bool {
	_, ok := g.Weight(u, v)

	return ok
}

// AvailableNodes returns the identifiers of all available nodes in flat order.
func (g *Graph) AvailableNodes() []NodeID {
	res := make([]NodeID, 0, len(g.nodes))
	for i := range g.nodes {
		if g.nodes[i].Available {
			res = append(res, g.nodes[i].ID)
		}
	}

	return res
}

// Stats is a read-only snapshot of lattice sizes.
type Stats struct {
	Dims           Dims `json:"dims"`
	Nodes          int  `json:"nodes"`
	AvailableNodes int  `json:"available_nodes"`
	Edges          int  `json:"edges"`
	Islands        int  `json:"islands"`
}

// Stats returns node, edge and island counts.
//
// Complexity: O(V).
func (g *Graph) Stats() Stats {
	avail := 0
	for i := range g.nodes {
		if g.nodes[i].Available {
			avail++
		}
	}

	return Stats{
		Dims:           g.dims,
		Nodes:          len(g.nodes),
		AvailableNodes: avail,
		Edges:          g.edgeCount,
		Islands:        g.islands,
	}
}
