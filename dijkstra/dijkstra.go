// SPDX-License-Identifier: MIT
//
// File: dijkstra.go
// Role: priority-queue shortest path over the lattice arena.
//
// Notes on implementation choices:
//
//   - State lives in flat slices indexed by arena position, not maps.
//   - Lazy decrease-key: duplicates are pushed and stale entries skipped.
//   - Heap order is (dist, index), which makes paths reproducible.
//   - Weights are validated by core at insertion, so no negative pre-scan.

package dijkstra

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/skylane/core"
)

// Dijkstra computes shortest distances from Options.Source to every node of g.
//
// dist[idx] is the distance to arena index idx, Unreachable if never reached
// or farther than MaxDistance.
//
// Errors: ErrNilGraph, ErrVertexNotFound, ErrVertexUnavailable.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
func Dijkstra(g *core.Graph, opts ...Option) ([]float64, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	cfg := DefaultOptions(core.NodeID{})
	for _, opt := range opts {
		opt(&cfg)
	}
	src, err := endpoint(g, "Dijkstra", cfg.Source)
	if err != nil {
		return nil, err
	}

	r := newRunner(g, cfg, src, -1)
	r.process()

	return r.dist, nil
}

// ShortestPath returns the minimum-weight path from → to and its length.
// from == to yields the single-node path with length 0.
//
// Errors: ErrNilGraph, ErrVertexNotFound, ErrVertexUnavailable, ErrNoPath.
// The Source option is ignored; from is always the source.
func ShortestPath(g *core.Graph, from, to core.NodeID, opts ...Option) (core.Path, float64, error) {
	if g == nil {
		return nil, 0, ErrNilGraph
	}
	cfg := DefaultOptions(from)
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.Source = from

	src, err := endpoint(g, "ShortestPath", from)
	if err != nil {
		return nil, 0, err
	}
	dst, err := endpoint(g, "ShortestPath", to)
	if err != nil {
		return nil, 0, err
	}
	if src == dst {
		return core.Path{from}, 0, nil
	}

	r := newRunner(g, cfg, src, dst)
	r.process()

	if r.prev[dst] < 0 {
		return nil, 0, fmt.Errorf("ShortestPath(%v→%v): %w", from, to, ErrNoPath)
	}

	// Walk predecessors back to the source, then reverse.
	var path core.Path
	for at := dst; at >= 0; at = r.prev[at] {
		path = append(path, g.NodeAt(at).ID)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, r.dist[dst], nil
}

// endpoint resolves id to an arena index, rejecting unknown and unavailable nodes.
func endpoint(g *core.Graph, method string, id core.NodeID) (int, error) {
	idx, ok := g.Index(id)
	if !ok {
		return 0, fmt.Errorf("%s: %v: %w", method, id, ErrVertexNotFound)
	}
	if !g.NodeAt(idx).Available {
		return 0, fmt.Errorf("%s: %v: %w", method, id, ErrVertexUnavailable)
	}

	return idx, nil
}

// runner holds the mutable state for a single execution.
type runner struct {
	g       *core.Graph
	options Options
	target  int // -1 explores everything
	dist    []float64
	prev    []int
	visited []bool
	pq      nodePQ
}

// newRunner sets dist=+Inf, prev=-1 everywhere and seeds the heap with src.
func newRunner(g *core.Graph, cfg Options, src, target int) *runner {
	n := g.Len()
	r := &runner{
		g:       g,
		options: cfg,
		target:  target,
		dist:    make([]float64, n),
		prev:    make([]int, n),
		visited: make([]bool, n),
		pq:      make(nodePQ, 0, 64),
	}
	for i := 0; i < n; i++ {
		r.dist[i] = Unreachable
		r.prev[i] = -1
	}
	r.dist[src] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, nodeItem{idx: src, dist: 0})

	return r
}

// process pops the closest unvisited node until the heap empties, the target
// is finalized, or the distance cap is exceeded.
func (r *runner) process() {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(nodeItem)
		u := item.idx
		if r.visited[u] {
			continue
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		r.visited[u] = true
		if u == r.target {
			return
		}
		r.relax(u)
	}
}

// relax improves distances to u's neighbours, skipping walls and blocked nodes.
func (r *runner) relax(u int) {
	for _, e := range r.g.OutEdges(u) {
		v := e.To
		if r.visited[v] {
			continue
		}
		if r.options.Blocked != nil && v != r.target && r.options.Blocked(r.g.NodeAt(v).ID) {
			continue
		}
		nd := r.dist[u] + e.Weight
		if nd > r.options.MaxDistance || nd >= r.dist[v] {
			continue
		}
		r.dist[v] = nd
		r.prev[v] = u
		heap.Push(&r.pq, nodeItem{idx: v, dist: nd})
	}
}

// nodeItem is a heap entry: arena index and tentative distance.
type nodeItem struct {
	idx  int
	dist float64
}

// nodePQ is a min-heap of nodeItem ordered by (dist, idx).
type nodePQ []nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].idx < pq[j].idx
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
