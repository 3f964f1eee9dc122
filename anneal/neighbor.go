// SPDX-License-Identifier: MIT
//
// File: neighbor.go
// Role: local search move. Re-routes one segment of one vehicle's path with
// the deterministic shortest-path search and splices it in.
// Contract:
//   - The input solution is never modified; the result is always a clone.
//   - The operator never fails: any infeasible move yields the unchanged clone.

package anneal

import (
	"math/rand"

	"github.com/katalvlaran/skylane/conflict"
	"github.com/katalvlaran/skylane/core"
	"github.com/katalvlaran/skylane/dijkstra"
)

// Neighbor returns a solution that differs from sol in at most one segment
// of one vehicle. Options used: WithNeighborRetries,
// WithConflictAwareRepair and WithHoldAtDestination; the others are ignored.
func Neighbor(g *core.Graph, sol core.Solution, r *rand.Rand, opts ...Option) core.Solution {
	cfg := newConfig(opts...)

	return neighbor(g, sol, r, cfg)
}

func neighbor(g *core.Graph, sol core.Solution, r *rand.Rand, cfg config) core.Solution {
	next := sol.Clone()
	if len(next) == 0 {
		return next
	}
	if cfg.conflictAware {
		if repaired, ok := repair(g, next, r, cfg); ok {
			return repaired
		}
	}

	v := r.Intn(len(next))
	p := next[v]
	if len(p) < 3 {
		return next
	}

	for attempt := 0; attempt < cfg.retries; attempt++ {
		start := r.Intn(len(p) - 1)
		end := start + 1 + r.Intn(len(p)-1-start)

		seg, _, err := dijkstra.ShortestPath(g, p[start], p[end])
		if err != nil {
			return next
		}
		if seg.Equal(p[start : end+1]) {
			continue
		}
		next[v] = splice(p, start, end, seg)

		return next
	}

	return next
}

// repair targets one collision. ok is false when there is nothing it can
// do, and the caller falls back to the blind move.
func repair(g *core.Graph, sol core.Solution, r *rand.Rand, cfg config) (core.Solution, bool) {
	b := conflict.Evaluate(g, sol, 0, cfg.costOptions()...)
	if len(b.Collisions) == 0 {
		return nil, false
	}
	c := b.Collisions[r.Intn(len(b.Collisions))]

	// Try one of the two vehicles at random, then the other.
	candidates := [2]int{c.Other, c.Owner}
	if r.Intn(2) == 1 {
		candidates[0], candidates[1] = candidates[1], candidates[0]
	}
	for _, v := range candidates {
		p := sol[v]
		// The collision step must be strictly inside the path to move it.
		if c.Step <= 0 || c.Step >= len(p)-1 {
			continue
		}
		start := r.Intn(c.Step)
		end := c.Step + 1 + r.Intn(len(p)-1-c.Step)

		blocked := occupiedBy(sol, v, start+1, end-1, cfg.hold)
		seg, _, err := dijkstra.ShortestPath(g, p[start], p[end],
			dijkstra.WithBlocked(func(n core.NodeID) bool { _, hit := blocked[n]; return hit }))
		if err != nil || seg.Equal(p[start:end+1]) {
			continue
		}
		sol[v] = splice(p, start, end, seg)

		return sol, true
	}

	return nil, false
}

// occupiedBy collects the nodes that vehicles other than skip hold at steps
// from..to inclusive. With hold set, a vehicle that already arrived is
// counted at its destination.
func occupiedBy(sol core.Solution, skip, from, to int, hold bool) map[core.NodeID]struct{} {
	out := make(map[core.NodeID]struct{})
	for u, p := range sol {
		if u == skip || len(p) == 0 {
			continue
		}
		for step := from; step <= to; step++ {
			switch {
			case step < len(p):
				out[p[step]] = struct{}{}
			case hold:
				out[p[len(p)-1]] = struct{}{}
			}
		}
	}

	return out
}

// splice replaces p[start..end] with seg (whose endpoints equal p[start] and p[end]).
func splice(p core.Path, start, end int, seg core.Path) core.Path {
	out := make(core.Path, 0, start+len(seg)+len(p)-end-1)
	out = append(out, p[:start]...)
	out = append(out, seg...)
	out = append(out, p[end+1:]...)

	return out
}
