// SPDX-License-Identifier: MIT
//
// File: cost.go
// Role: occupancy table, conflict counting and cost breakdown.
// Policy:
//   - The occupancy table is local to each call; nothing survives between
//     evaluations, so equal inputs always give equal results.
//   - Vehicles are scanned in solution order; the first occupant of a key
//     owns it and every later visitor counts as one conflict.

package conflict

import (
	"math"
	"sort"

	"github.com/katalvlaran/skylane/core"
)

// DefaultPenalty is the cost of one conflict. It dominates any plausible
// path-length difference on practical lattices.
const DefaultPenalty = 10000.0

// Collision records one counted conflict.
type Collision struct {
	Node  core.NodeID `json:"node"`
	Step  int         `json:"step"`
	Owner int         `json:"owner"` // vehicle that claimed the key first
	Other int         `json:"other"` // vehicle that arrived later
}

// Breakdown is the detailed result of Evaluate.
type Breakdown struct {
	// Total is Σ Lengths + Conflicts·penalty, or +Inf when !Valid.
	Total float64
	// Lengths holds each path's edge-weight sum (+Inf for a broken path).
	Lengths []float64
	// Conflicts is len(Collisions).
	Conflicts int
	// Collisions lists every counted conflict in discovery order.
	Collisions []Collision
	// Valid is false if any path is empty or uses a missing edge.
	Valid bool
}

// Vehicles returns the sorted, distinct vehicle indices involved in at
// least one collision.
func (b Breakdown) Vehicles() []int {
	seen := make(map[int]struct{}, 2*len(b.Collisions))
	for _, c := range b.Collisions {
		seen[c.Owner] = struct{}{}
		seen[c.Other] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Ints(out)

	return out
}

type config struct {
	hold bool
}

// Option customizes an evaluation.
type Option func(*config)

// WithHoldAtDestination makes every vehicle occupy its destination from its
// terminal index up to the solution horizon.
func WithHoldAtDestination() Option {
	return func(c *config) { c.hold = true }
}

type key struct {
	node core.NodeID
	step int
}

// Cost returns the scalar score of sol: Σ path lengths + conflicts·penalty.
// It returns +Inf for a solution holding a broken path.
func Cost(g *core.Graph, sol core.Solution, penalty float64, opts ...Option) float64 {
	return Evaluate(g, sol, penalty, opts...).Total
}

// Evaluate scores sol and reports per-vehicle lengths and collisions.
// Conflicts are counted even when the solution is invalid.
//
// Complexity: O(Σ len(path)·26) time, O(Σ len(path)) memory; with hold
// enabled the memory grows to O(vehicles·horizon).
func Evaluate(g *core.Graph, sol core.Solution, penalty float64, opts ...Option) Breakdown {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	b := Breakdown{
		Lengths: make([]float64, len(sol)),
		Valid:   true,
	}
	horizon := sol.Horizon()
	occupied := make(map[key]int, horizon*len(sol))
	claim := func(v int, n core.NodeID, step int) {
		k := key{node: n, step: step}
		if owner, taken := occupied[k]; taken {
			b.Collisions = append(b.Collisions, Collision{Node: n, Step: step, Owner: owner, Other: v})
			return
		}
		occupied[k] = v
	}

	length := 0.0
	for v, p := range sol {
		l, ok := p.Length(g)
		if !ok || len(p) == 0 {
			b.Valid = false
			l = math.Inf(1)
		}
		b.Lengths[v] = l
		length += l

		for step, n := range p {
			claim(v, n, step)
		}
		if cfg.hold && len(p) > 0 {
			last := p[len(p)-1]
			for step := len(p); step < horizon; step++ {
				claim(v, last, step)
			}
		}
	}

	b.Conflicts = len(b.Collisions)
	if !b.Valid {
		b.Total = math.Inf(1)
		return b
	}
	b.Total = length + float64(b.Conflicts)*penalty

	return b
}
