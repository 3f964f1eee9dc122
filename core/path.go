// SPDX-License-Identifier: MIT
//
// File: path.go
// Role: Path (time-indexed node sequence) and Solution (one path per vehicle).
// Policy:
//   - Clone always deep-copies; solutions handed to a perturbation step are
//     never aliased with the solution being perturbed from.

package core

import (
	"fmt"
	"strings"
)

// Path is an ordered node sequence. The index of a node is the discrete time
// step at which the vehicle occupies it.
type Path []NodeID

// Clone returns an independent copy of p.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	cp := make(Path, len(p))
	copy(cp, p)

	return cp
}

// Equal reports whether p and o visit the same nodes in the same order.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}

	return true
}

// String renders the path as "(0,0,0) -> (1,0,0) -> ...".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, id := range p {
		parts[i] = id.String()
	}

	return strings.Join(parts, " -> ")
}

// Length sums the edge weights along p. ok is false when a consecutive pair
// has no edge in g. A single-node path has length 0.
//
// Complexity: O(len(p)·26).
func (p Path) Length(g *Graph) (length float64, ok bool) {
	for i := 0; i+1 < len(p); i++ {
		w, exists := g.Weight(p[i], p[i+1])
		if !exists {
			return 0, false
		}
		length += w
	}

	return length, true
}

// Validate checks that p is non-empty, every node is available, and every
// consecutive pair is joined by an edge.
func (p Path) Validate(g *Graph) error {
	if len(p) == 0 {
		return ErrEmptyPath
	}
	for i, id := range p {
		if !g.Has(id) {
			return fmt.Errorf("path[%d]=%v: %w", i, id, ErrNodeNotFound)
		}
		if !g.Available(id) {
			return fmt.Errorf("path[%d]=%v: %w", i, id, ErrNodeUnavailable)
		}
		if i > 0 && !g.HasEdge(p[i-1], id) {
			return fmt.Errorf("path[%d→%d] %v→%v: %w", i-1, i, p[i-1], id, ErrEdgeNotFound)
		}
	}

	return nil
}

// Solution holds one path per vehicle in a fixed vehicle order.
type Solution []Path

// Clone deep-copies every path.
func (s Solution) Clone() Solution {
	if s == nil {
		return nil
	}
	cp := make(Solution, len(s))
	for i, p := range s {
		cp[i] = p.Clone()
	}

	return cp
}

// Horizon returns the length of the longest path, i.e. the number of time
// steps the solution spans.
func (s Solution) Horizon() int {
	h := 0
	for _, p := range s {
		if len(p) > h {
			h = len(p)
		}
	}

	return h
}

// Equal reports whether both solutions hold equal paths in the same order.
func (s Solution) Equal(o Solution) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if !s[i].Equal(o[i]) {
			return false
		}
	}

	return true
}
