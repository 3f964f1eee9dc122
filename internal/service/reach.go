// SPDX-License-Identifier: MIT

package service

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/skylane/core"
	"github.com/katalvlaran/skylane/dijkstra"
)

// MaxReachNodes bounds ReachResult.Nodes. Reachable still counts every node.
const MaxReachNodes = 1000

// ReachNode is one node within range and its flight distance.
type ReachNode struct {
	Node     core.NodeID `json:"node"`
	Position core.Vec3   `json:"position"`
	Distance float64     `json:"distance"`
}

// ReachResult lists the nodes a vehicle can fly to from one position.
type ReachResult struct {
	Origin    core.NodeID `json:"origin"`
	Range     float64     `json:"range"`
	Reachable int         `json:"reachable"`
	Nodes     []ReachNode `json:"nodes"`
	Truncated bool        `json:"truncated,omitempty"`
}

// Reach lists the nodes within maxRange flight distance of the node nearest
// pos, closest first and ties in arena order. maxRange 0 means unlimited.
//
// Errors: ErrInvalidRequest, ErrInvalidPosition.
func (s *RouteService) Reach(pos core.Vec3, maxRange float64) (*ReachResult, error) {
	for _, v := range [...]float64{pos.X, pos.Y, pos.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: position must be finite", ErrInvalidRequest)
		}
	}
	if !(maxRange >= 0) {
		return nil, fmt.Errorf("%w: range must be ≥ 0", ErrInvalidRequest)
	}

	origin, _, err := s.m.Nearest(pos)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPosition, err)
	}
	opts := []dijkstra.Option{dijkstra.Source(origin)}
	if maxRange > 0 {
		opts = append(opts, dijkstra.WithMaxDistance(maxRange))
	}
	dist, err := dijkstra.Dijkstra(s.g, opts...)
	if err != nil {
		return nil, fmt.Errorf("reach from %v: %w", origin, err)
	}

	var within []int
	for idx, d := range dist {
		if !math.IsInf(d, 1) {
			within = append(within, idx)
		}
	}
	slices.SortStableFunc(within, func(a, b int) int { return cmp.Compare(dist[a], dist[b]) })

	res := &ReachResult{Origin: origin, Range: maxRange, Reachable: len(within)}
	if len(within) > MaxReachNodes {
		within, res.Truncated = within[:MaxReachNodes], true
	}
	res.Nodes = make([]ReachNode, len(within))
	for i, idx := range within {
		n := s.g.NodeAt(idx)
		res.Nodes[i] = ReachNode{Node: n.ID, Position: n.Pos, Distance: dist[idx]}
	}

	return res, nil
}
