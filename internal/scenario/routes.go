// SPDX-License-Identifier: MIT

package scenario

import (
	"github.com/katalvlaran/skylane/core"
	"github.com/katalvlaran/skylane/planner"
)

// EdgeRoutes generates up to n requests crossing the lattice along the i
// axis. Origins are available nodes with i = 0 and destinations are
// available nodes with i = NI-1, both in flat index order. Route r takes
// the r-th still-unused node on each face, which spreads vehicles over
// every other candidate. Pairs on different islands are skipped and use
// up no candidate.
func EdgeRoutes(g *core.Graph, n int) []planner.Request {
	if n <= 0 {
		return nil
	}
	d := g.Dims()
	left, right := face(g, 0), face(g, d.NI-1)
	usedL := make(map[core.NodeID]bool)
	usedR := make(map[core.NodeID]bool)

	limit := min(n, len(left), len(right))
	out := make([]planner.Request, 0, limit)
	for r := 0; r < limit; r++ {
		origins := unused(left, usedL)
		dests := unused(right, usedR)
		if len(origins) == 0 || len(dests) == 0 {
			break
		}
		o, t := origins[r%len(origins)], dests[r%len(dests)]
		if g.Frozen() && !g.SameIsland(o, t) {
			continue
		}
		out = append(out, planner.Request{Origin: o, Destination: t})
		usedL[o], usedR[t] = true, true
	}

	return out
}

func face(g *core.Graph, i int) []core.NodeID {
	var out []core.NodeID
	for _, id := range g.AvailableNodes() {
		if id.I == i {
			out = append(out, id)
		}
	}

	return out
}

func unused(ids []core.NodeID, used map[core.NodeID]bool) []core.NodeID {
	out := make([]core.NodeID, 0, len(ids))
	for _, id := range ids {
		if !used[id] {
			out = append(out, id)
		}
	}

	return out
}
