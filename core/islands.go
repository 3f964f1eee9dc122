// SPDX-License-Identifier: MIT
//
// File: islands.go
// Role: Weakly connected components ("islands") of available nodes.
// Used by request validation as a cheap, exact "no route can exist" test:
// two nodes on different islands are never connected by any path.

package core

// labelIslands assigns island labels with a BFS over the undirected view of
// the edge set (out-edges plus their reverses).
//
// Time:   O(V + E).
// Memory: O(V + E) for the reverse adjacency and the queue.
func (g *Graph) labelIslands() {
	n := len(g.nodes)
	g.island = make([]int, n)
	for i := range g.island {
		g.island[i] = -1
	}

	// Reverse adjacency so asymmetric edge sets still yield weak components.
	rev := make([][]int, n)
	for u := range g.out {
		for _, e := range g.out[u] {
			rev[e.To] = append(rev[e.To], u)
		}
	}

	label := 0
	queue := make([]int, 0, n)
	for start := 0; start < n; start++ {
		if !g.nodes[start].Available || g.island[start] >= 0 {
			continue
		}
		queue = append(queue[:0], start)
		g.island[start] = label
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			for _, e := range g.out[u] {
				if g.island[e.To] < 0 {
					g.island[e.To] = label
					queue = append(queue, e.To)
				}
			}
			for _, v := range rev[u] {
				if g.island[v] < 0 {
					g.island[v] = label
					queue = append(queue, v)
				}
			}
		}
		label++
	}
	g.islands = label
}

// Island returns the island label of id, or -1 when id is unknown,
// unavailable, or the graph has not been frozen yet.
func (g *Graph) Island(id NodeID) int {
	idx, ok := g.Index(id)
	if !ok || g.island == nil {
		return -1
	}

	return g.island[idx]
}

// SameIsland reports whether a and b are both available and on the same island.
// A false result proves that no path a→b exists.
func (g *Graph) SameIsland(a, b NodeID) bool {
	ia := g.Island(a)

	return ia >= 0 && ia == g.Island(b)
}

// Islands returns every island as a list of node identifiers, ordered by
// label and, within an island, by flat index.
func (g *Graph) Islands() [][]NodeID {
	if g.island == nil {
		return nil
	}
	res := make([][]NodeID, g.islands)
	for idx, lbl := range g.island {
		if lbl >= 0 {
			res[lbl] = append(res[lbl], g.nodes[idx].ID)
		}
	}

	return res
}
