// SPDX-License-Identifier: MIT

package planner

import "github.com/katalvlaran/skylane/core"

// tree is the append-only search tree: entries never move, parents are
// referenced by entry index (-1 for the root).
type tree struct {
	ids    []core.NodeID
	parent []int
	member map[core.NodeID]int
}

func newTree(root core.NodeID, capacity int) *tree {
	t := &tree{
		ids:    make([]core.NodeID, 0, capacity),
		parent: make([]int, 0, capacity),
		member: make(map[core.NodeID]int, capacity),
	}
	t.add(root, -1)

	return t
}

// add appends id under parent and returns its entry index.
func (t *tree) add(id core.NodeID, parent int) int {
	t.ids = append(t.ids, id)
	t.parent = append(t.parent, parent)
	t.member[id] = len(t.ids) - 1

	return len(t.ids) - 1
}

func (t *tree) contains(id core.NodeID) bool {
	_, ok := t.member[id]

	return ok
}

// nearest returns the entry closest to target in grid-index distance.
// Ties go to the earliest entry.
func (t *tree) nearest(target core.NodeID) int {
	best, bestD := 0, t.ids[0].GridDistance(target)
	for i := 1; i < len(t.ids); i++ {
		if d := t.ids[i].GridDistance(target); d < bestD {
			best, bestD = i, d
		}
	}

	return best
}

// pathTo walks parent links from entry back to the root and reverses.
func (t *tree) pathTo(entry int) core.Path {
	var p core.Path
	for at := entry; at >= 0; at = t.parent[at] {
		p = append(p, t.ids[at])
	}
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}

	return p
}
