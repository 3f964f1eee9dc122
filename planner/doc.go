// Package planner finds a path for a single vehicle between two lattice nodes.
//
// Two strategies are available:
//
//   - Sample grows a random tree rooted at the origin. Each iteration draws an
//     available node (or the destination, with the goal-bias probability),
//     finds the closest tree node in grid-index space, and steps toward the
//     draw by at most StepSize. The new node is kept only if it is available,
//     not yet in the tree, and directly connected to its parent. The search
//     ends when the destination is added, or when a node within
//     GoalThreshold has a direct edge to it.
//   - Shortest runs Dijkstra over the edge weights.
//
// Plan applies Sample and falls back to Shortest. Only when both fail does it
// report ErrNoPathFound. Plan(g, n, n) returns the one-node path [n].
//
// All randomness comes from an injected *rand.Rand (WithRand / WithSeed), so
// identical inputs produce identical paths.
package planner
