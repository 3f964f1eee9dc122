// Package core defines the lattice airspace model shared by every skylane
// package: grid node identifiers, node and edge records, the immutable
// Graph arena, and the Path / Solution containers the planners produce.
//
// The Graph G = (V,E) is a directed, weighted 3-D lattice:
//
//   - V is every (i,j,k) triple inside Dims{NI,NJ,NK}; each node carries a
//     Cartesian position (linear unit, never geographic degrees) and an
//     immutable Available flag.
//   - E holds directed edges between 26-neighbours whose endpoints are both
//     available. Weights are non-negative distances.
//
// Storage is an arena: nodes live in a slice indexed by the flattened index
// (i*NJ + j)*NK + k, and each node owns a slice of outgoing edges. No maps,
// no pointers between nodes.
//
// Lifecycle:
//
//	g, _ := core.NewGraph(dims, nodes) // nodes in flat order
//	_ = g.AddEdge(u, v, w)              // builder only
//	g.Freeze()                          // computes islands, forbids mutation
//
// After Freeze the graph is read-only and may be shared between goroutines
// without locking. Every algorithm package (dijkstra, planner, conflict,
// anneal, mapper) only reads it.
//
// Time model:
//
//	A Path is a node sequence whose index is the discrete time step. Two
//	vehicles conflict when their paths hold the same node at the same index.
//	A Solution is one Path per vehicle in a fixed vehicle order.
//
// Errors (sentinel):
//
//	ErrNodeNotFound     - identifier outside the grid bounds.
//	ErrNodeUnavailable  - node exists but is flagged unavailable.
//	ErrLoopNotAllowed   - edge from a node to itself.
//	ErrNotAdjacent      - endpoints are not 26-neighbours.
//	ErrBadWeight        - negative or NaN weight.
//	ErrDuplicateEdge    - edge u→v already present.
//	ErrFrozen           - mutation after Freeze.
//	ErrEdgeNotFound     - consecutive path nodes without an edge.
//	ErrEmptyPath        - zero-length path.
package core
