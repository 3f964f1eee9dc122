// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Lattice identifiers, geometry, node/edge records and the Graph arena.
// Policy:
//   - Graph is append-only until Freeze, read-only afterwards.
//   - Sentinel errors only; callers branch with errors.Is.

package core

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for lattice operations.
var (
	// ErrNodeNotFound indicates an identifier outside the grid bounds.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrNodeUnavailable indicates an operation touched an unavailable node.
	ErrNodeUnavailable = errors.New("core: node unavailable")

	// ErrLoopNotAllowed indicates a self-loop was attempted.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrNotAdjacent indicates the endpoints of an edge are not 26-neighbours.
	ErrNotAdjacent = errors.New("core: nodes are not lattice neighbours")

	// ErrBadWeight indicates a negative or NaN edge weight.
	ErrBadWeight = errors.New("core: bad edge weight")

	// ErrDuplicateEdge indicates u→v was already added.
	ErrDuplicateEdge = errors.New("core: duplicate edge")

	// ErrFrozen indicates a mutation after Freeze.
	ErrFrozen = errors.New("core: graph is frozen")

	// ErrEdgeNotFound indicates two consecutive path nodes without a direct edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrEmptyPath indicates a path with no nodes.
	ErrEmptyPath = errors.New("core: empty path")

	// ErrBadDims indicates non-positive grid counts or a node slice of the wrong size.
	ErrBadDims = errors.New("core: bad lattice dimensions")
)

// NodeID identifies a lattice node by its grid indices.
type NodeID struct {
	I int `json:"i" yaml:"i"`
	J int `json:"j" yaml:"j"`
	K int `json:"k" yaml:"k"`
}

// String renders the identifier as "(i,j,k)".
func (id NodeID) String() string {
	return fmt.Sprintf("(%d,%d,%d)", id.I, id.J, id.K)
}

// GridDistance returns the Euclidean distance between two identifiers
// measured in grid steps (index space, not physical units).
func (id NodeID) GridDistance(o NodeID) float64 {
	di := float64(id.I - o.I)
	dj := float64(id.J - o.J)
	dk := float64(id.K - o.K)

	return math.Sqrt(di*di + dj*dj + dk*dk)
}

// IsNeighbour reports whether o differs from id by at most one step on each
// axis and is not id itself (26-connected neighbourhood).
func (id NodeID) IsNeighbour(o NodeID) bool {
	if id == o {
		return false
	}

	return absInt(id.I-o.I) <= 1 && absInt(id.J-o.J) <= 1 && absInt(id.K-o.K) <= 1
}

// Dims holds per-axis node counts.
type Dims struct {
	NI int `json:"ni" yaml:"ni"`
	NJ int `json:"nj" yaml:"nj"`
	NK int `json:"nk" yaml:"nk"`
}

// Valid reports whether every axis count is at least one.
func (d Dims) Valid() bool {
	return d.NI >= 1 && d.NJ >= 1 && d.NK >= 1
}

// Len returns the number of nodes in the lattice.
func (d Dims) Len() int {
	return d.NI * d.NJ * d.NK
}

// Contains reports whether id lies inside the bounds.
func (d Dims) Contains(id NodeID) bool {
	return id.I >= 0 && id.I < d.NI &&
		id.J >= 0 && id.J < d.NJ &&
		id.K >= 0 && id.K < d.NK
}

// Index flattens id to its arena position. The caller guarantees Contains(id).
func (d Dims) Index(id NodeID) int {
	return (id.I*d.NJ+id.J)*d.NK + id.K
}

// ID converts an arena position back to grid indices.
func (d Dims) ID(idx int) NodeID {
	k := idx % d.NK
	rest := idx / d.NK

	return NodeID{I: rest / d.NJ, J: rest % d.NJ, K: k}
}

// Vec3 is a Cartesian position in a consistent linear unit.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Node is a single lattice point.
type Node struct {
	// ID is the grid identifier.
	ID NodeID

	// Pos is the physical position.
	Pos Vec3

	// Available is false for blocked airspace; immutable after build.
	Available bool
}

// Edge is a directed, weighted connection between two arena indices.
type Edge struct {
	// From is the arena index of the source node.
	From int

	// To is the arena index of the destination node.
	To int

	// Weight is the non-negative travel distance.
	Weight float64
}

// Graph is the lattice arena. The zero value is not usable; see NewGraph.
//
// nodes[idx] is the node with Dims.Index(ID) == idx; out[idx] lists its
// outgoing edges. island[idx] is the weakly connected component label of an
// available node (-1 for unavailable nodes), populated by Freeze.
type Graph struct {
	dims      Dims
	nodes     []Node
	out       [][]Edge
	edgeCount int
	frozen    bool
	island    []int
	islands   int
}

// NewGraph wraps nodes into a Graph. nodes must be in flattened order
// (nodes[i].ID == dims.ID(i)) and len(nodes) must equal dims.Len().
//
// Complexity: O(V).
func NewGraph(dims Dims, nodes []Node) (*Graph, error) {
	if !dims.Valid() || len(nodes) != dims.Len() {
		return nil, fmt.Errorf("NewGraph: dims=%v nodes=%d: %w", dims, len(nodes), ErrBadDims)
	}
	for i := range nodes {
		if nodes[i].ID != dims.ID(i) {
			return nil, fmt.Errorf("NewGraph: node %d has id %v, want %v: %w",
				i, nodes[i].ID, dims.ID(i), ErrBadDims)
		}
	}

	cp := make([]Node, len(nodes))
	copy(cp, nodes)

	return &Graph{
		dims:  dims,
		nodes: cp,
		out:   make([][]Edge, len(nodes)),
	}, nil
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}

	return x
}
