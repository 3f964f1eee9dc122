// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: sentinel errors, Options and functional options for the search.

package dijkstra

import (
	"errors"
	"math"

	"github.com/katalvlaran/skylane/core"
)

// Sentinel errors returned by the Dijkstra implementation.
var (
	// ErrNilGraph indicates that a nil *core.Graph was passed in.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrVertexNotFound indicates a source or target outside the lattice.
	ErrVertexNotFound = errors.New("dijkstra: vertex not found in graph")

	// ErrVertexUnavailable indicates a source or target that is blocked airspace.
	ErrVertexUnavailable = errors.New("dijkstra: vertex unavailable")

	// ErrNoPath indicates the target cannot be reached from the source.
	ErrNoPath = errors.New("dijkstra: no path")

	// ErrBadMaxDistance indicates a negative or NaN distance cap.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")
)

// Unreachable is the distance reported for nodes the search never reached.
var Unreachable = math.Inf(1)

// Options configures a search.
//
// Source      – starting node (required by Dijkstra; ShortestPath sets it).
// MaxDistance – nodes farther than this are not explored. Default +Inf.
// Blocked     – nodes for which Blocked returns true are never entered,
//
//	except the source and the target. Default nil (nothing blocked).
type Options struct {
	Source      core.NodeID
	MaxDistance float64
	Blocked     func(core.NodeID) bool
}

// Option represents a functional option for configuring a search.
type Option func(*Options)

// Source sets the starting node.
func Source(id core.NodeID) Option {
	return func(o *Options) {
		o.Source = id
	}
}

// WithMaxDistance caps exploration at max. Panics on negative or NaN input.
func WithMaxDistance(max float64) Option {
	if max < 0 || math.IsNaN(max) {
		panic(ErrBadMaxDistance.Error())
	}
	return func(o *Options) {
		o.MaxDistance = max
	}
}

// WithBlocked marks nodes as impassable for this search only. The source and
// the target are exempt. A nil predicate clears the setting.
func WithBlocked(blocked func(core.NodeID) bool) Option {
	return func(o *Options) {
		o.Blocked = blocked
	}
}

// DefaultOptions returns Options initialized for source.
//
// Defaults:
//   - MaxDistance: +Inf.
//   - Blocked:     nil.
func DefaultOptions(source core.NodeID) Options {
	return Options{
		Source:      source,
		MaxDistance: math.Inf(1),
	}
}
