// SPDX-License-Identifier: MIT

package planner

import "errors"

var (
	// ErrNoPathFound indicates the destination cannot be reached. It is
	// recoverable: callers may skip the vehicle or report "no_path".
	ErrNoPathFound = errors.New("planner: no path found")

	// ErrSamplingExhausted indicates the tree search used all its iterations.
	// Plan treats it as a signal to fall back, never as a final answer.
	ErrSamplingExhausted = errors.New("planner: sampling exhausted")

	// ErrNodeNotFound indicates an endpoint outside the lattice bounds.
	ErrNodeNotFound = errors.New("planner: node not found")

	// ErrNodeUnavailable indicates an endpoint in blocked airspace.
	ErrNodeUnavailable = errors.New("planner: node unavailable")

	// ErrBadOption indicates an option value that cannot be used.
	ErrBadOption = errors.New("planner: bad option")
)
