// SPDX-License-Identifier: MIT

package planner

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/skylane/core"
)

// Request is one vehicle's origin/destination pair.
type Request struct {
	Origin      core.NodeID `json:"origin" yaml:"origin"`
	Destination core.NodeID `json:"destination" yaml:"destination"`
}

// ValidateRequest checks that both endpoints exist, are available, and lie
// on the same island of a frozen graph. A request across islands can never
// be served, so it fails with ErrNoPathFound before any search runs.
func ValidateRequest(g *core.Graph, r Request) error {
	if err := checkEndpoints("ValidateRequest", g, r.Origin, r.Destination); err != nil {
		return err
	}
	if g.Frozen() && !g.SameIsland(r.Origin, r.Destination) {
		return fmt.Errorf("ValidateRequest: %v and %v are on different islands: %w",
			r.Origin, r.Destination, ErrNoPathFound)
	}

	return nil
}

// ValidateRequests validates every request and joins the failures, each
// prefixed with its vehicle index. It returns nil when all are valid.
func ValidateRequests(g *core.Graph, reqs []Request) error {
	var errs []error
	for i, r := range reqs {
		if err := ValidateRequest(g, r); err != nil {
			errs = append(errs, fmt.Errorf("vehicle %d: %w", i, err))
		}
	}

	return errors.Join(errs...)
}
