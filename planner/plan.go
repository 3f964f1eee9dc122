// SPDX-License-Identifier: MIT
//
// File: plan.go
// Role: Plan (sampling with shortest-path fallback), Shortest, endpoint checks.

package planner

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/skylane/core"
	"github.com/katalvlaran/skylane/dijkstra"
)

// Plan returns a path from origin to destination using the configured
// strategy (sampling then shortest path by default).
//
// The first node of the result is origin, the last is destination, and every
// consecutive pair is a graph edge. origin == destination yields [origin].
//
// Errors: ErrNodeNotFound, ErrNodeUnavailable, ErrNoPathFound.
func Plan(g *core.Graph, origin, destination core.NodeID, opts ...Option) (core.Path, error) {
	if err := checkEndpoints("Plan", g, origin, destination); err != nil {
		return nil, err
	}
	if origin == destination {
		return core.Path{origin}, nil
	}
	cfg := newConfig(opts...)

	switch cfg.strategy {
	case StrategyShortest:
		return shortest(g, origin, destination, cfg.maxLength)
	case StrategySampling:
		return sample(g, origin, destination, cfg)
	}

	p, err := sample(g, origin, destination, cfg)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrSamplingExhausted) {
		return nil, err
	}

	p, err = shortest(g, origin, destination, cfg.maxLength)
	if err != nil {
		return nil, err
	}
	cfg.log.WithFields(logrus.Fields{
		"origin":      origin.String(),
		"destination": destination.String(),
		"hops":        len(p) - 1,
	}).Debug("shortest-path fallback used")

	return p, nil
}

// Shortest returns the minimum-weight path between the endpoints. Of the
// options only WithMaxLength applies.
//
// Errors: ErrNodeNotFound, ErrNodeUnavailable, ErrNoPathFound.
func Shortest(g *core.Graph, origin, destination core.NodeID, opts ...Option) (core.Path, error) {
	if err := checkEndpoints("Shortest", g, origin, destination); err != nil {
		return nil, err
	}
	cfg := newConfig(opts...)

	return shortest(g, origin, destination, cfg.maxLength)
}

func shortest(g *core.Graph, origin, destination core.NodeID, maxLength float64) (core.Path, error) {
	p, _, err := dijkstra.ShortestPath(g, origin, destination, dijkstra.WithMaxDistance(maxLength))
	if err != nil {
		if errors.Is(err, dijkstra.ErrNoPath) {
			if !math.IsInf(maxLength, 1) {
				return nil, fmt.Errorf("Shortest(%v→%v): within %g: %w", origin, destination, maxLength, ErrNoPathFound)
			}

			return nil, fmt.Errorf("Shortest(%v→%v): %w", origin, destination, ErrNoPathFound)
		}

		return nil, fmt.Errorf("Shortest(%v→%v): %w", origin, destination, err)
	}

	return p, nil
}

// checkEndpoints rejects a nil graph and unknown or unavailable endpoints.
func checkEndpoints(method string, g *core.Graph, origin, destination core.NodeID) error {
	if g == nil {
		return fmt.Errorf("%s: nil graph: %w", method, ErrNodeNotFound)
	}
	for _, id := range [2]core.NodeID{origin, destination} {
		if !g.Has(id) {
			return fmt.Errorf("%s: %v: %w", method, id, ErrNodeNotFound)
		}
		if !g.Available(id) {
			return fmt.Errorf("%s: %v: %w", method, id, ErrNodeUnavailable)
		}
	}

	return nil
}
