// SPDX-License-Identifier: MIT
//
// File: sample.go
// Role: randomized tree search between two lattice nodes.
// Determinism:
//   - Every draw comes from the configured generator, in a fixed order:
//     one Float64 for the goal bias, then one Intn when sampling a node.

package planner

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/skylane/core"
)

// Sample runs the tree search from origin to destination.
//
// Errors:
//   - ErrNodeNotFound / ErrNodeUnavailable for bad endpoints.
//   - ErrSamplingExhausted (also matching ErrNoPathFound) after the
//     iteration budget is spent without reaching the destination.
//
// Complexity: O(N·T) where N = iterations and T = tree size (linear nearest scan).
func Sample(g *core.Graph, origin, destination core.NodeID, opts ...Option) (core.Path, error) {
	if err := checkEndpoints("Sample", g, origin, destination); err != nil {
		return nil, err
	}
	if origin == destination {
		return core.Path{origin}, nil
	}
	cfg := newConfig(opts...)

	return sample(g, origin, destination, cfg)
}

func sample(g *core.Graph, origin, destination core.NodeID, cfg config) (core.Path, error) {
	pool := g.AvailableNodes()
	dims := g.Dims()
	t := newTree(origin, 64)

	for it := 0; it < cfg.maxIterations; it++ {
		target := destination
		if cfg.rng.Float64() >= cfg.goalBias {
			target = pool[cfg.rng.Intn(len(pool))]
		}

		near := t.nearest(target)
		from := t.ids[near]
		next, ok := extend(from, target, cfg.stepSize, dims)
		if !ok || t.contains(next) || !g.Available(next) || !g.HasEdge(from, next) {
			continue
		}
		entry := t.add(next, near)

		if next == destination {
			return inRange(g, t.pathTo(entry), cfg)
		}
		if next.GridDistance(destination) <= cfg.goalThreshold && g.HasEdge(next, destination) {
			return inRange(g, t.pathTo(t.add(destination, entry)), cfg)
		}
	}

	cfg.log.WithFields(logrus.Fields{
		"origin":      origin.String(),
		"destination": destination.String(),
		"iterations":  cfg.maxIterations,
		"tree_size":   len(t.ids),
	}).Debug("sampling exhausted")

	return nil, fmt.Errorf("Sample(%v→%v): %d iterations: %w: %w",
		origin, destination, cfg.maxIterations, ErrSamplingExhausted, ErrNoPathFound)
}

// inRange rejects a sampled path longer than the configured maximum as a
// failed sampling run.
func inRange(g *core.Graph, p core.Path, cfg config) (core.Path, error) {
	length, _ := p.Length(g)
	if length <= cfg.maxLength {
		return p, nil
	}
	cfg.log.WithFields(logrus.Fields{
		"length":     length,
		"max_length": cfg.maxLength,
	}).Debug("sampled path exceeds max length")

	return nil, fmt.Errorf("Sample(%v→%v): length %g exceeds %g: %w: %w",
		p[0], p[len(p)-1], length, cfg.maxLength, ErrSamplingExhausted, ErrNoPathFound)
}

// extend steps from toward target by at most step grid units, rounding to
// the nearest grid coordinates. ok is false when the result leaves the bounds.
func extend(from, target core.NodeID, step float64, dims core.Dims) (core.NodeID, bool) {
	d := from.GridDistance(target)
	if d == 0 {
		return from, true
	}
	if d <= step {
		return target, dims.Contains(target)
	}

	scale := step / d
	next := core.NodeID{
		I: roundAlong(from.I, target.I, scale),
		J: roundAlong(from.J, target.J, scale),
		K: roundAlong(from.K, target.K, scale),
	}

	return next, dims.Contains(next)
}

func roundAlong(from, to int, scale float64) int {
	return int(math.RoundToEven(float64(from) + float64(to-from)*scale))
}
