// SPDX-License-Identifier: MIT

package service

import (
	"github.com/katalvlaran/skylane/anneal"
	"github.com/katalvlaran/skylane/builder"
	"github.com/katalvlaran/skylane/planner"
)

type annealOptions = []anneal.Option

type config struct {
	area        *builder.Bounds
	tolerance   float64
	strategy    planner.Strategy
	plannerOpts []planner.Option
	annealOpts  annealOptions
}

// Option customizes a RouteService.
type Option func(*config)

func newConfig(opts ...Option) config {
	// Single routes use the deterministic search unless told otherwise.
	cfg := config{strategy: planner.StrategyShortest}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithArea rejects request positions outside b with invalid_position.
// Without it every position snaps to the nearest available node.
func WithArea(b builder.Bounds) Option {
	return func(c *config) { c.area = &b }
}

// WithTolerance widens the WithArea box by d on each axis.
func WithTolerance(d float64) Option {
	return func(c *config) { c.tolerance = d }
}

// WithStrategy selects the single-route planner strategy.
func WithStrategy(s planner.Strategy) Option {
	return func(c *config) { c.strategy = s }
}

// WithPlannerOptions passes options to every single-route and initial plan.
func WithPlannerOptions(opts ...planner.Option) Option {
	return func(c *config) { c.plannerOpts = append(c.plannerOpts, opts...) }
}

// WithAnnealOptions passes options to every batch optimization.
func WithAnnealOptions(opts ...anneal.Option) Option {
	return func(c *config) { c.annealOpts = append(c.annealOpts, opts...) }
}
