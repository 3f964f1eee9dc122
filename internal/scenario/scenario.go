// SPDX-License-Identifier: MIT

// Package scenario loads planning scenarios from YAML files.
//
// A scenario describes one lattice, an optional optimizer configuration and
// either explicit routes or a count of routes to generate from the left
// face (i = 0) to the right face (i = NI-1) of the lattice.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/skylane/anneal"
	"github.com/katalvlaran/skylane/builder"
	"github.com/katalvlaran/skylane/core"
	"github.com/katalvlaran/skylane/internal/rng"
	"github.com/katalvlaran/skylane/planner"
)

// ErrInvalidScenario indicates a scenario document that cannot be used.
var ErrInvalidScenario = errors.New("scenario: invalid")

// Scenario is the YAML document.
type Scenario struct {
	Name       string            `yaml:"name"`
	Lattice    Lattice           `yaml:"lattice"`
	Anneal     Anneal            `yaml:"anneal"`
	Routes     []planner.Request `yaml:"routes"`
	EdgeRoutes int               `yaml:"edge_routes"`
}

// Lattice configures the airspace graph.
type Lattice struct {
	Dims   core.Dims      `yaml:"dims"`
	Bounds builder.Bounds `yaml:"bounds"`
	// Availability is the probability of a node being available. Nil means 1.
	Availability *float64      `yaml:"availability"`
	Blocked      []core.NodeID `yaml:"blocked"`
	Seed         int64         `yaml:"seed"`
}

// Anneal configures the optimizer. Zero values keep the defaults.
type Anneal struct {
	Schedule      *anneal.Schedule `yaml:"schedule"`
	Penalty       *float64         `yaml:"penalty"`
	MaxIterations int              `yaml:"max_iterations"`
	TimeLimit     time.Duration    `yaml:"time_limit"`
	Restarts      int              `yaml:"restarts"`
	ConflictAware bool             `yaml:"conflict_aware"`
	Hold          bool             `yaml:"hold_at_destination"`
	Seed          int64            `yaml:"seed"`
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	return Parse(raw)
}

// Parse decodes a scenario document. Unknown keys are rejected.
func Parse(raw []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

func (s *Scenario) validate() error {
	if len(s.Routes) > 0 && s.EdgeRoutes > 0 {
		return fmt.Errorf("%w: routes and edge_routes are mutually exclusive", ErrInvalidScenario)
	}
	if s.EdgeRoutes < 0 {
		return fmt.Errorf("%w: edge_routes must be ≥ 0", ErrInvalidScenario)
	}
	a := s.Anneal
	if a.MaxIterations < 0 || a.TimeLimit < 0 || a.Restarts < 0 {
		return fmt.Errorf("%w: anneal limits must be ≥ 0", ErrInvalidScenario)
	}
	if p := s.Lattice.Availability; p != nil && !(*p >= 0 && *p <= 1) {
		return fmt.Errorf("%w: lattice availability must be in [0,1]", ErrInvalidScenario)
	}
	if a.Penalty != nil && !(*a.Penalty >= 0) {
		return fmt.Errorf("%w: anneal penalty must be ≥ 0", ErrInvalidScenario)
	}

	return nil
}

// Build constructs the scenario lattice. Blocked nodes are unavailable
// regardless of the availability draw.
func (s *Scenario) Build() (*core.Graph, error) {
	opts := []builder.BuilderOption{builder.WithSeed(s.Lattice.Seed)}
	if s.Lattice.Availability != nil {
		opts = append(opts, builder.WithAvailabilityProbability(*s.Lattice.Availability))
	}
	if len(s.Lattice.Blocked) > 0 {
		blocked := make(map[core.NodeID]struct{}, len(s.Lattice.Blocked))
		for _, id := range s.Lattice.Blocked {
			blocked[id] = struct{}{}
		}
		// A predicate replaces the probability draw, so fold it in here.
		draw := availabilityDraw(s.Lattice)
		opts = append(opts, builder.WithAvailability(func(id core.NodeID) bool {
			ok := draw()
			if _, hit := blocked[id]; hit {
				return false
			}
			return ok
		}))
	}

	g, err := builder.Lattice(s.Lattice.Bounds, s.Lattice.Dims, opts...)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}

	return g, nil
}

// availabilityDraw mirrors the builder's Bernoulli draw: one value per node
// in flat index order from a stream seeded with the lattice seed.
func availabilityDraw(l Lattice) func() bool {
	if l.Availability == nil || *l.Availability >= 1 {
		return func() bool { return true }
	}
	r, p := rng.FromSeed(l.Seed), *l.Availability

	return func() bool { return r.Float64() < p }
}

// Requests returns the explicit routes, or EdgeRoutes(g, n) when the
// scenario asks for generated ones.
func (s *Scenario) Requests(g *core.Graph) []planner.Request {
	if s.EdgeRoutes > 0 {
		return EdgeRoutes(g, s.EdgeRoutes)
	}

	return s.Routes
}

// AnnealOptions converts the anneal section into optimizer options.
func (s *Scenario) AnnealOptions() []anneal.Option {
	a := s.Anneal
	opts := []anneal.Option{anneal.WithSeed(a.Seed)}
	if a.Schedule != nil {
		opts = append(opts, anneal.WithSchedule(*a.Schedule))
	}
	if a.Penalty != nil {
		opts = append(opts, anneal.WithPenalty(*a.Penalty))
	}
	if a.MaxIterations > 0 {
		opts = append(opts, anneal.WithMaxIterations(a.MaxIterations))
	}
	if a.TimeLimit > 0 {
		opts = append(opts, anneal.WithTimeLimit(a.TimeLimit))
	}
	if a.Restarts > 1 {
		opts = append(opts, anneal.WithRestarts(a.Restarts))
	}
	if a.ConflictAware {
		opts = append(opts, anneal.WithConflictAwareRepair())
	}
	if a.Hold {
		opts = append(opts, anneal.WithHoldAtDestination())
	}

	return opts
}
