// SPDX-License-Identifier: MIT
//
// File: options.go
// Role: functional options and defaults for the planner.
// Policy:
//   - Option constructors panic on meaningless values; Plan never panics.
//   - Unset rng ⇒ a fresh generator seeded with rng.DefaultSeed per call.

package planner

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/skylane/internal/rng"
)

// Defaults for the sampling strategy.
const (
	DefaultMaxIterations = 1000
	DefaultStepSize      = 3.0
	DefaultGoalBias      = 0.1
	DefaultGoalThreshold = 1.5
)

// Strategy selects which search Plan runs.
type Strategy int

const (
	// StrategyAuto runs sampling first and falls back to shortest path.
	StrategyAuto Strategy = iota
	// StrategySampling runs only the tree search.
	StrategySampling
	// StrategyShortest runs only Dijkstra.
	StrategyShortest
)

// String returns the lower-case strategy name used in logs and configs.
func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategySampling:
		return "sampling"
	case StrategyShortest:
		return "shortest"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy maps "auto", "sampling" or "shortest" to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "auto":
		return StrategyAuto, nil
	case "sampling":
		return StrategySampling, nil
	case "shortest":
		return StrategyShortest, nil
	default:
		return StrategyAuto, fmt.Errorf("ParseStrategy(%q): %w", s, ErrBadOption)
	}
}

type config struct {
	rng           *rand.Rand
	maxIterations int
	stepSize      float64
	goalBias      float64
	goalThreshold float64
	strategy      Strategy
	maxLength     float64
	log           logrus.FieldLogger
}

// Option customizes a planning call.
type Option func(*config)

func newConfig(opts ...Option) config {
	cfg := config{
		maxIterations: DefaultMaxIterations,
		stepSize:      DefaultStepSize,
		goalBias:      DefaultGoalBias,
		goalThreshold: DefaultGoalThreshold,
		strategy:      StrategyAuto,
		maxLength:     math.Inf(1),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rng.FromSeed(rng.DefaultSeed)
	}
	if cfg.log == nil {
		cfg.log = discardLogger()
	}

	return cfg
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}

// WithRand injects the random source used for sampling. Panics on nil.
// The generator is not goroutine-safe; give each concurrent call its own.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("planner: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}

// WithSeed seeds a fresh generator (0 maps to rng.DefaultSeed).
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rng.FromSeed(seed) }
}

// WithMaxIterations bounds the tree search. Panics if n < 1.
func WithMaxIterations(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("planner: WithMaxIterations(%d) needs n ≥ 1", n))
	}
	return func(c *config) { c.maxIterations = n }
}

// WithStepSize sets the maximum extension distance in grid steps. Panics
// unless step ≥ 1.
func WithStepSize(step float64) Option {
	if step < 1 || math.IsNaN(step) || math.IsInf(step, 0) {
		panic(fmt.Sprintf("planner: WithStepSize(%g) needs a finite step ≥ 1", step))
	}
	return func(c *config) { c.stepSize = step }
}

// WithGoalBias sets the probability of sampling the destination directly.
// Panics outside [0,1].
func WithGoalBias(p float64) Option {
	if p < 0 || p > 1 || math.IsNaN(p) {
		panic(fmt.Sprintf("planner: WithGoalBias(%g) needs p in [0,1]", p))
	}
	return func(c *config) { c.goalBias = p }
}

// WithGoalThreshold sets the grid-index radius inside which a node may
// connect straight to the destination. Panics on negative values.
func WithGoalThreshold(r float64) Option {
	if r < 0 || math.IsNaN(r) {
		panic(fmt.Sprintf("planner: WithGoalThreshold(%g) needs r ≥ 0", r))
	}
	return func(c *config) { c.goalThreshold = r }
}

// WithStrategy selects the search strategy for Plan.
func WithStrategy(s Strategy) Option {
	return func(c *config) { c.strategy = s }
}

// WithMaxLength rejects paths longer than d, typically a vehicle's range.
// Dijkstra stops exploring past d; a longer sampled path counts as a failed
// sampling run. Panics on negative or NaN values.
func WithMaxLength(d float64) Option {
	if d < 0 || math.IsNaN(d) {
		panic(fmt.Sprintf("planner: WithMaxLength(%g) needs d ≥ 0", d))
	}
	return func(c *config) { c.maxLength = d }
}

// WithLogger routes planner diagnostics to l. Panics on nil.
func WithLogger(l logrus.FieldLogger) Option {
	if l == nil {
		panic("planner: WithLogger(nil)")
	}
	return func(c *config) { c.log = l }
}
