// SPDX-License-Identifier: MIT
//
// File: options.go
// Role: functional options for Optimize, Improve and Neighbor.
// Policy:
//   - Option constructors panic on meaningless values (nil, negative).
//   - Schedule values are checked by Optimize/Improve and returned as errors,
//     since they usually come from configuration files.

package anneal

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/skylane/conflict"
	"github.com/katalvlaran/skylane/internal/rng"
	"github.com/katalvlaran/skylane/planner"
)

// DefaultNeighborRetries bounds how often Neighbor redraws a segment whose
// re-route came back identical.
const DefaultNeighborRetries = 8

type config struct {
	schedule      Schedule
	penalty       float64
	maxIterations int
	timeLimit     time.Duration
	rng           *rand.Rand
	retries       int
	conflictAware bool
	hold          bool
	restarts      int
	trace         bool
	log           logrus.FieldLogger
	plannerOpts   []planner.Option
}

// Option customizes an annealing run.
type Option func(*config)

func newConfig(opts ...Option) config {
	cfg := config{
		schedule: DefaultSchedule(),
		penalty:  conflict.DefaultPenalty,
		retries:  DefaultNeighborRetries,
		restarts: 1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rng.FromSeed(rng.DefaultSeed)
	}
	if cfg.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.log = l
	}

	return cfg
}

func (c config) costOptions() []conflict.Option {
	if c.hold {
		return []conflict.Option{conflict.WithHoldAtDestination()}
	}

	return nil
}

// WithSchedule replaces the temperature schedule. Values are validated when
// the run starts (ErrBadSchedule, ErrUnboundedSchedule).
func WithSchedule(s Schedule) Option {
	return func(c *config) { c.schedule = s }
}

// WithPenalty sets the cost of one conflict. Panics on negative values.
func WithPenalty(p float64) Option {
	if p < 0 || p != p {
		panic(fmt.Sprintf("anneal: WithPenalty(%g) needs p ≥ 0", p))
	}
	return func(c *config) { c.penalty = p }
}

// WithMaxIterations caps the search loop; 0 means no cap. Panics if n < 0.
func WithMaxIterations(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("anneal: WithMaxIterations(%d) needs n ≥ 0", n))
	}
	return func(c *config) { c.maxIterations = n }
}

// WithTimeLimit caps the wall-clock time of the search loop; 0 means no cap.
// Panics on negative durations.
func WithTimeLimit(d time.Duration) Option {
	if d < 0 {
		panic(fmt.Sprintf("anneal: WithTimeLimit(%v) needs d ≥ 0", d))
	}
	return func(c *config) { c.timeLimit = d }
}

// WithRand injects the root random source. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("anneal: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}

// WithSeed seeds the root random source (0 maps to rng.DefaultSeed).
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rng.FromSeed(seed) }
}

// WithNeighborRetries sets how many segments Neighbor may draw before it
// gives up on finding a changed re-route. Panics if n < 1.
func WithNeighborRetries(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("anneal: WithNeighborRetries(%d) needs n ≥ 1", n))
	}
	return func(c *config) { c.retries = n }
}

// WithConflictAwareRepair makes Neighbor re-route a vehicle involved in a
// collision around the collision step, avoiding nodes other vehicles hold
// during that window. Without collisions it behaves like the blind operator.
func WithConflictAwareRepair() Option {
	return func(c *config) { c.conflictAware = true }
}

// WithHoldAtDestination scores solutions with parked vehicles occupying
// their destination until the horizon (see conflict.WithHoldAtDestination).
func WithHoldAtDestination() Option {
	return func(c *config) { c.hold = true }
}

// WithRestarts runs n independent searches in parallel from the same initial
// solution and keeps the best. Panics if n < 1.
func WithRestarts(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("anneal: WithRestarts(%d) needs n ≥ 1", n))
	}
	return func(c *config) { c.restarts = n }
}

// WithTrace records the best cost after every iteration in Result.Trace.
func WithTrace() Option {
	return func(c *config) { c.trace = true }
}

// WithLogger routes run diagnostics to l. Panics on nil.
func WithLogger(l logrus.FieldLogger) Option {
	if l == nil {
		panic("anneal: WithLogger(nil)")
	}
	return func(c *config) { c.log = l }
}

// WithPlannerOptions forwards options to planner.Plan during Initializing.
// WithRand is always overridden with a per-vehicle stream.
func WithPlannerOptions(opts ...planner.Option) Option {
	return func(c *config) { c.plannerOpts = append(c.plannerOpts, opts...) }
}
