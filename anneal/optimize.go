// SPDX-License-Identifier: MIT
//
// File: optimize.go
// Role: Initializing → Searching → Converged driver, parallel restarts.
// Concurrency:
//   - The graph is shared read-only.
//   - Every goroutine owns its *rand.Rand (derived up front) and its own
//     solution clones; nothing mutable is shared.

package anneal

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/skylane/conflict"
	"github.com/katalvlaran/skylane/core"
	"github.com/katalvlaran/skylane/internal/rng"
	"github.com/katalvlaran/skylane/planner"
)

// State is the optimizer lifecycle stage.
type State int

const (
	Initializing State = iota
	Searching
	Converged
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Searching:
		return "searching"
	case Converged:
		return "converged"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// StopReason tells why the search loop ended.
type StopReason string

const (
	StopTemperature   StopReason = "temperature"
	StopMaxIterations StopReason = "max_iterations"
	StopTimeLimit     StopReason = "time_limit"
	StopCanceled      StopReason = "canceled"
	StopEmpty         StopReason = "empty"
)

// Result is the outcome of a run.
type Result struct {
	Best        core.Solution
	BestCost    float64
	Initial     core.Solution
	InitialCost float64
	// PerVehicle holds the path length of each vehicle in Best.
	PerVehicle []float64
	Conflicts  int
	Collisions []conflict.Collision
	Iterations int
	Accepted   int
	// Restart is the index of the winning run when WithRestarts(n > 1).
	Restart    int
	State      State
	StopReason StopReason
	// Trace is the best cost after each iteration (WithTrace only).
	Trace    []float64
	Duration time.Duration
}

// ConflictFree reports whether Best has no conflicts.
func (r *Result) ConflictFree() bool { return r.Conflicts == 0 }

// Err returns ErrConflictsRemain when Best still has conflicts, nil otherwise.
func (r *Result) Err() error {
	if r.Conflicts == 0 {
		return nil
	}

	return fmt.Errorf("%d conflict(s) remain after %d iterations (%s): %w",
		r.Conflicts, r.Iterations, r.StopReason, ErrConflictsRemain)
}

// Optimize plans every request and then anneals the joint solution.
//
// Errors: ErrNoInitialSolution (wrapping the planner error of the first
// failed vehicle), ErrBadSchedule, ErrUnboundedSchedule, or the context
// error if ctx ends before planning completes. Once searching, a cancelled
// context ends the loop with StopCanceled and the best solution so far.
func Optimize(ctx context.Context, g *core.Graph, reqs []planner.Request, opts ...Option) (*Result, error) {
	cfg := newConfig(opts...)
	if err := checkSchedule(cfg); err != nil {
		return nil, err
	}

	initial, err := initialSolution(ctx, g, reqs, cfg)
	if err != nil {
		return nil, err
	}

	return improve(ctx, g, initial, cfg)
}

// Improve anneals a caller-supplied solution, skipping Initializing.
// Every path must be valid in g (ErrNoInitialSolution otherwise).
func Improve(ctx context.Context, g *core.Graph, initial core.Solution, opts ...Option) (*Result, error) {
	cfg := newConfig(opts...)
	if err := checkSchedule(cfg); err != nil {
		return nil, err
	}
	for v, p := range initial {
		if err := p.Validate(g); err != nil {
			return nil, fmt.Errorf("Improve: vehicle %d: %w: %w", v, ErrNoInitialSolution, err)
		}
	}

	return improve(ctx, g, initial, cfg)
}

func checkSchedule(cfg config) error {
	if err := cfg.schedule.Validate(); err != nil {
		return err
	}
	if cfg.schedule.Cooling >= 1 && cfg.maxIterations == 0 && cfg.timeLimit == 0 {
		return fmt.Errorf("cooling %g without max iterations or time limit: %w",
			cfg.schedule.Cooling, ErrUnboundedSchedule)
	}

	return nil
}

// initialSolution plans all vehicles concurrently. Random streams are derived
// before any goroutine starts, so the result does not depend on scheduling.
// Planner failures are collected per vehicle; only ctx aborts the group.
func initialSolution(ctx context.Context, g *core.Graph, reqs []planner.Request, cfg config) (core.Solution, error) {
	sol := make(core.Solution, len(reqs))
	errs := make([]error, len(reqs))
	streams := rng.Streams(cfg.rng, len(reqs))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := range reqs {
		i := i
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			r := reqs[i]
			opts := append(append([]planner.Option(nil), cfg.plannerOpts...),
				planner.WithRand(streams[i]), planner.WithLogger(cfg.log))
			p, err := planner.Plan(g, r.Origin, r.Destination, opts...)
			if err != nil {
				errs[i] = fmt.Errorf("vehicle %d (%v→%v): %w: %w", i, r.Origin, r.Destination, ErrNoInitialSolution, err)
				return nil
			}
			sol[i] = p

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// Report the lowest failing vehicle index.
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return sol, nil
}

// improve runs the search, in parallel when restarts > 1.
func improve(ctx context.Context, g *core.Graph, initial core.Solution, cfg config) (*Result, error) {
	if cfg.restarts <= 1 {
		res := search(ctx, g, initial, cfg, cfg.rng)
		logResult(cfg.log, res)

		return res, nil
	}

	streams := rng.Streams(cfg.rng, cfg.restarts)
	results := make([]*Result, cfg.restarts)
	var eg errgroup.Group
	for i := range results {
		i := i
		eg.Go(func() error {
			results[i] = search(ctx, g, initial.Clone(), cfg, streams[i])
			results[i].Restart = i
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	best := results[0]
	for _, r := range results[1:] {
		if r.BestCost < best.BestCost {
			best = r
		}
	}
	logResult(cfg.log.WithField("restarts", cfg.restarts), best)

	return best, nil
}

// search is one annealing run. It owns initial and r.
func search(ctx context.Context, g *core.Graph, initial core.Solution, cfg config, r *rand.Rand) *Result {
	began := time.Now()
	costOpts := cfg.costOptions()
	eval := func(s core.Solution) float64 { return conflict.Cost(g, s, cfg.penalty, costOpts...) }

	current := initial.Clone()
	currentCost := eval(current)
	res := &Result{
		Initial:     initial.Clone(),
		InitialCost: currentCost,
		State:       Searching,
	}
	best, bestCost := current, currentCost

	var deadline time.Time
	if cfg.timeLimit > 0 {
		deadline = began.Add(cfg.timeLimit)
	}

	temp := cfg.schedule.Initial
	res.StopReason = StopTemperature
	if len(current) == 0 {
		res.StopReason = StopEmpty
	}

	for len(current) > 0 && temp > cfg.schedule.Min {
		if cfg.maxIterations > 0 && res.Iterations >= cfg.maxIterations {
			res.StopReason = StopMaxIterations
			break
		}
		if ctx.Err() != nil {
			res.StopReason = StopCanceled
			break
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			res.StopReason = StopTimeLimit
			break
		}

		candidate := neighbor(g, current, r, cfg)
		candidateCost := eval(candidate)
		delta := candidateCost - currentCost
		if delta < 0 || r.Float64() < math.Exp(-delta/temp) {
			current, currentCost = candidate, candidateCost
			res.Accepted++
		}
		if currentCost < bestCost {
			best, bestCost = current, currentCost
		}
		if cfg.trace {
			res.Trace = append(res.Trace, bestCost)
		}

		temp *= cfg.schedule.Cooling
		res.Iterations++
	}

	b := conflict.Evaluate(g, best, cfg.penalty, costOpts...)
	res.Best = best.Clone()
	res.BestCost = bestCost
	res.PerVehicle = b.Lengths
	res.Conflicts = b.Conflicts
	res.Collisions = b.Collisions
	res.State = Converged
	res.Duration = time.Since(began)

	return res
}

func logResult(log logrus.FieldLogger, res *Result) {
	log.WithFields(logrus.Fields{
		"iterations":   res.Iterations,
		"accepted":     res.Accepted,
		"initial_cost": res.InitialCost,
		"best_cost":    res.BestCost,
		"conflicts":    res.Conflicts,
		"stop_reason":  string(res.StopReason),
	}).Info("annealing finished")
}

// IsNoRoute reports whether err means some vehicle has no geometric route
// at all, as opposed to a route blocked only by other vehicles.
func IsNoRoute(err error) bool {
	return errors.Is(err, ErrNoInitialSolution) || errors.Is(err, planner.ErrNoPathFound)
}
