// SPDX-License-Identifier: MIT
package anneal_test

import (
	"context"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/skylane/anneal"
	"github.com/katalvlaran/skylane/builder"
	"github.com/katalvlaran/skylane/conflict"
	"github.com/katalvlaran/skylane/core"
	"github.com/katalvlaran/skylane/planner"
)

func id(i, j, k int) core.NodeID { return core.NodeID{I: i, J: j, K: k} }

func lattice(t *testing.T, dims core.Dims, opts ...builder.BuilderOption) *core.Graph {
	t.Helper()
	top := func(n int) float64 {
		if n < 2 {
			return 1
		}
		return float64(n - 1)
	}
	g, err := builder.Lattice(builder.Bounds{Max: core.Vec3{X: top(dims.NI), Y: top(dims.NJ), Z: top(dims.NK)}}, dims, opts...)
	require.NoError(t, err)

	return g
}

// CrossingSuite covers two vehicles whose straight routes meet at the centre
// of a 3×3×1 grid at step 1.
type CrossingSuite struct {
	suite.Suite
	g       *core.Graph
	initial core.Solution
}

func (s *CrossingSuite) SetupTest() {
	s.g = lattice(s.T(), core.Dims{NI: 3, NJ: 3, NK: 1})
	s.initial = core.Solution{
		{id(0, 1, 0), id(1, 1, 0), id(2, 1, 0)},
		{id(1, 0, 0), id(1, 1, 0), id(1, 2, 0)},
	}
}

// TestInitialCostHasOnePenalty checks the starting point of the scenario.
func (s *CrossingSuite) TestInitialCostHasOnePenalty() {
	b := conflict.Evaluate(s.g, s.initial, conflict.DefaultPenalty)
	require.Equal(s.T(), 1, b.Conflicts)
	require.InDelta(s.T(), 4+conflict.DefaultPenalty, b.Total, 1e-9)
}

// TestBlindRepairReportsRemainingConflict: both routes are unique shortest
// paths, so shortest-path re-routing can never move them.
func (s *CrossingSuite) TestBlindRepairReportsRemainingConflict() {
	res, err := anneal.Improve(context.Background(), s.g, s.initial, anneal.WithSeed(5))
	require.NoError(s.T(), err)

	require.Equal(s.T(), anneal.Converged, res.State)
	require.Equal(s.T(), anneal.StopTemperature, res.StopReason)
	require.Equal(s.T(), anneal.DefaultSchedule().EstimatedIterations(), res.Iterations)
	require.Equal(s.T(), 1, res.Conflicts)
	require.False(s.T(), res.ConflictFree())
	require.ErrorIs(s.T(), res.Err(), anneal.ErrConflictsRemain)
	require.Equal(s.T(), res.InitialCost, res.BestCost)
	require.True(s.T(), s.initial.Equal(res.Best))
}

// TestConflictAwareRepairClearsCentre: re-routing around the occupied centre
// removes the only conflict.
func (s *CrossingSuite) TestConflictAwareRepairClearsCentre() {
	res, err := anneal.Improve(context.Background(), s.g, s.initial,
		anneal.WithSeed(5), anneal.WithConflictAwareRepair())
	require.NoError(s.T(), err)

	require.True(s.T(), res.ConflictFree())
	require.NoError(s.T(), res.Err())
	require.InDelta(s.T(), 2+2*math.Sqrt2, res.BestCost, 1e-9)
	require.Less(s.T(), res.BestCost, res.InitialCost)
	for v, p := range res.Best {
		require.NoError(s.T(), p.Validate(s.g))
		require.Equal(s.T(), s.initial[v][0], p[0])
		require.Equal(s.T(), s.initial[v][len(s.initial[v])-1], p[len(p)-1])
	}
	require.Len(s.T(), res.PerVehicle, 2)
	require.True(s.T(), s.initial.Equal(res.Initial), "input must not be modified")
}

// TestRestartsKeepBest runs several searches in parallel.
func (s *CrossingSuite) TestRestartsKeepBest() {
	res, err := anneal.Improve(context.Background(), s.g, s.initial,
		anneal.WithSeed(9), anneal.WithConflictAwareRepair(), anneal.WithRestarts(4))
	require.NoError(s.T(), err)
	require.True(s.T(), res.ConflictFree())
	require.GreaterOrEqual(s.T(), res.Restart, 0)
	require.Less(s.T(), res.Restart, 4)
}

// TestOptimizeWithShortestInitialPlan plans the crossing from its endpoints.
// Shortest-path planning reproduces the straight routes for every seed, so
// the search always starts from one conflict.
func (s *CrossingSuite) TestOptimizeWithShortestInitialPlan() {
	reqs := make([]planner.Request, len(s.initial))
	for v, p := range s.initial {
		reqs[v] = planner.Request{Origin: p[0], Destination: p[len(p)-1]}
	}

	for seed := int64(1); seed <= 5; seed++ {
		res, err := anneal.Optimize(context.Background(), s.g, reqs,
			anneal.WithSeed(seed),
			anneal.WithConflictAwareRepair(),
			anneal.WithPlannerOptions(planner.WithStrategy(planner.StrategyShortest)))
		require.NoError(s.T(), err, "seed %d", seed)

		require.True(s.T(), s.initial.Equal(res.Initial), "seed %d", seed)
		require.InDelta(s.T(), 4+conflict.DefaultPenalty, res.InitialCost, 1e-9, "seed %d", seed)
		require.True(s.T(), res.ConflictFree(), "seed %d", seed)
		require.InDelta(s.T(), 2+2*math.Sqrt2, res.BestCost, 1e-9, "seed %d", seed)
	}
}

func TestCrossingSuite(t *testing.T) {
	suite.Run(t, new(CrossingSuite))
}

func TestEstimatedIterations(t *testing.T) {
	require.Equal(t, 132, anneal.EstimatedIterations(1000, 0.001, 0.9))
	require.Equal(t, 0, anneal.EstimatedIterations(1, 5, 0.9))
	require.Equal(t, -1, anneal.EstimatedIterations(1000, 0.001, 1))
	require.Equal(t, -1, anneal.EstimatedIterations(1000, 0, 0.5))
}

func TestSchedule_Errors(t *testing.T) {
	g := lattice(t, core.Dims{NI: 3, NJ: 3, NK: 1})
	sol := core.Solution{{id(0, 0, 0), id(1, 0, 0)}}
	ctx := context.Background()

	_, err := anneal.Improve(ctx, g, sol, anneal.WithSchedule(anneal.Schedule{Initial: 10, Cooling: 1, Min: 1}))
	require.ErrorIs(t, err, anneal.ErrUnboundedSchedule)

	_, err = anneal.Improve(ctx, g, sol, anneal.WithSchedule(anneal.Schedule{Initial: 10, Cooling: 0, Min: 1}))
	require.ErrorIs(t, err, anneal.ErrBadSchedule)

	// A cut-off makes a non-cooling schedule acceptable.
	res, err := anneal.Improve(ctx, g, sol,
		anneal.WithSchedule(anneal.Schedule{Initial: 10, Cooling: 1, Min: 1}), anneal.WithMaxIterations(25))
	require.NoError(t, err)
	require.Equal(t, 25, res.Iterations)
	require.Equal(t, anneal.StopMaxIterations, res.StopReason)

	res, err = anneal.Improve(ctx, g, sol,
		anneal.WithSchedule(anneal.Schedule{Initial: 10, Cooling: 1, Min: 1}), anneal.WithTimeLimit(20*time.Millisecond))
	require.NoError(t, err)
	require.Equal(t, anneal.StopTimeLimit, res.StopReason)
}

func TestImprove_RejectsBrokenInitial(t *testing.T) {
	g := lattice(t, core.Dims{NI: 3, NJ: 3, NK: 1})
	_, err := anneal.Improve(context.Background(), g, core.Solution{{id(0, 0, 0), id(2, 2, 0)}})
	require.ErrorIs(t, err, anneal.ErrNoInitialSolution)
	require.ErrorIs(t, err, core.ErrEdgeNotFound)
}

func TestImprove_CanceledContext(t *testing.T) {
	g := lattice(t, core.Dims{NI: 3, NJ: 3, NK: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := anneal.Improve(ctx, g, core.Solution{{id(0, 0, 0), id(1, 0, 0), id(2, 0, 0)}})
	require.NoError(t, err)
	require.Equal(t, anneal.StopCanceled, res.StopReason)
	require.Zero(t, res.Iterations)
	require.InDelta(t, 2.0, res.BestCost, 1e-12)
}

func TestOptimize_NoInitialSolution(t *testing.T) {
	g := lattice(t, core.Dims{NI: 3, NJ: 3, NK: 1},
		builder.WithAvailability(func(n core.NodeID) bool { return n.I != 1 }))
	reqs := []planner.Request{
		{Origin: id(0, 0, 0), Destination: id(0, 2, 0)},
		{Origin: id(0, 0, 0), Destination: id(2, 2, 0)},
	}
	res, err := anneal.Optimize(context.Background(), g, reqs,
		anneal.WithPlannerOptions(planner.WithMaxIterations(50)))
	require.Nil(t, res)
	require.ErrorIs(t, err, anneal.ErrNoInitialSolution)
	require.ErrorIs(t, err, planner.ErrNoPathFound)
	require.Contains(t, err.Error(), "vehicle 1")
	require.True(t, anneal.IsNoRoute(err))
	require.False(t, anneal.IsNoRoute(anneal.ErrConflictsRemain))
}

func TestOptimize_EmptyBatch(t *testing.T) {
	g := lattice(t, core.Dims{NI: 2, NJ: 2, NK: 1})
	res, err := anneal.Optimize(context.Background(), g, nil)
	require.NoError(t, err)
	require.Equal(t, anneal.StopEmpty, res.StopReason)
	require.Zero(t, res.BestCost)
	require.Empty(t, res.Best)
}

func TestOptimize_BestCostIsMonotone(t *testing.T) {
	g := lattice(t, core.Dims{NI: 6, NJ: 6, NK: 2})
	reqs := []planner.Request{
		{Origin: id(0, 0, 0), Destination: id(5, 5, 0)},
		{Origin: id(0, 5, 0), Destination: id(5, 0, 0)},
		{Origin: id(0, 2, 1), Destination: id(5, 3, 1)},
		{Origin: id(0, 3, 0), Destination: id(5, 2, 1)},
	}
	res, err := anneal.Optimize(context.Background(), g, reqs,
		anneal.WithSeed(17), anneal.WithTrace(), anneal.WithConflictAwareRepair())
	require.NoError(t, err)

	require.Len(t, res.Trace, res.Iterations)
	prev := res.InitialCost
	for i, c := range res.Trace {
		require.LessOrEqual(t, c, prev, "trace[%d] increased", i)
		prev = c
	}
	require.LessOrEqual(t, res.BestCost, res.InitialCost)
	require.Equal(t, res.BestCost, res.Trace[len(res.Trace)-1])
	require.InDelta(t, conflict.Cost(g, res.Best, conflict.DefaultPenalty), res.BestCost, 1e-9)

	for v, p := range res.Best {
		require.NoError(t, p.Validate(g))
		require.Equal(t, reqs[v].Origin, p[0])
		require.Equal(t, reqs[v].Destination, p[len(p)-1])
	}
}

func TestOptimize_Reproducible(t *testing.T) {
	g := lattice(t, core.Dims{NI: 5, NJ: 5, NK: 2})
	reqs := []planner.Request{
		{Origin: id(0, 0, 0), Destination: id(4, 4, 1)},
		{Origin: id(4, 0, 1), Destination: id(0, 4, 0)},
		{Origin: id(2, 0, 0), Destination: id(2, 4, 0)},
	}
	a, err := anneal.Optimize(context.Background(), g, reqs, anneal.WithSeed(3))
	require.NoError(t, err)
	b, err := anneal.Optimize(context.Background(), g, reqs, anneal.WithSeed(3))
	require.NoError(t, err)

	require.True(t, a.Best.Equal(b.Best))
	require.Equal(t, a.BestCost, b.BestCost)
	require.Equal(t, a.Accepted, b.Accepted)
}

func TestNeighbor_Contract(t *testing.T) {
	g := lattice(t, core.Dims{NI: 3, NJ: 3, NK: 1})
	detour := core.Path{id(0, 0, 0), id(0, 1, 0), id(0, 2, 0), id(1, 2, 0), id(2, 2, 0)}
	sol := core.Solution{detour, {id(2, 0, 0), id(2, 1, 0)}}
	orig := sol.Clone()

	changed := 0
	for seed := int64(1); seed <= 20; seed++ {
		next := anneal.Neighbor(g, sol, rand.New(rand.NewSource(seed)))
		require.True(t, orig.Equal(sol), "input mutated")
		require.Len(t, next, 2)
		require.True(t, next[1].Equal(sol[1]), "short path must stay")
		require.NoError(t, next[0].Validate(g))
		require.Equal(t, detour[0], next[0][0])
		require.Equal(t, detour[len(detour)-1], next[0][len(next[0])-1])
		if !next[0].Equal(detour) {
			changed++
		}
	}
	require.Positive(t, changed)
}

func TestNeighbor_ShortPathsUnchanged(t *testing.T) {
	g := lattice(t, core.Dims{NI: 3, NJ: 3, NK: 1})
	sol := core.Solution{{id(0, 0, 0)}, {id(1, 1, 0), id(2, 2, 0)}}
	next := anneal.Neighbor(g, sol, rand.New(rand.NewSource(1)))
	require.True(t, sol.Equal(next))

	next[0][0] = id(2, 0, 0)
	require.Equal(t, id(0, 0, 0), sol[0][0], "result must be a clone")
}

func TestOptions_Panics(t *testing.T) {
	require.Panics(t, func() { anneal.WithPenalty(-1) })
	require.Panics(t, func() { anneal.WithMaxIterations(-1) })
	require.Panics(t, func() { anneal.WithTimeLimit(-time.Second) })
	require.Panics(t, func() { anneal.WithRand(nil) })
	require.Panics(t, func() { anneal.WithNeighborRetries(0) })
	require.Panics(t, func() { anneal.WithRestarts(0) })
	require.Panics(t, func() { anneal.WithLogger(nil) })
}
