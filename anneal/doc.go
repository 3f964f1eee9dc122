// Package anneal improves a multi-vehicle solution with simulated annealing.
//
// Lifecycle of a run (State):
//
//	Initializing – plan one path per request (planner.Plan; vehicles are
//	               planned concurrently with derived random streams).
//	Searching    – repeat: perturb with Neighbor, score with conflict.Cost,
//	               accept if cheaper or with probability exp(-Δ/T), keep the
//	               best solution seen, then multiply T by the cooling factor.
//	Converged    – the loop ended; Result.StopReason says why.
//
// The loop length is implied by the schedule:
//
//	iterations ≈ ⌈ln(min/initial) / ln(cooling)⌉   (see EstimatedIterations)
//
// The default schedule 1000 → 0.001 with cooling 0.9 runs 132 iterations.
// WithMaxIterations and WithTimeLimit add hard cut-offs, and the context
// cancels a run early. A cooling factor ≥ 1 needs one of the cut-offs
// (ErrUnboundedSchedule).
//
// Errors:
//
//	ErrNoInitialSolution – some vehicle has no path at all; the batch is aborted.
//	ErrConflictsRemain   – returned by Result.Err when the best solution still
//	                       has conflicts, so callers can tell "blocked only by
//	                       other vehicles" from "no route exists".
//	ErrUnboundedSchedule – cooling ≥ 1 without an iteration or time cut-off.
//	ErrBadSchedule       – non-positive temperatures or cooling factor.
package anneal
