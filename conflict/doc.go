// Package conflict scores a multi-vehicle solution.
//
// The score of a solution is the sum of its path lengths plus a penalty per
// conflict. A conflict is a (node, step) key that was already claimed by an
// earlier path, visited in vehicle order. A path's step is its index, so two
// vehicles collide when they stand on the same node at the same index.
//
// Evaluation never fails. A path with a missing edge (or an empty path)
// makes the total +Inf. That way a stale or broken candidate can still be
// compared and discarded.
//
// By default a vehicle occupies its destination only at its own terminal
// index. WithHoldAtDestination keeps it parked there until the last vehicle
// of the solution arrives.
package conflict
