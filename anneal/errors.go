// SPDX-License-Identifier: MIT

package anneal

import "errors"

var (
	// ErrNoInitialSolution indicates at least one vehicle could not be planned.
	ErrNoInitialSolution = errors.New("anneal: no initial solution")

	// ErrConflictsRemain indicates the best solution still has conflicts.
	ErrConflictsRemain = errors.New("anneal: conflicts remain")

	// ErrUnboundedSchedule indicates a schedule that never cools without a cut-off.
	ErrUnboundedSchedule = errors.New("anneal: unbounded schedule")

	// ErrBadSchedule indicates a non-positive temperature or cooling factor.
	ErrBadSchedule = errors.New("anneal: bad schedule")
)
