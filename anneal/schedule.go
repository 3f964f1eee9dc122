// SPDX-License-Identifier: MIT

package anneal

import (
	"fmt"
	"math"
)

// Default schedule.
const (
	DefaultInitialTemperature = 1000.0
	DefaultCooling            = 0.9
	DefaultMinTemperature     = 0.001
)

// Schedule is the annealing temperature sequence: Initial, Initial·Cooling,
// Initial·Cooling², … while the temperature stays above Min.
type Schedule struct {
	Initial float64 `json:"initial" yaml:"initial"`
	Cooling float64 `json:"cooling" yaml:"cooling"`
	Min     float64 `json:"min" yaml:"min"`
}

// DefaultSchedule returns 1000 → 0.001 with cooling 0.9.
func DefaultSchedule() Schedule {
	return Schedule{Initial: DefaultInitialTemperature, Cooling: DefaultCooling, Min: DefaultMinTemperature}
}

// EstimatedIterations returns how many iterations the schedule runs, or -1
// when it never reaches Min (cooling ≥ 1).
func (s Schedule) EstimatedIterations() int {
	return EstimatedIterations(s.Initial, s.Min, s.Cooling)
}

// Validate reports ErrBadSchedule for non-positive or non-finite values.
func (s Schedule) Validate() error {
	for _, v := range []float64{s.Initial, s.Cooling, s.Min} {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("schedule %+v: %w", s, ErrBadSchedule)
		}
	}

	return nil
}

// EstimatedIterations returns ⌈ln(min/initial) / ln(cooling)⌉, 0 when
// initial ≤ min, and -1 when cooling ≥ 1 or any argument is non-positive.
func EstimatedIterations(initial, min, cooling float64) int {
	if initial <= 0 || min <= 0 || cooling <= 0 || cooling >= 1 {
		return -1
	}
	if initial <= min {
		return 0
	}

	return int(math.Ceil(math.Log(min/initial) / math.Log(cooling)))
}
