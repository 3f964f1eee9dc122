// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"math"
	"strconv"

	"github.com/sirupsen/logrus"
)

func (c *Config) validate() error {
	if err := c.validateNetwork(); err != nil {
		return err
	}

	if err := c.validateLattice(); err != nil {
		return err
	}

	if err := c.validateOptimizer(); err != nil {
		return err
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("SKYLANE_LOG_LEVEL: %w", err)
	}

	return nil
}

func (c *Config) validateNetwork() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("SKYLANE_PORT must be a valid integer: %w", err)
	}

	if port < 1 || port > 65535 {
		return fmt.Errorf("SKYLANE_PORT must be between 1 and 65535")
	}

	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("SKYLANE_CORS_ORIGINS must list at least one origin")
	}

	for _, o := range c.CORSOrigins {
		if o == "*" {
			return fmt.Errorf("SKYLANE_CORS_ORIGINS must list explicit origins, not *")
		}
	}

	return nil
}

func (c *Config) validateLattice() error {
	if !c.Dims.Valid() {
		return fmt.Errorf("SKYLANE_GRID_DIMS must be positive on every axis, got %d,%d,%d",
			c.Dims.NI, c.Dims.NJ, c.Dims.NK)
	}

	lo, hi := c.Bounds.Min, c.Bounds.Max
	for _, ax := range [...]struct {
		name   string
		lo, hi float64
	}{{"x", lo.X, hi.X}, {"y", lo.Y, hi.Y}, {"z", lo.Z, hi.Z}} {
		if !(ax.lo < ax.hi) || math.IsInf(ax.lo, 0) || math.IsInf(ax.hi, 0) {
			return fmt.Errorf("SKYLANE_GRID_MIN/MAX: %s axis needs finite min < max, got %g..%g", ax.name, ax.lo, ax.hi)
		}
	}

	if !(c.Availability >= 0 && c.Availability <= 1) {
		return fmt.Errorf("SKYLANE_AVAILABILITY must be in [0,1], got %g", c.Availability)
	}

	if !(c.Tolerance >= 0) {
		return fmt.Errorf("SKYLANE_POSITION_TOLERANCE must be ≥ 0, got %g", c.Tolerance)
	}

	return nil
}

func (c *Config) validateOptimizer() error {
	if err := c.Schedule.Validate(); err != nil {
		return fmt.Errorf("SKYLANE_ANNEAL_*: %w", err)
	}

	if !(c.Penalty >= 0) {
		return fmt.Errorf("SKYLANE_ANNEAL_PENALTY must be ≥ 0, got %g", c.Penalty)
	}

	if c.MaxIterations < 0 {
		return fmt.Errorf("SKYLANE_ANNEAL_MAX_ITERATIONS must be ≥ 0")
	}

	if c.TimeLimit < 0 {
		return fmt.Errorf("SKYLANE_ANNEAL_TIME_LIMIT must be ≥ 0")
	}

	if c.Restarts < 1 || c.Restarts > 64 {
		return fmt.Errorf("SKYLANE_ANNEAL_RESTARTS must be between 1 and 64")
	}

	if c.Schedule.Cooling >= 1 && c.MaxIterations == 0 && c.TimeLimit == 0 {
		return fmt.Errorf("SKYLANE_ANNEAL_COOLING ≥ 1 needs SKYLANE_ANNEAL_MAX_ITERATIONS or SKYLANE_ANNEAL_TIME_LIMIT")
	}

	return nil
}
