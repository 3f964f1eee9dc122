// SPDX-License-Identifier: MIT

// Package config provides environment-driven configuration for skylane.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/skylane/anneal"
	"github.com/katalvlaran/skylane/builder"
	"github.com/katalvlaran/skylane/core"
	"github.com/katalvlaran/skylane/planner"
)

// Config holds all application configuration values.
type Config struct {
	Port        string
	ListenHost  string
	CORSOrigins []string
	LogLevel    string

	// Lattice.
	Dims         core.Dims
	Bounds       builder.Bounds
	Availability float64
	Seed         int64

	// RestrictArea rejects positions outside Bounds widened by Tolerance.
	// Off by default: every position snaps to its nearest available node.
	RestrictArea bool
	Tolerance    float64

	// RouteStrategy is the planner used for single-vehicle requests.
	RouteStrategy planner.Strategy

	// Optimizer.
	Schedule      anneal.Schedule
	Penalty       float64
	MaxIterations int
	TimeLimit     time.Duration
	Restarts      int
	ConflictAware bool
	Hold          bool
}

// Defaults cover the service area 40.554°N..40.888°N × 73.996°W..73.596°W
// at 111 320 m per degree (x north, y east), 50 ft to 350 ft of altitude,
// sampled on a 100×100×2 lattice.
const (
	defaultDims = "100,100,2"
	defaultMin  = "0,0,15.24"
	defaultMax  = "37105.9,44532.4,106.68"
)

// LoadDotEnv reads a .env file into the environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(log logrus.FieldLogger, files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.WithError(err).Debug("no .env file loaded, using process environment")
	}
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          envOrDefault("SKYLANE_PORT", "8765"),
		ListenHost:    envOrDefault("SKYLANE_LISTEN_HOST", "127.0.0.1"),
		LogLevel:      envOrDefault("SKYLANE_LOG_LEVEL", "info"),
		ConflictAware: envOrDefault("SKYLANE_ANNEAL_CONFLICT_AWARE", "false") == "true",
		Hold:          envOrDefault("SKYLANE_ANNEAL_HOLD", "false") == "true",
		RestrictArea:  envOrDefault("SKYLANE_RESTRICT_AREA", "false") == "true",
	}

	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	var err error
	cfg.Dims, err = parseDims("SKYLANE_GRID_DIMS", envOrDefault("SKYLANE_GRID_DIMS", defaultDims))
	collect(err)
	cfg.Bounds.Min, err = parseVec("SKYLANE_GRID_MIN", envOrDefault("SKYLANE_GRID_MIN", defaultMin))
	collect(err)
	cfg.Bounds.Max, err = parseVec("SKYLANE_GRID_MAX", envOrDefault("SKYLANE_GRID_MAX", defaultMax))
	collect(err)
	cfg.Availability, err = parseFloat("SKYLANE_AVAILABILITY", "1")
	collect(err)
	cfg.Tolerance, err = parseFloat("SKYLANE_POSITION_TOLERANCE", "0")
	collect(err)

	cfg.RouteStrategy, err = planner.ParseStrategy(envOrDefault("SKYLANE_ROUTE_STRATEGY", "shortest"))
	if err != nil {
		collect(fmt.Errorf("SKYLANE_ROUTE_STRATEGY: %w", err))
	}

	seed, err := strconv.ParseInt(envOrDefault("SKYLANE_SEED", "1"), 10, 64)
	if err != nil {
		collect(fmt.Errorf("SKYLANE_SEED must be an integer: %w", err))
	}
	cfg.Seed = seed

	def := anneal.DefaultSchedule()
	cfg.Schedule.Initial, err = parseFloat("SKYLANE_ANNEAL_INITIAL_TEMP", ftoa(def.Initial))
	collect(err)
	cfg.Schedule.Cooling, err = parseFloat("SKYLANE_ANNEAL_COOLING", ftoa(def.Cooling))
	collect(err)
	cfg.Schedule.Min, err = parseFloat("SKYLANE_ANNEAL_MIN_TEMP", ftoa(def.Min))
	collect(err)
	cfg.Penalty, err = parseFloat("SKYLANE_ANNEAL_PENALTY", "10000")
	collect(err)
	cfg.MaxIterations, err = parseInt("SKYLANE_ANNEAL_MAX_ITERATIONS", "0")
	collect(err)
	cfg.Restarts, err = parseInt("SKYLANE_ANNEAL_RESTARTS", "1")
	collect(err)

	limit, err := time.ParseDuration(envOrDefault("SKYLANE_ANNEAL_TIME_LIMIT", "0s"))
	if err != nil {
		collect(fmt.Errorf("SKYLANE_ANNEAL_TIME_LIMIT must be a duration: %w", err))
	}
	cfg.TimeLimit = limit

	origins := envOrDefault("SKYLANE_CORS_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("config: %w", errors.Join(errs...))
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

// LatticeOptions returns the builder options implied by the configuration.
func (c *Config) LatticeOptions() []builder.BuilderOption {
	return []builder.BuilderOption{
		builder.WithSeed(c.Seed),
		builder.WithAvailabilityProbability(c.Availability),
	}
}

// BuildLattice builds the configured airspace graph.
func (c *Config) BuildLattice() (*core.Graph, error) {
	return builder.Lattice(c.Bounds, c.Dims, c.LatticeOptions()...)
}

// AnnealOptions returns the optimizer options implied by the configuration.
func (c *Config) AnnealOptions() []anneal.Option {
	opts := []anneal.Option{
		anneal.WithSchedule(c.Schedule),
		anneal.WithPenalty(c.Penalty),
		anneal.WithSeed(c.Seed),
		anneal.WithRestarts(c.Restarts),
	}
	if c.MaxIterations > 0 {
		opts = append(opts, anneal.WithMaxIterations(c.MaxIterations))
	}
	if c.TimeLimit > 0 {
		opts = append(opts, anneal.WithTimeLimit(c.TimeLimit))
	}
	if c.ConflictAware {
		opts = append(opts, anneal.WithConflictAwareRepair())
	}
	if c.Hold {
		opts = append(opts, anneal.WithHoldAtDestination())
	}

	return opts
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

func parseFloat(key, fallback string) (float64, error) {
	v, err := strconv.ParseFloat(envOrDefault(key, fallback), 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}

	return v, nil
}

func parseInt(key, fallback string) (int, error) {
	v, err := strconv.Atoi(envOrDefault(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}

	return v, nil
}

// parseTriple splits "a,b,c" into three trimmed fields.
func parseTriple(key, raw string) ([3]string, error) {
	var out [3]string
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return out, fmt.Errorf("%s must have three comma-separated values, got %q", key, raw)
	}
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}

	return out, nil
}

func parseDims(key, raw string) (core.Dims, error) {
	parts, err := parseTriple(key, raw)
	if err != nil {
		return core.Dims{}, err
	}
	var n [3]int
	for i, p := range parts {
		if n[i], err = strconv.Atoi(p); err != nil {
			return core.Dims{}, fmt.Errorf("%s must hold integers: %w", key, err)
		}
	}

	return core.Dims{NI: n[0], NJ: n[1], NK: n[2]}, nil
}

func parseVec(key, raw string) (core.Vec3, error) {
	parts, err := parseTriple(key, raw)
	if err != nil {
		return core.Vec3{}, err
	}
	var f [3]float64
	for i, p := range parts {
		if f[i], err = strconv.ParseFloat(p, 64); err != nil {
			return core.Vec3{}, fmt.Errorf("%s must hold numbers: %w", key, err)
		}
	}

	return core.Vec3{X: f[0], Y: f[1], Z: f[2]}, nil
}
