// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/skylane/core"
	"github.com/katalvlaran/skylane/internal/config"
	"github.com/katalvlaran/skylane/planner"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:8765", cfg.Addr())
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, core.Dims{NI: 100, NJ: 100, NK: 2}, cfg.Dims)
	require.InDelta(t, 15.24, cfg.Bounds.Min.Z, 1e-9)
	require.InDelta(t, 106.68, cfg.Bounds.Max.Z, 1e-9)
	require.Equal(t, 1.0, cfg.Availability)
	require.Equal(t, int64(1), cfg.Seed)
	require.Equal(t, 1000.0, cfg.Schedule.Initial)
	require.Equal(t, 0.9, cfg.Schedule.Cooling)
	require.Equal(t, 0.001, cfg.Schedule.Min)
	require.Equal(t, 10000.0, cfg.Penalty)
	require.Equal(t, 1, cfg.Restarts)
	require.Equal(t, planner.StrategyShortest, cfg.RouteStrategy)
	require.False(t, cfg.RestrictArea)
	require.Zero(t, cfg.Tolerance)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	require.Len(t, cfg.AnnealOptions(), 4)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SKYLANE_PORT", "9000")
	t.Setenv("SKYLANE_GRID_DIMS", " 4, 5 ,3")
	t.Setenv("SKYLANE_GRID_MIN", "0,0,0")
	t.Setenv("SKYLANE_GRID_MAX", "3,4,2")
	t.Setenv("SKYLANE_ANNEAL_TIME_LIMIT", "250ms")
	t.Setenv("SKYLANE_ANNEAL_MAX_ITERATIONS", "50")
	t.Setenv("SKYLANE_ANNEAL_CONFLICT_AWARE", "true")
	t.Setenv("SKYLANE_CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("SKYLANE_RESTRICT_AREA", "true")
	t.Setenv("SKYLANE_POSITION_TOLERANCE", "0.5")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "9000", cfg.Port)
	require.True(t, cfg.RestrictArea)
	require.Equal(t, 0.5, cfg.Tolerance)
	require.Equal(t, core.Dims{NI: 4, NJ: 5, NK: 3}, cfg.Dims)
	require.Equal(t, 250*time.Millisecond, cfg.TimeLimit)
	require.True(t, cfg.ConflictAware)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	require.Len(t, cfg.AnnealOptions(), 7)

	g, err := cfg.BuildLattice()
	require.NoError(t, err)
	require.Equal(t, 60, g.Len())
	require.True(t, g.Frozen())
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"port":          {"SKYLANE_PORT": "0"},
		"port text":     {"SKYLANE_PORT": "http"},
		"dims arity":    {"SKYLANE_GRID_DIMS": "10,10"},
		"dims zero":     {"SKYLANE_GRID_DIMS": "10,0,2"},
		"flat bounds":   {"SKYLANE_GRID_MIN": "0,0,5", "SKYLANE_GRID_MAX": "10,10,5"},
		"availability":  {"SKYLANE_AVAILABILITY": "1.5"},
		"seed":          {"SKYLANE_SEED": "x"},
		"cooling":       {"SKYLANE_ANNEAL_COOLING": "0"},
		"unbounded":     {"SKYLANE_ANNEAL_COOLING": "1"},
		"restarts":      {"SKYLANE_ANNEAL_RESTARTS": "0"},
		"time limit":    {"SKYLANE_ANNEAL_TIME_LIMIT": "soon"},
		"log level":     {"SKYLANE_LOG_LEVEL": "loud"},
		"wildcard cors": {"SKYLANE_CORS_ORIGINS": "*"},
		"empty cors":    {"SKYLANE_CORS_ORIGINS": " , "},
		"tolerance":     {"SKYLANE_POSITION_TOLERANCE": "-1"},
		"strategy":      {"SKYLANE_ROUTE_STRATEGY": "greedy"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			require.Error(t, err)
		})
	}
}

func TestLoad_UnboundedCoolingWithCutoff(t *testing.T) {
	t.Setenv("SKYLANE_ANNEAL_COOLING", "1")
	t.Setenv("SKYLANE_ANNEAL_MAX_ITERATIONS", "10")

	_, err := config.Load()
	require.NoError(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skylane.env")
	require.NoError(t, os.WriteFile(path, []byte("SKYLANE_SEED=42\n"), 0o600))
	t.Setenv("SKYLANE_SEED", "")
	require.NoError(t, os.Unsetenv("SKYLANE_SEED"))

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	config.LoadDotEnv(log, path)
	t.Cleanup(func() { os.Unsetenv("SKYLANE_SEED") })

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, int64(42), cfg.Seed)

	// Missing files are tolerated.
	config.LoadDotEnv(log, filepath.Join(t.TempDir(), "absent.env"))
}
