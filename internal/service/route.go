// SPDX-License-Identifier: MIT

// Package service turns position-based route requests into lattice plans.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/skylane/core"
	"github.com/katalvlaran/skylane/internal/metrics"
	"github.com/katalvlaran/skylane/mapper"
	"github.com/katalvlaran/skylane/planner"
)

// Status is the outcome of a single-vehicle route request.
type Status string

const (
	StatusSuccess         Status = "success"
	StatusNoPath          Status = "no_path"
	StatusInvalidPosition Status = "invalid_position"
)

// ErrInvalidRequest indicates a malformed request (bad numbers, empty batch).
var ErrInvalidRequest = errors.New("service: invalid request")

// RouteRequest asks for one vehicle's route between two positions.
type RouteRequest struct {
	DroneID           string    `json:"drone_id"`
	Model             string    `json:"model"`
	Start             core.Vec3 `json:"start_position"`
	End               core.Vec3 `json:"end_position"`
	BatteryPercentage float64   `json:"battery_percentage"`
	MaxSpeed          float64   `json:"max_speed"`
	// MaxRange caps the route length in lattice units; 0 means unlimited.
	MaxRange float64 `json:"max_range"`
}

func (r RouteRequest) validate() error {
	for _, v := range []float64{r.Start.X, r.Start.Y, r.Start.Z, r.End.X, r.End.Y, r.End.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: positions must be finite", ErrInvalidRequest)
		}
	}
	if !(r.MaxSpeed >= 0) || math.IsInf(r.MaxSpeed, 0) {
		return fmt.Errorf("%w: max_speed must be a finite number ≥ 0", ErrInvalidRequest)
	}
	if !(r.MaxRange >= 0) {
		return fmt.Errorf("%w: max_range must be ≥ 0", ErrInvalidRequest)
	}

	return nil
}

// RouteResult is the answer to a RouteRequest.
type RouteResult struct {
	DroneID string            `json:"drone_id"`
	Status  Status            `json:"status"`
	Message string            `json:"message,omitempty"`
	Route   []mapper.Waypoint `json:"route,omitempty"`
	Path    core.Path         `json:"path,omitempty"`
	// Length is the route length in lattice units (success only).
	Length float64 `json:"length,omitempty"`
}

// Messages attached to failed results.
const (
	MsgInvalidPosition = "Could not find valid graph nodes for start or end position"
	MsgNoPath          = "No path found in graph between start and end positions"
)

// RouteService plans routes on one lattice. It is safe for concurrent use.
type RouteService struct {
	g           *core.Graph
	m           *mapper.Mapper
	log         logrus.FieldLogger
	strategy    planner.Strategy
	plannerOpts []planner.Option
	annealOpts  annealOptions
}

// NewRouteService creates a RouteService over g.
func NewRouteService(g *core.Graph, log logrus.FieldLogger, opts ...Option) *RouteService {
	cfg := newConfig(opts...)
	var mopts []mapper.Option
	if cfg.area != nil {
		mopts = append(mopts, mapper.WithArea(*cfg.area), mapper.WithTolerance(cfg.tolerance))
	}
	s := &RouteService{
		g:           g,
		m:           mapper.New(g, mopts...),
		log:         log,
		strategy:    cfg.strategy,
		plannerOpts: cfg.plannerOpts,
		annealOpts:  cfg.annealOpts,
	}
	stats := g.Stats()
	metrics.LatticeNodes.Set(float64(stats.Nodes))
	metrics.LatticeEdges.Set(float64(stats.Edges))

	return s
}

// Graph returns the served lattice.
func (s *RouteService) Graph() *core.Graph { return s.g }

// Mapper returns the position mapper.
func (s *RouteService) Mapper() *mapper.Mapper { return s.m }

// Route plans one vehicle. Planning failures are reported in the result
// status; the error is non-nil only for malformed requests.
func (s *RouteService) Route(ctx context.Context, req RouteRequest) (*RouteResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	began := time.Now()
	defer func() { metrics.PlanDuration.WithLabelValues("route").Observe(time.Since(began).Seconds()) }()

	log := s.log.WithFields(logrus.Fields{"drone_id": req.DroneID, "model": req.Model})
	res := &RouteResult{DroneID: req.DroneID}

	origin, dest, err := s.resolve(req.Start, req.End)
	if err != nil {
		log.WithError(err).Info("route request positions not resolved")
		res.Status, res.Message = StatusInvalidPosition, MsgInvalidPosition

		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := append(append([]planner.Option(nil), s.plannerOpts...),
		planner.WithStrategy(s.strategy), planner.WithLogger(log))
	if req.MaxRange > 0 {
		opts = append(opts, planner.WithMaxLength(req.MaxRange))
	}
	path, err := planner.Plan(s.g, origin, dest, opts...)
	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"origin":      origin.String(),
			"destination": dest.String(),
			"max_range":   req.MaxRange,
		}).Info("no route")
		res.Status, res.Message = StatusNoPath, MsgNoPath

		return res, nil
	}

	wps, err := s.m.Waypoints(path, req.MaxSpeed)
	if err != nil {
		return nil, fmt.Errorf("building waypoints: %w", err)
	}
	length, _ := path.Length(s.g)

	res.Status, res.Route, res.Path, res.Length = StatusSuccess, wps, path, length
	log.WithFields(logrus.Fields{"waypoints": len(wps), "length": length}).Debug("route planned")

	return res, nil
}

// resolve maps both positions to their nearest available nodes.
func (s *RouteService) resolve(start, end core.Vec3) (core.NodeID, core.NodeID, error) {
	origin, _, err := s.m.Nearest(start)
	if err != nil {
		return core.NodeID{}, core.NodeID{}, fmt.Errorf("start: %w", err)
	}
	dest, _, err := s.m.Nearest(end)
	if err != nil {
		return core.NodeID{}, core.NodeID{}, fmt.Errorf("end: %w", err)
	}

	return origin, dest, nil
}
