// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/skylane/anneal"
	"github.com/katalvlaran/skylane/conflict"
	"github.com/katalvlaran/skylane/core"
	"github.com/katalvlaran/skylane/internal/metrics"
	"github.com/katalvlaran/skylane/mapper"
	"github.com/katalvlaran/skylane/planner"
)

var (
	// ErrInvalidPosition indicates a vehicle whose start or end cannot be
	// mapped to an available node.
	ErrInvalidPosition = errors.New("service: invalid position")

	// ErrNoPath indicates a vehicle with no geometric route at all.
	ErrNoPath = errors.New("service: no path")
)

// MaxBatchSize caps the number of vehicles in one plan request.
const MaxBatchSize = 256

// PlanRequest asks for a joint plan for several vehicles.
type PlanRequest struct {
	Vehicles []RouteRequest `json:"vehicles"`
}

// VehiclePlan is one vehicle's part of a joint plan.
type VehiclePlan struct {
	DroneID string            `json:"drone_id"`
	Route   []mapper.Waypoint `json:"route"`
	Path    core.Path         `json:"path"`
	Length  float64           `json:"length"`
}

// PlanResult is the answer to a PlanRequest.
type PlanResult struct {
	PlanID       string               `json:"plan_id"`
	Vehicles     []VehiclePlan        `json:"vehicles"`
	TotalCost    float64              `json:"total_cost"`
	InitialCost  float64              `json:"initial_cost"`
	Conflicts    int                  `json:"conflicts"`
	Collisions   []conflict.Collision `json:"collisions,omitempty"`
	ConflictFree bool                 `json:"conflict_free"`
	Iterations   int                  `json:"iterations"`
	Accepted     int                  `json:"accepted"`
	StopReason   string               `json:"stop_reason"`
	DurationMS   float64              `json:"duration_ms"`
}

// Plan maps every vehicle onto the lattice and optimizes the joint solution.
//
// Errors: ErrInvalidRequest, ErrInvalidPosition, ErrNoPath (all naming the
// vehicle index), or the context error. A plan with residual conflicts is
// not an error; check PlanResult.ConflictFree.
func (s *RouteService) Plan(ctx context.Context, req PlanRequest) (*PlanResult, error) {
	if len(req.Vehicles) == 0 {
		return nil, fmt.Errorf("%w: no vehicles", ErrInvalidRequest)
	}
	if len(req.Vehicles) > MaxBatchSize {
		return nil, fmt.Errorf("%w: %d vehicles exceeds the limit of %d", ErrInvalidRequest, len(req.Vehicles), MaxBatchSize)
	}

	reqs := make([]planner.Request, len(req.Vehicles))
	for i, v := range req.Vehicles {
		if err := v.validate(); err != nil {
			return nil, fmt.Errorf("vehicle %d: %w", i, err)
		}
		origin, dest, err := s.resolve(v.Start, v.End)
		if err != nil {
			return nil, fmt.Errorf("vehicle %d (%s): %w: %w", i, v.DroneID, ErrInvalidPosition, err)
		}
		reqs[i] = planner.Request{Origin: origin, Destination: dest}
	}

	planID := uuid.New().String()
	log := s.log.WithFields(logrus.Fields{"plan_id": planID, "vehicles": len(reqs)})

	opts := append(append([]anneal.Option(nil), s.annealOpts...),
		anneal.WithLogger(log), anneal.WithPlannerOptions(s.plannerOpts...))
	began := time.Now()
	res, err := anneal.Optimize(ctx, s.g, reqs, opts...)
	metrics.PlanDuration.WithLabelValues("batch").Observe(time.Since(began).Seconds())
	if err != nil {
		if anneal.IsNoRoute(err) {
			return nil, fmt.Errorf("%w: %w", ErrNoPath, err)
		}
		return nil, err
	}
	metrics.AnnealIterations.Observe(float64(res.Iterations))
	metrics.ResidualConflicts.Observe(float64(res.Conflicts))
	if err := res.Err(); err != nil {
		log.WithError(err).Warn("plan delivered with conflicts")
	}

	out := &PlanResult{
		PlanID:       planID,
		Vehicles:     make([]VehiclePlan, len(res.Best)),
		TotalCost:    res.BestCost,
		InitialCost:  res.InitialCost,
		Conflicts:    res.Conflicts,
		Collisions:   res.Collisions,
		ConflictFree: res.ConflictFree(),
		Iterations:   res.Iterations,
		Accepted:     res.Accepted,
		StopReason:   string(res.StopReason),
		DurationMS:   float64(res.Duration.Microseconds()) / 1000,
	}
	for i, p := range res.Best {
		wps, err := s.m.Waypoints(p, req.Vehicles[i].MaxSpeed)
		if err != nil {
			return nil, fmt.Errorf("vehicle %d: building waypoints: %w", i, err)
		}
		out.Vehicles[i] = VehiclePlan{
			DroneID: req.Vehicles[i].DroneID,
			Route:   wps,
			Path:    p,
			Length:  res.PerVehicle[i],
		}
	}

	return out, nil
}
