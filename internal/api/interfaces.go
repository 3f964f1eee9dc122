// SPDX-License-Identifier: MIT

package api

import (
	"context"

	"github.com/katalvlaran/skylane/core"
	"github.com/katalvlaran/skylane/internal/service"
	"github.com/katalvlaran/skylane/mapper"
)

// RoutePlanner defines the planning operations used by RouteHandler.
type RoutePlanner interface {
	Route(ctx context.Context, req service.RouteRequest) (*service.RouteResult, error)
	Plan(ctx context.Context, req service.PlanRequest) (*service.PlanResult, error)
}

// LatticeSource exposes the served lattice to GraphHandler.
type LatticeSource interface {
	Graph() *core.Graph
	Mapper() *mapper.Mapper
	Reach(pos core.Vec3, maxRange float64) (*service.ReachResult, error)
}
