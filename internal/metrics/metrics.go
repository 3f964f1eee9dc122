// SPDX-License-Identifier: MIT

// Package metrics defines Prometheus metrics for skylane.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skylane_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skylane_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skylane_errors_total",
			Help: "Total API errors by code",
		},
		[]string{"code"},
	)

	// RouteOutcomes counts single-vehicle route requests by status
	// (success, no_path, invalid_position) and transport (http, ws).
	RouteOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skylane_route_requests_total",
			Help: "Single-vehicle route requests by outcome",
		},
		[]string{"transport", "status"},
	)

	PlanDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skylane_plan_duration_seconds",
			Help:    "Planning duration in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10, 30},
		},
		[]string{"kind"},
	)

	AnnealIterations = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skylane_anneal_iterations",
			Help:    "Iterations per optimizer run",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	ResidualConflicts = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skylane_anneal_residual_conflicts",
			Help:    "Conflicts left in the best solution of an optimizer run",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
		},
	)

	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "skylane_websocket_connections",
			Help: "Active WebSocket connections",
		},
	)

	LatticeNodes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "skylane_lattice_nodes",
			Help: "Nodes in the served lattice",
		},
	)

	LatticeEdges = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "skylane_lattice_edges",
			Help: "Directed edges in the served lattice",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		RouteOutcomes, PlanDuration,
		AnnealIterations, ResidualConflicts,
		WSConnections, LatticeNodes, LatticeEdges,
	)
}
