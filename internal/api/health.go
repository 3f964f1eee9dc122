// SPDX-License-Identifier: MIT

// Package api provides HTTP handlers for skylane.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	version   string
	startTime time.Time
	nodes     int
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(version string, nodes int) *HealthHandler {
	return &HealthHandler{version: version, startTime: time.Now(), nodes: nodes}
}

type healthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	LatticeNodes  int     `json:"lattice_nodes"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Liveness handles GET /api/health.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:        "ok",
		Version:       h.version,
		LatticeNodes:  h.nodes,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	})
}
