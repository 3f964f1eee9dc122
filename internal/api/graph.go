// SPDX-License-Identifier: MIT

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/skylane/core"
	"github.com/katalvlaran/skylane/internal/service"
	"github.com/katalvlaran/skylane/mapper"
)

// GraphHandler serves read-only lattice queries.
type GraphHandler struct {
	src LatticeSource
	log logrus.FieldLogger
}

// NewGraphHandler creates a GraphHandler.
func NewGraphHandler(src LatticeSource, log logrus.FieldLogger) *GraphHandler {
	return &GraphHandler{src: src, log: log}
}

type statsResponse struct {
	core.Stats
	Min core.Vec3 `json:"min"`
	Max core.Vec3 `json:"max"`
}

// Stats handles GET /api/graph/stats.
func (h *GraphHandler) Stats(c *gin.Context) {
	lo, hi := h.src.Mapper().Bounds()
	c.JSON(http.StatusOK, statsResponse{Stats: h.src.Graph().Stats(), Min: lo, Max: hi})
}

type nearestResponse struct {
	Node      core.NodeID `json:"node"`
	Position  core.Vec3   `json:"position"`
	Distance  float64     `json:"distance"`
	GridIndex core.NodeID `json:"grid_index"`
}

// Nearest handles GET /api/graph/nearest?x=&y=&z=.
func (h *GraphHandler) Nearest(c *gin.Context) {
	p, ok := queryPosition(c)
	if !ok {
		return
	}

	m := h.src.Mapper()
	id, d, err := m.Nearest(p)
	if err != nil {
		if errors.Is(err, mapper.ErrOutOfBounds) || errors.Is(err, mapper.ErrNoAvailableNode) {
			respondError(c, http.StatusUnprocessableEntity, ErrCodeInvalidPosition, err.Error())

			return
		}
		h.log.WithError(err).Error("nearest node")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}
	at, _ := m.Position(id)

	c.JSON(http.StatusOK, nearestResponse{Node: id, Position: at, Distance: d, GridIndex: m.GridIndex(p)})
}

// Reach handles GET /api/graph/reach?x=&y=&z=&range=. A missing range
// means unlimited.
func (h *GraphHandler) Reach(c *gin.Context) {
	p, ok := queryPosition(c)
	if !ok {
		return
	}
	var maxRange float64
	if raw := c.Query("range"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "range must be a number")

			return
		}
		maxRange = v
	}

	res, err := h.src.Reach(p, maxRange)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, res)
	case errors.Is(err, service.ErrInvalidRequest):
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
	case errors.Is(err, service.ErrInvalidPosition):
		respondError(c, http.StatusUnprocessableEntity, ErrCodeInvalidPosition, err.Error())
	default:
		h.log.WithError(err).Error("reach query")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}

// queryPosition reads x, y and z, answering 400 when one is not a number.
func queryPosition(c *gin.Context) (core.Vec3, bool) {
	var pos [3]float64
	for i, key := range [...]string{"x", "y", "z"} {
		v, err := strconv.ParseFloat(c.Query(key), 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, key+" must be a number")

			return core.Vec3{}, false
		}
		pos[i] = v
	}

	return core.Vec3{X: pos[0], Y: pos[1], Z: pos[2]}, true
}
