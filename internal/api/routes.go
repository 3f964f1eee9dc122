// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/skylane/internal/metrics"
	"github.com/katalvlaran/skylane/internal/middleware"
	"github.com/katalvlaran/skylane/internal/service"
)

// RouteHandler serves single-vehicle routes and joint plans.
type RouteHandler struct {
	svc RoutePlanner
	log logrus.FieldLogger
}

// NewRouteHandler creates a RouteHandler with the given planner and logger.
func NewRouteHandler(svc RoutePlanner, log logrus.FieldLogger) *RouteHandler {
	return &RouteHandler{svc: svc, log: log}
}

// Route handles POST /api/routes. Planning outcomes (success, no_path,
// invalid_position) are all 200 responses carrying a status field.
func (h *RouteHandler) Route(c *gin.Context) {
	var req service.RouteRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.svc.Route(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)

		return
	}
	metrics.RouteOutcomes.WithLabelValues("http", string(res.Status)).Inc()

	c.JSON(http.StatusOK, res)
}

// Plan handles POST /api/plans.
func (h *RouteHandler) Plan(c *gin.Context) {
	var req service.PlanRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.svc.Plan(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)

		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *RouteHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
	case errors.Is(err, service.ErrInvalidPosition):
		respondError(c, http.StatusUnprocessableEntity, ErrCodeInvalidPosition, err.Error())
	case errors.Is(err, service.ErrNoPath):
		respondError(c, http.StatusUnprocessableEntity, ErrCodeNoPath, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respondError(c, http.StatusServiceUnavailable, ErrCodeUnavailable, "request cancelled")
	default:
		middleware.Logger(c, h.log).WithError(err).Error("planning failed")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}

// bindJSON decodes the body into v, responding 400 or 413 on failure.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, http.StatusRequestEntityTooLarge, ErrCodeInvalidRequest, "request body too large")

			return false
		}
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return false
	}

	return true
}
