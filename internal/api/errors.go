// SPDX-License-Identifier: MIT

package api

import (
	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/skylane/internal/metrics"
	"github.com/katalvlaran/skylane/internal/middleware"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest  = "invalid_request"
	ErrCodeValidationError = "validation_error"
	ErrCodeInvalidPosition = "invalid_position"
	ErrCodeNoPath          = "no_path"
	ErrCodeUnavailable     = "unavailable"
	ErrCodeInternalError   = "internal_error"
)

// respondError writes {code, message, request_id} and aborts the request.
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()

	resp := gin.H{
		"code":    code,
		"message": message,
	}
	if rid := middleware.GetRequestID(c); rid != "" {
		resp["request_id"] = rid
	}

	c.AbortWithStatusJSON(status, resp)
}
