// SPDX-License-Identifier: MIT

package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/skylane/internal/metrics"
)

// unmatchedRoute labels requests that hit no registered route.
const unmatchedRoute = "unknown"

// Prometheus counts and times requests by method, route pattern and
// status. Requests to the skip patterns (usually the scrape endpoint
// itself) are not recorded.
func Prometheus(skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skipped[c.FullPath()]; ok {
			c.Next()

			return
		}

		began := time.Now()
		c.Next()

		labels := prometheus.Labels{
			"method": c.Request.Method,
			"path":   routeLabel(c),
			"status": strconv.Itoa(c.Writer.Status()),
		}
		metrics.RequestsTotal.With(labels).Inc()
		metrics.RequestDuration.With(labels).Observe(time.Since(began).Seconds())
	}
}

// routeLabel is the matched route pattern, never the raw URL, so query
// strings and unknown paths cannot grow the label set.
func routeLabel(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}

	return unmatchedRoute
}
