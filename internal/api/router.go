// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/skylane/internal/middleware"
	"github.com/katalvlaran/skylane/internal/service"
	"github.com/katalvlaran/skylane/internal/ws"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	Routes      *service.RouteService
	CORSOrigins []string
	Version     string
}

// maxBodySize bounds request bodies; a full batch of vehicles fits easily.
const maxBodySize = 1 << 20

func setupMiddleware(r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.Prometheus("/metrics"))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerRoutes(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	log := deps.Log
	health := NewHealthHandler(deps.Version, deps.Routes.Graph().Len())
	routes := NewRouteHandler(deps.Routes, log)
	graph := NewGraphHandler(deps.Routes, log)

	api := r.Group("/api")
	api.GET("/health", health.Liveness)
	api.POST("/routes", routes.Route)
	api.POST("/plans", routes.Plan)
	api.GET("/graph/stats", graph.Stats)
	api.GET("/graph/nearest", graph.Nearest)
	api.GET("/graph/reach", graph.Reach)

	r.GET("/ws", ws.Handler(ctx, log, deps.Routes, deps.CORSOrigins))
}

// NewRouter creates the gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(r, deps)
	registerRoutes(ctx, r, deps)

	return r
}

func ginLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}
		middleware.Logger(c, log).WithFields(fields).Info("request")
	}
}
