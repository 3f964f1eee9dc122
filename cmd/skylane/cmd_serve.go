// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/skylane/internal/api"
	"github.com/katalvlaran/skylane/internal/config"
	"github.com/katalvlaran/skylane/internal/service"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve route planning over HTTP and WebSocket",
		Long: `Build the configured lattice and serve it.

Endpoints: POST /api/routes, POST /api/plans, GET /api/health,
GET /api/graph/stats, GET /api/graph/nearest, GET /api/graph/reach,
GET /ws, GET /metrics.
Configuration comes from SKYLANE_* environment variables and an optional
.env file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logrus.New()
			log.SetFormatter(&logrus.JSONFormatter{})
			log.SetOutput(cmd.ErrOrStderr())

			if envFile != "" {
				config.LoadDotEnv(log, envFile)
			} else {
				config.LoadDotEnv(log)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			lvl, _ := logrus.ParseLevel(cfg.LogLevel) // validated by Load
			log.SetLevel(lvl)
			if lvl < logrus.DebugLevel {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, log)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "dotenv file to load (default: .env)")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	began := time.Now()
	g, err := cfg.BuildLattice()
	if err != nil {
		return fmt.Errorf("building lattice: %w", err)
	}
	st := g.Stats()
	log.WithFields(logrus.Fields{
		"nodes":     st.Nodes,
		"available": st.AvailableNodes,
		"edges":     st.Edges,
		"islands":   st.Islands,
		"took":      time.Since(began).String(),
	}).Info("lattice built")

	opts := []service.Option{
		service.WithStrategy(cfg.RouteStrategy),
		service.WithAnnealOptions(cfg.AnnealOptions()...),
	}
	if cfg.RestrictArea {
		opts = append(opts, service.WithArea(cfg.Bounds), service.WithTolerance(cfg.Tolerance))
	}
	svc := service.NewRouteService(g, log, opts...)

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: api.NewRouter(ctx, &api.RouterDeps{
			Log:         log,
			Routes:      svc,
			CORSOrigins: cfg.CORSOrigins,
			Version:     version,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("listening on %s: %w", srv.Addr, err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
