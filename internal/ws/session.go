// SPDX-License-Identifier: MIT

// Package ws serves route requests over WebSocket.
//
// Clients send {"type":"request_route", ...} text frames and receive one
// {"type":"route_response", ...} frame per request, in order. Any other
// frame is echoed back as "Echo: <frame>".
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/skylane/internal/metrics"
	"github.com/katalvlaran/skylane/internal/middleware"
	"github.com/katalvlaran/skylane/internal/service"
	"github.com/katalvlaran/skylane/mapper"
)

const (
	writeTimeout   = 10 * time.Second
	wsReadLimit    = 64 << 10
	pingInterval   = 30 * time.Second
	pingTimeout    = 10 * time.Second
	maxMissedPongs = int32(2)
)

// Message types.
const (
	TypeRequestRoute  = "request_route"
	TypeRouteResponse = "route_response"
)

// Wire statuses. A position that maps to no node is reported as "error".
const (
	StatusSuccess = "success"
	StatusNoPath  = "no_path"
	StatusError   = "error"
)

// RoutePlanner answers single-vehicle route requests.
type RoutePlanner interface {
	Route(ctx context.Context, req service.RouteRequest) (*service.RouteResult, error)
}

// RouteResponse is the reply to a request_route frame.
type RouteResponse struct {
	Type    string            `json:"type"`
	DroneID string            `json:"drone_id"`
	Status  string            `json:"status"`
	Route   []mapper.Waypoint `json:"route,omitempty"`
	Message string            `json:"message,omitempty"`
}

type inbound struct {
	Type string `json:"type"`
	service.RouteRequest
}

// Session is one client connection.
type Session struct {
	conn    *websocket.Conn
	planner RoutePlanner
	log     logrus.FieldLogger
}

// NewSession wraps an accepted connection.
func NewSession(conn *websocket.Conn, planner RoutePlanner, log logrus.FieldLogger) *Session {
	return &Session{conn: conn, planner: planner, log: log}
}

// Serve handles frames until the connection closes or ctx ends.
func (s *Session) Serve(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.conn.CloseNow() //nolint:errcheck // best-effort close on teardown

	metrics.WSConnections.Inc()
	defer metrics.WSConnections.Dec()
	s.log.Debug("client connected")

	go s.keepAlive(ctx, cancel)
	s.readPump(ctx)
}

func (s *Session) readPump(ctx context.Context) {
	s.conn.SetReadLimit(wsReadLimit)

	for {
		_, msg, err := s.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				s.log.WithField("status", websocket.CloseStatus(err)).Debug("client disconnected")
			}

			return
		}

		reply, err := s.handleMessage(ctx, msg)
		if err != nil {
			s.log.WithError(err).Error("handling message")

			return
		}
		if err := s.write(ctx, reply); err != nil {
			s.log.WithError(err).Debug("write failed")

			return
		}
	}
}

// keepAlive pings the client and cancels the session after missed pongs.
func (s *Session) keepAlive(ctx context.Context, cancel context.CancelFunc) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	var missed atomic.Int32
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pingCtx, stop := context.WithTimeout(ctx, pingTimeout)
			err := s.conn.Ping(pingCtx)
			stop()
			if err == nil {
				missed.Store(0)
				continue
			}
			if missed.Add(1) >= maxMissedPongs {
				s.log.Debug("closing: consecutive missed pongs")
				cancel()

				return
			}
		}
	}
}

// handleMessage returns the frame to send back for msg.
func (s *Session) handleMessage(ctx context.Context, msg []byte) ([]byte, error) {
	var in inbound
	if err := json.Unmarshal(msg, &in); err != nil || in.Type != TypeRequestRoute {
		return append([]byte("Echo: "), msg...), nil
	}

	log := s.log.WithFields(logrus.Fields{"drone_id": in.DroneID, "model": in.Model})
	log.WithFields(logrus.Fields{
		"battery":   in.BatteryPercentage,
		"max_speed": in.MaxSpeed,
		"max_range": in.MaxRange,
	}).Info("route request")

	resp := RouteResponse{Type: TypeRouteResponse, DroneID: in.DroneID}
	res, err := s.planner.Route(ctx, in.RouteRequest)
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		resp.Status, resp.Message = StatusError, err.Error()
	case err != nil:
		return nil, err
	default:
		resp.Status = wireStatus(res.Status)
		resp.Route, resp.Message = res.Route, res.Message
	}
	metrics.RouteOutcomes.WithLabelValues("ws", resp.Status).Inc()

	return json.Marshal(resp)
}

func wireStatus(s service.Status) string {
	switch s {
	case service.StatusSuccess:
		return StatusSuccess
	case service.StatusNoPath:
		return StatusNoPath
	default:
		return StatusError
	}
}

func (s *Session) write(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	return s.conn.Write(ctx, websocket.MessageText, msg)
}

// Handler upgrades requests to WebSocket sessions. Sessions end when the
// request ends or appCtx is cancelled.
func Handler(appCtx context.Context, log logrus.FieldLogger, planner RoutePlanner, origins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
			OriginPatterns:       originPatterns(origins),
			CompressionMode:      websocket.CompressionContextTakeover,
			CompressionThreshold: 128,
		})
		if err != nil {
			log.WithError(err).Error("websocket accept failed")

			return
		}

		wsCtx, wsCancel := context.WithCancel(appCtx)
		defer wsCancel()
		go func() {
			select {
			case <-c.Request.Context().Done():
				wsCancel()
			case <-wsCtx.Done():
			}
		}()

		NewSession(conn, planner, middleware.Logger(c, log).WithField("client", c.ClientIP())).Serve(wsCtx)
	}
}

// originPatterns converts CORS origins ("https://host:port") into the host
// patterns websocket.Accept matches against.
func originPatterns(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			out = append(out, u.Host)
			continue
		}
		out = append(out, o)
	}

	return out
}
