// SPDX-License-Identifier: MIT

package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/skylane/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	var seen string
	r := gin.New()
	r.Use(middleware.RequestID(log))
	r.GET("/ping", func(c *gin.Context) {
		seen = middleware.GetRequestID(c)
		middleware.Logger(c, nil).Info("handled")
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	req.Header.Set(middleware.RequestIDHeader, "client-chosen")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	got := w.Header().Get(middleware.RequestIDHeader)
	require.Equal(t, seen, got)
	require.NotEqual(t, "client-chosen", got)
	parsed, err := uuid.Parse(got)
	require.NoError(t, err)
	require.Equal(t, uuid.Version(7), parsed.Version())

	entry := hook.LastEntry()
	require.Equal(t, "handled", entry.Message)
	require.Equal(t, got, entry.Data["request_id"])
	require.Equal(t, "client-chosen", entry.Data["client_request_id"])

	// Oversized client IDs are cut before they reach the logs.
	req = httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	req.Header.Set(middleware.RequestIDHeader, strings.Repeat("a", 200))
	r.ServeHTTP(httptest.NewRecorder(), req)
	require.Len(t, hook.LastEntry().Data["client_request_id"], 64)
}

func TestLogger_Fallback(t *testing.T) {
	log, hook := test.NewNullLogger()
	r := gin.New()
	r.GET("/ping", func(c *gin.Context) {
		middleware.Logger(c, log).Info("no middleware")
		c.Status(http.StatusNoContent)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", http.NoBody))

	require.Equal(t, "no middleware", hook.LastEntry().Message)
	require.NotContains(t, hook.LastEntry().Data, "request_id")
}

func TestMaxBodySize(t *testing.T) {
	r := gin.New()
	r.Use(middleware.MaxBodySize(8))
	r.POST("/echo", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("short")))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("far too long for the limit")))
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestPrometheusAndSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(middleware.Prometheus("/metrics"), middleware.SecurityHeaders())
	r.GET("/counted", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/counted", http.NoBody))
	require.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", http.NoBody))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/counted?q=1", http.NoBody))

	// Scrape twice: the first scrape must not show up in the second.
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	body := w.Body.String()
	require.Contains(t, body, `skylane_http_requests_total{method="GET",path="/counted",status="200"}`)
	require.Contains(t, body, `skylane_http_requests_total{method="GET",path="unknown",status="404"}`)
	require.NotContains(t, body, `path="/metrics"`)
	require.NotContains(t, body, `q=1`)
}
