// SPDX-License-Identifier: MIT

package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/skylane/anneal"
	"github.com/katalvlaran/skylane/builder"
	"github.com/katalvlaran/skylane/core"
	"github.com/katalvlaran/skylane/internal/api"
	"github.com/katalvlaran/skylane/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)

	return l
}

// testArea is the box the test lattice is built over.
var testArea = builder.Bounds{Max: core.Vec3{X: 2, Y: 2, Z: 1}}

// testService serves a 3×3×1 lattice at integer coordinates with
// conflict-aware batch planning.
func testService(t *testing.T, opts ...service.Option) *service.RouteService {
	t.Helper()
	g, err := builder.Lattice(testArea, core.Dims{NI: 3, NJ: 3, NK: 1})
	require.NoError(t, err)
	opts = append([]service.Option{service.WithAnnealOptions(anneal.WithConflictAwareRepair())}, opts...)

	return service.NewRouteService(g, testLogger(), opts...)
}

func newTestRouter(t *testing.T, opts ...service.Option) http.Handler {
	t.Helper()

	return api.NewRouter(context.Background(), &api.RouterDeps{
		Log:         testLogger(),
		Routes:      testService(t, opts...),
		CORSOrigins: []string{"http://localhost:3000"},
		Version:     "test",
	})
}

// doRequest performs an HTTP request against the handler and returns the recorder.
func doRequest(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, http.NoBody)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	return w
}
