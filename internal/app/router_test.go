package app_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian/internal/app"
	"github.com/meridian-erp/meridian/internal/dispatch"
	"github.com/meridian-erp/meridian/internal/observability"
	_ "github.com/meridian-erp/meridian/testing"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg, err := app.LoadConfig()
	require.NoError(t, err)
	return app.NewRouter(app.RouterParams{
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config:          cfg,
		DispatchHandler: dispatch.NewHandler(nil, dispatch.NewDispatcher()),
		Metrics:         observability.NewMetrics(),
	})
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, res.Code)
	require.JSONEq(t, `{"status":"ok"}`, res.Body.String())
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := newTestRouter(t)

	// Warm the request counters with one call, then scrape.
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, res.Code)
	require.Contains(t, res.Body.String(), "meridian_http_requests_total")
}

func TestUnknownCallThroughRouter(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/calls/nothing.here", strings.NewReader(`{"args":[]}`))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	require.Equal(t, http.StatusNotFound, res.Code)
}
