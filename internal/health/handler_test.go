// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	err error
}

func (c stubChecker) Ping(context.Context) error {
	return c.err
}

func newRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func get(t *testing.T, router chi.Router, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestReadyzFollowsLifecycle(t *testing.T) {
	t.Parallel()

	h := NewHandler(stubChecker{}, stubChecker{})
	router := newRouter(h)

	rec := get(t, router, "/readyz")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code,
		"must not report ready before startup completes")

	h.SetReady(true)
	rec = get(t, router, "/readyz")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])

	h.SetShutdown(true)
	rec = get(t, router, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code,
		"draining instance must stop advertising readiness")
}

func TestHealthzReportsDependencyFailures(t *testing.T) {
	t.Parallel()

	h := NewHandler(stubChecker{err: errors.New("connection refused")}, stubChecker{})
	rec := get(t, newRouter(h), "/healthz")

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "connection refused", body.Checks["database"])
	assert.Equal(t, "ok", body.Checks["redis"])
}

func TestHealthzHealthy(t *testing.T) {
	t.Parallel()

	h := NewHandler(stubChecker{}, stubChecker{})
	rec := get(t, newRouter(h), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
}
