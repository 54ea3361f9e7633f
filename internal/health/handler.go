// AngelaMos | 2026
// handler.go

package health

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/medisupply/auth-service/internal/core"
)

// Checker reports whether a dependency is reachable.
type Checker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	db    Checker
	redis Checker

	ready    atomic.Bool
	shutdown atomic.Bool
}

func NewHandler(db, redis Checker) *Handler {
	return &Handler{db: db, redis: redis}
}

func (h *Handler) SetReady(ready bool) {
	h.ready.Store(ready)
}

func (h *Handler) SetShutdown(shutdown bool) {
	h.shutdown.Store(shutdown)
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Healthz)
	r.Get("/livez", h.Livez)
	r.Get("/readyz", h.Readyz)
	r.Get("/auth/ping", h.Ping)
}

// Healthz is the full dependency check: database and cache must both
// answer within the probe budget.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := h.db.Ping(ctx); err != nil {
		checks["database"] = err.Error()
		healthy = false
	} else {
		checks["database"] = "ok"
	}

	if err := h.redis.Ping(ctx); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	} else {
		checks["redis"] = "ok"
	}

	status := "healthy"
	code := http.StatusOK
	if !healthy {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	core.EncodeJSON(w, map[string]any{
		"status": status,
		"checks": checks,
	})
}

// Livez answers as long as the process is serving requests.
func (h *Handler) Livez(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, map[string]string{"status": "alive"})
}

// Readyz gates load-balancer traffic: not ready before startup finishes
// and during shutdown drain.
func (h *Handler) Readyz(w http.ResponseWriter, _ *http.Request) {
	if h.shutdown.Load() || !h.ready.Load() {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		core.EncodeJSON(w, map[string]string{"status": "not ready"})
		return
	}

	core.OK(w, map[string]string{"status": "ready"})
}

// Ping is the lightweight service blurb the platform's other services
// probe.
func (h *Handler) Ping(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, map[string]string{
		"service": "auth",
		"status":  "healthy",
		"version": "1.0.0",
	})
}
