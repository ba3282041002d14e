package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/mutugading/goapps-backend/services/catalog/pkg/response"
)

// readinessTimeout bounds each dependency check.
const readinessTimeout = 2 * time.Second

// Checker reports whether a dependency is usable.
type Checker interface {
	Health(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context) error

// Health implements Checker.
func (f CheckerFunc) Health(ctx context.Context) error { return f(ctx) }

type healthHandler struct {
	checks map[string]Checker
}

func newHealthHandler(checks map[string]Checker) *healthHandler {
	return &healthHandler{checks: checks}
}

func (h *healthHandler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeData(w, response.Success("healthy"), map[string]string{"status": "healthy"})
}

func (h *healthHandler) livez(w http.ResponseWriter, _ *http.Request) {
	writeData(w, response.Success("live"), map[string]string{"status": "live"})
}

// readyz runs every dependency check and reports 503 if any fails.
func (h *healthHandler) readyz(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	statuses := make(map[string]string, len(names))
	ready := true
	for _, name := range names {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		err := h.checks[name].Health(ctx)
		cancel()

		if err != nil {
			ready = false
			statuses[name] = err.Error()
			continue
		}
		statuses[name] = "ok"
	}

	if !ready {
		writeData(w, response.ServiceUnavailable("not ready"), statuses)
		return
	}
	writeData(w, response.Success("ready"), statuses)
}
