// Package handler provides platform-level HTTP endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// Probe reports whether a dependency is usable.
type Probe func(ctx context.Context) error

// HealthHandler serves /healthz and runs the registered probes on GET.
type HealthHandler struct {
	probes  map[string]Probe
	timeout time.Duration
}

// NewHealthHandler creates a HealthHandler. A nil map means "always healthy".
func NewHealthHandler(probes map[string]Probe) *HealthHandler {
	if probes == nil {
		probes = map[string]Probe{}
	}
	return &HealthHandler{probes: probes, timeout: 2 * time.Second}
}

// Health responds 200 when every probe passes and 503 otherwise.
// HEAD and OPTIONS never run probes. Responses are never cached.
func (h *HealthHandler) Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
		return
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.probes))
	for name := range h.probes {
		names = append(names, name)
	}
	sort.Strings(names)

	status := "ok"
	checks := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.probes[name](ctx); err != nil {
			slog.Warn("health probe failed", "probe", name, "error", err)
			checks[name] = err.Error()
			status = "degraded"
			continue
		}
		checks[name] = "ok"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "checks": checks})
}
