// Package http holds the server-wide HTTP plumbing for the blog frontend:
// middleware (request logging, panic recovery, rate limiting, timeouts and
// input limits), Prometheus metrics and the health endpoints. Page and API
// handlers live in subpackages.
package http

import (
	"context"
	"net/http"
	"time"

	"devblog/internal/handler/http/respond"
)

// ContentChecker is the view of the content API client the health endpoints
// need.
type ContentChecker interface {
	Ping(ctx context.Context) error
	CircuitState() string
}

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // healthy, degraded or unhealthy
	Timestamp string                 `json:"timestamp"` // RFC 3339, UTC
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

const defaultProbeTimeout = 3 * time.Second

// HealthHandler reports content API reachability and circuit breaker state.
// An unreachable API is unhealthy (503); a half-open circuit is degraded
// but still 200.
type HealthHandler struct {
	Content ContentChecker
	Version string
	Timeout time.Duration
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	check := checkContent(r.Context(), h.Content, h.Timeout)

	code := http.StatusOK
	if check.Status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    check.Status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    map[string]CheckStatus{"content_api": check},
		Version:   h.Version,
	})
}

func checkContent(ctx context.Context, c ContentChecker, timeout time.Duration) CheckStatus {
	if c == nil {
		return CheckStatus{Status: "unhealthy", Message: "not configured"}
	}
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := c.Ping(ctx)
	details := map[string]any{
		"circuit":    c.CircuitState(),
		"latency_ms": time.Since(start).Milliseconds(),
	}

	switch {
	case err != nil:
		return CheckStatus{Status: "unhealthy", Message: respond.SanitizeError(err), Details: details}
	case details["circuit"] == "half-open":
		return CheckStatus{Status: "degraded", Message: "circuit half-open", Details: details}
	default:
		return CheckStatus{Status: "healthy", Details: details}
	}
}

// ReadyHandler is the readiness probe: 200 once the content API answers.
type ReadyHandler struct {
	Content ContentChecker
	Timeout time.Duration
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if check := checkContent(r.Context(), h.Content, h.Timeout); check.Status == "unhealthy" {
		respond.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "reason": check.Message})
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// LiveHandler is the liveness probe. It never checks dependencies.
type LiveHandler struct{}

func (LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{"status": "alive"})
}
