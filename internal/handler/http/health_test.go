package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubContent struct {
	err   error
	state string
	delay time.Duration
}

func (s *stubContent) Ping(ctx context.Context) error {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.err
}

func (s *stubContent) CircuitState() string {
	if s.state == "" {
		return "closed"
	}
	return s.state
}

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		content    ContentChecker
		wantCode   int
		wantStatus string
	}{
		{name: "healthy", content: &stubContent{}, wantCode: http.StatusOK, wantStatus: "healthy"},
		{name: "half open is degraded", content: &stubContent{state: "half-open"}, wantCode: http.StatusOK, wantStatus: "degraded"},
		{name: "ping failure", content: &stubContent{err: errors.New("dial tcp: refused"), state: "open"}, wantCode: http.StatusServiceUnavailable, wantStatus: "unhealthy"},
		{name: "not configured", content: nil, wantCode: http.StatusServiceUnavailable, wantStatus: "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &HealthHandler{Content: tt.content, Version: "1.2.3"}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, "1.2.3", resp.Version)
			assert.Contains(t, resp.Checks, "content_api")
			_, err := time.Parse(time.RFC3339, resp.Timestamp)
			assert.NoError(t, err)
		})
	}
}

func TestHealthHandler_ReportsCircuit(t *testing.T) {
	h := &HealthHandler{Content: &stubContent{err: errors.New("open"), state: "open"}}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "open", resp.Checks["content_api"].Details["circuit"])
}

func TestReadyHandler_ServeHTTP(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		rec := httptest.NewRecorder()
		(&ReadyHandler{Content: &stubContent{}}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
	})

	t.Run("not ready", func(t *testing.T) {
		rec := httptest.NewRecorder()
		(&ReadyHandler{Content: &stubContent{err: errors.New("status 500")}}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "not ready")
	})

	t.Run("probe timeout", func(t *testing.T) {
		h := &ReadyHandler{Content: &stubContent{delay: time.Second}, Timeout: 20 * time.Millisecond}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestLiveHandler_ServeHTTP(t *testing.T) {
	rec := httptest.NewRecorder()
	LiveHandler{}.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"alive"}`, rec.Body.String())
}
