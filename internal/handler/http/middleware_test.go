package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devblog/internal/handler/http/requestid"
	"devblog/internal/observability/logging"
)

type fakeNow struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeNow) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeNow) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func newTestLimiter(limit int, window time.Duration) (*RateLimiter, *fakeNow) {
	clock := &fakeNow{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(limit, window)
	rl.now = clock.Now
	rl.lastClean = clock.Now()
	return rl, clock
}

func serve(h http.Handler, target, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mark("outer"), mark("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestRateLimiter_SlidingWindow(t *testing.T) {
	rl, clock := newTestLimiter(2, time.Minute)
	h := rl.Limit(okHandler())

	assert.Equal(t, http.StatusOK, serve(h, "/category/go?search=a", "10.0.0.1:1234").Code)
	clock.Advance(10 * time.Second)
	assert.Equal(t, http.StatusOK, serve(h, "/category/go?search=ab", "10.0.0.1:1234").Code)

	rec := serve(h, "/category/go?search=abc", "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "50", rec.Header().Get("Retry-After"), "oldest request leaves the window in 50s")
	assert.Contains(t, rec.Body.String(), "rate limit exceeded")

	clock.Advance(50 * time.Second)
	rec = serve(h, "/category/go?search=abcd", "10.0.0.1:1234")
	assert.Equal(t, http.StatusOK, rec.Code, "first request left the window")
}

func TestRateLimiter_DifferentIPs(t *testing.T) {
	rl, _ := newTestLimiter(1, time.Minute)
	h := rl.Limit(okHandler())

	assert.Equal(t, http.StatusOK, serve(h, "/", "10.0.0.1:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(h, "/", "10.0.0.1:2").Code)
	assert.Equal(t, http.StatusOK, serve(h, "/", "10.0.0.2:1").Code)
}

func TestRateLimiter_SearchOnly(t *testing.T) {
	rl, _ := newTestLimiter(1, time.Minute)
	rl.Applies = SearchRequests
	h := rl.Limit(okHandler())

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, serve(h, "/category/go?page=2", "10.0.0.1:1").Code, "browsing is never limited")
	}
	assert.Equal(t, http.StatusOK, serve(h, "/category/go?search=x", "10.0.0.1:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(h, "/category/go?search=y", "10.0.0.1:1").Code)
	assert.Equal(t, http.StatusOK, serve(h, "/category/go?search=", "10.0.0.1:1").Code, "empty search is browsing")
}

func TestRateLimiter_OnLimit(t *testing.T) {
	rl, _ := newTestLimiter(1, 30*time.Second)
	var gotRetry time.Duration
	rl.OnLimit = func(w http.ResponseWriter, r *http.Request, retryAfter time.Duration) {
		gotRetry = retryAfter
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("<p>slow down</p>"))
	}
	h := rl.Limit(okHandler())

	serve(h, "/", "10.0.0.1:1")
	rec := serve(h, "/", "10.0.0.1:1")

	assert.Equal(t, "<p>slow down</p>", rec.Body.String())
	assert.Equal(t, 30*time.Second, gotRetry)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))
}

func TestRateLimiter_Concurrent(t *testing.T) {
	rl := NewRateLimiter(10, time.Minute)
	h := rl.Limit(okHandler())

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if serve(h, "/", "10.0.0.9:1").Code == http.StatusOK {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, allowed)
}

func TestRateLimiter_PeriodicCleanup(t *testing.T) {
	rl, clock := newTestLimiter(5, time.Minute)
	h := rl.Limit(okHandler())

	serve(h, "/", "10.0.0.1:1")
	serve(h, "/", "10.0.0.2:1")

	clock.Advance(11 * time.Minute)
	serve(h, "/", "10.0.0.3:1")

	_, stale := rl.records.Load("10.0.0.1")
	_, fresh := rl.records.Load("10.0.0.3")
	assert.False(t, stale, "idle client should be dropped")
	assert.True(t, fresh)
}

func TestClientIP_Extract(t *testing.T) {
	trusted := ClientIP{Trusted: []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("2001:db8::/32"),
	}}

	tests := []struct {
		name       string
		extractor  ClientIP
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{name: "remote addr", remoteAddr: "192.168.1.1:12345", want: "192.168.1.1"},
		{name: "remote addr without port", remoteAddr: "192.168.1.1", want: "192.168.1.1"},
		{name: "ipv6", remoteAddr: "[2001:db8::1]:443", want: "2001:db8::1"},
		{name: "headers ignored without trusted proxies", headers: map[string]string{"X-Forwarded-For": "203.0.113.5", "X-Real-IP": "198.51.100.7"}, remoteAddr: "10.0.0.1:1", want: "10.0.0.1"},
		{name: "trusted proxy first hop", extractor: trusted, headers: map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"}, remoteAddr: "10.0.0.1:1", want: "203.0.113.5"},
		{name: "trusted proxy garbage falls through to real ip", extractor: trusted, headers: map[string]string{"X-Forwarded-For": "nope", "X-Real-IP": "198.51.100.7"}, remoteAddr: "10.0.0.1:1", want: "198.51.100.7"},
		{name: "trusted proxy without headers", extractor: trusted, remoteAddr: "10.1.2.3:1", want: "10.1.2.3"},
		{name: "trusted ipv6 proxy", extractor: trusted, headers: map[string]string{"X-Forwarded-For": "203.0.113.8"}, remoteAddr: "[2001:db8::2]:443", want: "203.0.113.8"},
		{name: "untrusted peer spoofing", extractor: trusted, headers: map[string]string{"X-Forwarded-For": "203.0.113.5", "X-Real-IP": "198.51.100.7"}, remoteAddr: "198.51.100.9:1", want: "198.51.100.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, tt.extractor.Extract(req))
		})
	}
}

func TestRateLimiter_SpoofedForwardingHeaders(t *testing.T) {
	rl, _ := newTestLimiter(1, time.Minute)
	h := rl.Limit(okHandler())

	send := func(xff string) int {
		req := httptest.NewRequest(http.MethodGet, "/category/go?search=x", nil)
		req.RemoteAddr = "198.51.100.9:4000"
		req.Header.Set("X-Forwarded-For", xff)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.1"))
	for _, xff := range []string{"203.0.113.2", "203.0.113.3", "203.0.113.4"} {
		assert.Equal(t, http.StatusTooManyRequests, send(xff), "a new forwarded address must not reset the limit")
	}
}

func TestRateLimiter_TrustedProxyClients(t *testing.T) {
	rl, _ := newTestLimiter(1, time.Minute)
	rl.ClientIP = ClientIP{Trusted: []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}}
	h := rl.Limit(okHandler())

	send := func(xff string) int {
		req := httptest.NewRequest(http.MethodGet, "/category/go?search=x", nil)
		req.RemoteAddr = "10.0.0.2:4000"
		req.Header.Set("X-Forwarded-For", xff)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.1"))
	assert.Equal(t, http.StatusOK, send("203.0.113.2"), "clients behind the proxy are counted separately")
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.1, 10.0.0.2"))
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	var ctxLogger *slog.Logger
	h := requestid.Middleware(Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLogger = logging.FromContext(r.Context())
		w.Header().Set("X-Trace-Id", "4bf92f3577b34da6a3ce929d0e0e4736")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})))

	req := httptest.NewRequest(http.MethodGet, "/category/go?page=2", nil)
	req.Header.Set(requestid.RequestIDHeader, "req-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, ctxLogger)
	assert.NotSame(t, slog.Default(), ctxLogger, "handler should receive the request logger")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request completed", entry["msg"])
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", entry["trace_id"])
	assert.Equal(t, "/category/go", entry["path"])
	assert.Equal(t, "page=2", entry["query"])
	assert.EqualValues(t, http.StatusBadGateway, entry["status"])
	assert.EqualValues(t, len("upstream down"), entry["bytes"])
}

func TestRecover(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := Recover(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("template exploded")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/category/go", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
	assert.True(t, strings.Contains(buf.String(), "panic recovered"))
	assert.True(t, strings.Contains(buf.String(), "template exploded"))
}

func TestRecover_AbortHandler(t *testing.T) {
	h := Recover(slog.Default())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
