package http

import (
	"errors"
	"log/slog"
	"math"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"devblog/internal/handler/http/requestid"
	"devblog/internal/handler/http/respond"
	"devblog/internal/handler/http/responsewriter"
	"devblog/internal/observability/logging"
)

// Middleware decorates a handler.
type Middleware func(http.Handler) http.Handler

// Chain wraps h so that mws[0] is the outermost middleware.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Logging logs one line per request and stores a request-scoped logger
// (carrying request_id) in the context for handlers.
func Logging(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := responsewriter.Wrap(w)

			reqLogger := logging.WithRequestID(r.Context(), logger)
			next.ServeHTTP(wrapped, r.WithContext(logging.WithLogger(r.Context(), reqLogger)))

			duration := time.Since(start)
			level := slog.LevelInfo
			if wrapped.StatusCode() >= 500 {
				level = slog.LevelError
			}
			reqLogger.LogAttrs(r.Context(), level, "request completed",
				slog.String("trace_id", traceID(r, wrapped)),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.Header.Get("User-Agent")),
				slog.Int("status", wrapped.StatusCode()),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Duration("duration", duration),
			)
		})
	}
}

// traceID prefers an active span in the request context and falls back to
// the X-Trace-Id header written by the tracing middleware further in.
func traceID(r *http.Request, w http.ResponseWriter) string {
	if sc := trace.SpanFromContext(r.Context()).SpanContext(); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	return w.Header().Get("X-Trace-Id")
}

// Recover turns a panic into a 500 and logs the stack.
func Recover(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("panic recovered",
					slog.String("request_id", requestid.FromContext(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)

				if rw, ok := w.(*responsewriter.ResponseWriter); ok && rw.Written() {
					return
				}
				respond.SafeError(w, http.StatusInternalServerError, errors.New("internal error"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// LimitFunc writes the rejection for a rate-limited request.
type LimitFunc func(w http.ResponseWriter, r *http.Request, retryAfter time.Duration)

type requestRecord struct {
	timestamps []time.Time
	mu         sync.Mutex
}

// RateLimiter is a per-client-IP sliding window limiter.
type RateLimiter struct {
	records sync.Map // map[string]*requestRecord
	limit   int
	window  time.Duration

	// Applies decides which requests are counted. Nil counts every request.
	Applies func(*http.Request) bool
	// OnLimit writes the 429. Nil writes a JSON error.
	OnLimit LimitFunc
	// ClientIP decides which address a request counts against.
	ClientIP ClientIP

	now       func() time.Time
	cleanMu   sync.Mutex
	lastClean time.Time
}

// NewRateLimiter allows limit requests per client within window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		window:    window,
		now:       time.Now,
		lastClean: time.Now(),
	}
}

// SearchRequests matches requests carrying a non-empty search parameter.
func SearchRequests(r *http.Request) bool {
	return r.URL.Query().Get("search") != ""
}

// Limit applies the limiter and sets Retry-After on rejection.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.Applies != nil && !rl.Applies(r) {
			next.ServeHTTP(w, r)
			return
		}

		rl.periodicCleanup()

		ok, retryAfter := rl.allow(rl.ClientIP.Extract(r))
		if !ok {
			secs := int(math.Ceil(retryAfter.Seconds()))
			if secs < 1 {
				secs = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			if rl.OnLimit != nil {
				rl.OnLimit(w, r, retryAfter)
				return
			}
			respond.JSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allow records the request if permitted. When rejected it returns how long
// until the oldest request in the window expires.
func (rl *RateLimiter) allow(ip string) (bool, time.Duration) {
	now := rl.now()

	val, _ := rl.records.LoadOrStore(ip, &requestRecord{
		timestamps: make([]time.Time, 0, rl.limit),
	})
	record := val.(*requestRecord)

	record.mu.Lock()
	defer record.mu.Unlock()

	cutoff := now.Add(-rl.window)
	valid := record.timestamps[:0]
	for _, ts := range record.timestamps {
		if ts.After(cutoff) {
			valid = append(valid, ts)
		}
	}
	record.timestamps = valid

	if len(record.timestamps) >= rl.limit {
		return false, record.timestamps[0].Add(rl.window).Sub(now)
	}

	record.timestamps = append(record.timestamps, now)
	return true, 0
}

// periodicCleanup drops idle clients every ten minutes.
func (rl *RateLimiter) periodicCleanup() {
	rl.cleanMu.Lock()
	defer rl.cleanMu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastClean) < 10*time.Minute {
		return
	}
	rl.lastClean = now
	cutoff := now.Add(-rl.window * 2)

	rl.records.Range(func(key, value any) bool {
		record := value.(*requestRecord)
		record.mu.Lock()
		idle := true
		for _, ts := range record.timestamps {
			if ts.After(cutoff) {
				idle = false
				break
			}
		}
		record.mu.Unlock()
		if idle {
			rl.records.Delete(key)
		}
		return true
	})
}

// parseFirstIP returns the first address of an X-Forwarded-For list.
func parseFirstIP(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			s = s[:i]
			break
		}
	}
	if ip := net.ParseIP(strings.TrimSpace(s)); ip != nil {
		return ip.String()
	}
	return ""
}
