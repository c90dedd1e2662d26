package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rs/zerolog"
	slogzerolog "github.com/samber/slog-zerolog/v2"

	"devblog/internal/handler/http/requestid"
)

// Output formats accepted by New.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// ParseLevel maps debug, info, warn and error (case-insensitive) to a slog
// level. Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger writing to w in the given format at the given level.
// Unknown formats fall back to JSON.
func New(format string, level slog.Level, w io.Writer) *slog.Logger {
	if strings.EqualFold(format, FormatConsole) {
		return newConsole(level, w)
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}))
}

// NewLogger creates the process logger from LOG_FORMAT and LOG_LEVEL,
// writing to stdout.
func NewLogger() *slog.Logger {
	return New(os.Getenv("LOG_FORMAT"), ParseLevel(os.Getenv("LOG_LEVEL")), os.Stdout)
}

// NewConsoleLogger creates a human-readable logger for terminals, used by
// the CLI regardless of LOG_FORMAT.
func NewConsoleLogger(w io.Writer) *slog.Logger {
	return newConsole(ParseLevel(os.Getenv("LOG_LEVEL")), w)
}

func newConsole(level slog.Level, w io.Writer) *slog.Logger {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()
	opts := slogzerolog.Option{Level: level, Logger: &zl}
	return slog.New(opts.NewZerologHandler())
}

// WithRequestID returns logger annotated with the request ID from ctx, or
// logger unchanged when there is none.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With("request_id", reqID)
}

// FromContext retrieves the logger from the context, or returns the default logger if not found.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

type contextKey string

const loggerContextKey contextKey = "logger"
