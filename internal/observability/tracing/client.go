package tracing

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// StartClientSpan starts a client span for an outbound request and injects
// the resulting trace context into req's headers. Call EndClientSpan when
// the response (or error) is known.
func StartClientSpan(req *http.Request, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := GetTracer().Start(req.Context(), name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.Redacted()),
		),
		trace.WithAttributes(attrs...),
	)
	InjectHeaders(ctx, req.Header)
	return ctx, span
}

// EndClientSpan records the outcome of an outbound call and ends span.
// statusCode is 0 when no response was received.
func EndClientSpan(span trace.Span, statusCode int, err error) {
	if statusCode > 0 {
		span.SetAttributes(attribute.Int("http.status_code", statusCode))
	}
	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case statusCode >= 400:
		span.SetStatus(codes.Error, http.StatusText(statusCode))
	}
	span.End()
}
