// Package tracing provides OpenTelemetry tracing integration.
//
// Inbound requests get a server span through Middleware; outbound calls to
// the content API get a client span through StartClientSpan, and the W3C
// trace context is injected into their headers so both sides share a trace.
//
// Spans are recorded by whatever TracerProvider is installed globally with
// otel.SetTracerProvider. Without one, spans are no-ops but trace ids are
// still propagated when an incoming traceparent header is present.
package tracing
