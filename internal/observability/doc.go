// Package observability groups the logging and tracing helpers shared by
// the web server and the CLI.
//
// Subpackages:
//   - logging: slog loggers (JSON, or zerolog console output) and request-scoped context helpers
//   - tracing: OpenTelemetry server middleware, client spans and header propagation
//
// Prometheus collectors live next to the code they measure: the HTTP
// middleware, the pagination package and the content API client.
package observability
