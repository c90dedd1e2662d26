// Package logging builds the slog loggers used by the web server and the CLI.
//
// The server logs JSON to stdout by default. LOG_FORMAT=console switches to a
// colourised zerolog console writer bridged into slog, which is also what the
// CLI uses. LOG_LEVEL selects debug, info, warn or error.
//
//	logger := logging.NewLogger()
//	slog.SetDefault(logger)
//
//	func handle(ctx context.Context) {
//	    logging.FromContext(ctx).Info("page rendered")
//	}
package logging
