package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"devblog/internal/config"
	hhttp "devblog/internal/handler/http"
	hcategory "devblog/internal/handler/http/category"
	"devblog/internal/handler/http/requestid"
	"devblog/internal/handler/http/respond"
	"devblog/internal/infra/strapi"
	"devblog/internal/observability/logging"
	"devblog/internal/observability/tracing"
	catUC "devblog/internal/usecase/category"
	"devblog/internal/view"

	_ "devblog/docs" // swagger docs
)

// @title           DevBlog API
// @version         1.0
// @description     Server-rendered blog category pages backed by a Strapi content API.
// @description     The JSON endpoint returns the data a category page is rendered from.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default: $CONFIG_FILE)")
	flag.Parse()

	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	logger := initLogger()
	tracing.InitPropagator()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	version := getVersion()
	components, err := setupServer(logger, cfg, version)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}

	runServer(logger, cfg.Server, components, version)
}

// initLogger builds the process logger from LOG_FORMAT and LOG_LEVEL.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// ServerComponents holds what runServer needs.
type ServerComponents struct {
	Handler http.Handler
}

// setupServer wires the content client, the category handlers and the
// middleware chain.
func setupServer(logger *slog.Logger, cfg *config.WebConfig, version string) (*ServerComponents, error) {
	client, err := strapi.NewClient(cfg.ContentAPI, strapi.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}

	svc := catUC.NewService(client, cfg.Pagination)
	page := &hcategory.PageHandler{
		Svc:      svc,
		Renderer: renderer,
		Site: view.Site{
			Name:         cfg.Site.Name,
			Description:  cfg.Site.Description,
			MediaBaseURL: cfg.MediaBase(),
		},
		Debounce:   cfg.Search.Debounce,
		Pagination: cfg.Pagination,
	}

	trusted, err := cfg.Search.TrustedPrefixes()
	if err != nil {
		return nil, err
	}

	mux := setupRoutes(client, page, hcategory.APIHandler{Svc: svc, Pagination: cfg.Pagination}, version)
	handler := applyMiddleware(logger, cfg, mux, page, hhttp.ClientIP{Trusted: trusted})

	logger.Info("content api configured",
		slog.String("base_url", cfg.ContentAPI.BaseURL),
		slog.Bool("token", cfg.ContentAPI.Token != ""),
		slog.Duration("timeout", cfg.ContentAPI.Timeout),
		slog.Int("page_size", cfg.Pagination.PageSize))

	return &ServerComponents{Handler: handler}, nil
}

// setupRoutes registers the page, API, probe, metrics, docs and asset routes.
func setupRoutes(client *strapi.Client, page *hcategory.PageHandler, api hcategory.APIHandler, version string) *http.ServeMux {
	mux := http.NewServeMux()
	hcategory.Register(mux, page, api)

	mux.Handle("GET /health", &hhttp.HealthHandler{Content: client, Version: version})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Content: client})
	mux.Handle("GET /live", hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(view.Static())))

	// Anything else gets the HTML 404 page.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		page.WriteError(w, r, http.StatusNotFound)
	})
	return mux
}

// isAPI reports whether r expects a JSON error body.
func isAPI(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: Request ID → Logging → Recovery → Metrics → Input validation →
// Search rate limit → Timeout → Tracing → routes.
// Tracing sits next to the mux so spans are named after the matched pattern.
func applyMiddleware(logger *slog.Logger, cfg *config.WebConfig, mux http.Handler, page *hcategory.PageHandler, clientIP hhttp.ClientIP) http.Handler {
	mws := []hhttp.Middleware{
		requestid.Middleware,
		hhttp.Logging(logger),
		hhttp.Recover(logger),
		hhttp.MetricsMiddleware,
		hhttp.InputValidation(cfg.Search.MaxLength),
	}

	if cfg.Search.Limit > 0 {
		limiter := hhttp.NewRateLimiter(cfg.Search.Limit, cfg.Search.Window)
		limiter.Applies = hhttp.SearchRequests
		limiter.ClientIP = clientIP
		limiter.OnLimit = func(w http.ResponseWriter, r *http.Request, _ time.Duration) {
			if isAPI(r) {
				respond.JSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
				return
			}
			page.WriteError(w, r, http.StatusTooManyRequests)
		}
		mws = append(mws, limiter.Limit)
		logger.Info("search rate limiting enabled",
			slog.Int("limit", cfg.Search.Limit),
			slog.Duration("window", cfg.Search.Window),
			slog.Int("trusted_proxies", len(clientIP.Trusted)))
	} else {
		logger.Warn("search rate limiting is disabled")
	}

	mws = append(mws,
		hhttp.TimeoutFunc(cfg.Server.RequestTimeout, func(w http.ResponseWriter, r *http.Request) {
			if isAPI(r) {
				respond.JSON(w, http.StatusGatewayTimeout, map[string]string{"error": "request timeout"})
				return
			}
			page.WriteError(w, r, http.StatusGatewayTimeout)
		}),
		tracing.Middleware,
	)

	return hhttp.Chain(mux, mws...)
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, cfg config.ServerConfig, components *ServerComponents, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	// In-flight page loads see their context end only after Shutdown drained them.
	cancel()
	logger.Info("server stopped")
}
