package category

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"devblog/internal/common/pagination"
	"devblog/internal/handler/http/requestid"
	"devblog/internal/observability/logging"
	"devblog/internal/repository"
	catUC "devblog/internal/usecase/category"
	"devblog/internal/view"
)

// Loader loads everything a category page needs.
type Loader interface {
	LoadPage(ctx context.Context, params catUC.RouteParams) (*catUC.Page, error)
}

// routeParams reads the route state: the {category} path segment plus the
// page and search query parameters. Nothing is validated here.
func routeParams(r *http.Request) catUC.RouteParams {
	q := r.URL.Query()
	return catUC.RouteParams{
		Category: r.PathValue("category"),
		Page:     q.Get("page"),
		Search:   q.Get("search"),
	}
}

// requestedPage is the page number the route asks for, read the way the
// query builder reads it.
func requestedPage(params catUC.RouteParams, cfg pagination.Config) int {
	return pagination.ParsePage(params.Page, cfg)
}

// classify maps a load failure to a status code and an error metric type.
// A content API failure is a 502; anything else is ours.
func classify(err error) (int, string) {
	if errors.Is(err, repository.ErrContentUnavailable) {
		return http.StatusBadGateway, "upstream"
	}
	return http.StatusInternalServerError, "internal"
}

// clientGone reports whether the load failed only because the client went away.
func clientGone(r *http.Request, err error) bool {
	return r.Context().Err() != nil && errors.Is(err, context.Canceled)
}

// PageHandler renders the category page as HTML.
type PageHandler struct {
	Svc      Loader
	Renderer *view.Renderer
	Site     view.Site
	// Debounce is the search box quiet window handed to the browser.
	Debounce time.Duration
	// Pagination is the config the service builds queries with.
	Pagination pagination.Config
}

func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := logging.FromContext(r.Context())
	params := routeParams(r)

	loaded, err := h.Svc.LoadPage(r.Context(), params)
	if err != nil {
		if clientGone(r, err) {
			logger.Debug("client went away", slog.String("slug", params.Category))
			pagination.RecordError("canceled")
			return
		}
		status, errType := classify(err)
		logger.Error("category page failed",
			slog.String("slug", params.Category),
			slog.String("page", params.Page),
			slog.Bool("searching", params.Searching()),
			slog.Int("status", status),
			slog.Any("error", err))
		pagination.RecordError(errType)
		pagination.RecordRequest(status, requestedPage(params, h.Pagination), params.Searching())
		h.WriteError(w, r, status)
		return
	}

	page := view.Build(h.Site, loaded, h.Debounce)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Renderer.RenderPage(w, page); err != nil {
		logger.Error("render category page", slog.String("slug", params.Category), slog.Any("error", err))
		pagination.RecordError("internal")
		pagination.RecordRequest(http.StatusInternalServerError, loaded.Query.Pagination.Page, params.Searching())
		h.WriteError(w, r, http.StatusInternalServerError)
		return
	}

	pagination.RecordRequest(http.StatusOK, loaded.Query.Pagination.Page, params.Searching())
	pagination.RecordDuration("handler", time.Since(start).Seconds())
}

var errorMessages = map[int]string{
	http.StatusBadGateway:          "The content service is unavailable right now. Please try again shortly.",
	http.StatusTooManyRequests:     "You are searching too fast. Please wait a moment and try again.",
	http.StatusGatewayTimeout:      "The page took too long to load. Please try again.",
	http.StatusNotFound:            "This page does not exist.",
	http.StatusInternalServerError: "Something went wrong while rendering this page.",
}

// WriteError renders the HTML error page for status. It is also used by the
// server for rate-limit and timeout responses on page routes.
func (h *PageHandler) WriteError(w http.ResponseWriter, r *http.Request, status int) {
	msg, ok := errorMessages[status]
	if !ok {
		msg = http.StatusText(status)
	}
	name := h.Site.Name
	if name == "" {
		name = view.DefaultSiteName
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	err := h.Renderer.RenderError(w, view.ErrorPage{
		Title:       name + " | " + http.StatusText(status),
		Description: h.Site.Description,
		Status:      status,
		Message:     msg,
		RequestID:   requestid.FromContext(r.Context()),
	})
	if err != nil {
		logging.FromContext(r.Context()).Error("render error page", slog.Any("error", err))
	}
}
