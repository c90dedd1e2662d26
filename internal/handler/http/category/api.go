package category

import (
	"log/slog"
	"net/http"
	"time"

	"devblog/internal/common/pagination"
	"devblog/internal/handler/http/respond"
	"devblog/internal/observability/logging"
)

// APIHandler serves the category page props as JSON.
type APIHandler struct {
	Svc Loader
	// Pagination is the config the service builds queries with.
	Pagination pagination.Config
}

// ServeHTTP returns the data a category page is rendered from.
// @Summary      Category page props
// @Description  Articles of a category (or a title search across categories) plus the category list. A non-empty search replaces the category filter.
// @Tags         category
// @Produce      json
// @Param        category path  string true  "Category slug" example(web-development)
// @Param        page     query int    false "Page number (1-indexed, invalid values mean 1)"
// @Param        search   query string false "Case-insensitive title search, max 200 characters"
// @Success      200 {object} PropsResponse
// @Failure      400 {object} map[string]string "Search term too long"
// @Failure      429 {object} map[string]string "Too many searches"
// @Failure      500 {object} map[string]string "Server error"
// @Failure      502 {object} map[string]string "Content API unavailable"
// @Router       /api/category/{category} [get]
func (h APIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	params := routeParams(r)

	loaded, err := h.Svc.LoadPage(r.Context(), params)
	if err != nil {
		if clientGone(r, err) {
			pagination.RecordError("canceled")
			return
		}
		status, errType := classify(err)
		logging.FromContext(r.Context()).Error("category props failed",
			slog.String("slug", params.Category),
			slog.Int("status", status),
			slog.Any("error", err))
		pagination.RecordError(errType)
		pagination.RecordRequest(status, requestedPage(params, h.Pagination), params.Searching())
		respond.SafeError(w, status, err)
		return
	}

	respond.JSON(w, http.StatusOK, Props(loaded))
	pagination.RecordRequest(http.StatusOK, loaded.Query.Pagination.Page, params.Searching())
	pagination.RecordDuration("handler", time.Since(start).Seconds())
}
