package http

import (
	"fmt"
	"net/http"
	"unicode/utf8"

	"devblog/internal/handler/http/respond"
)

// Input limits applied by InputValidation.
const (
	MaxPathLength       = 2048
	MaxQueryLength      = 4096
	DefaultMaxSearchLen = 200
)

// InputValidation rejects requests the read-only site never needs to serve:
// non-GET/HEAD methods (405), overlong paths or query strings (414), and a
// search term longer than maxSearch runes (400).
func InputValidation(maxSearch int) Middleware {
	if maxSearch <= 0 {
		maxSearch = DefaultMaxSearchLen
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				w.Header().Set("Allow", "GET, HEAD")
				respond.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
				return
			}

			if len(r.URL.Path) > MaxPathLength || len(r.URL.RawQuery) > MaxQueryLength {
				respond.JSON(w, http.StatusRequestURITooLong, map[string]string{"error": "URI too long"})
				return
			}

			if search := r.URL.Query().Get("search"); utf8.RuneCountInString(search) > maxSearch {
				respond.Error(w, http.StatusBadRequest, fmt.Errorf("search term too long: max %d characters", maxSearch))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
