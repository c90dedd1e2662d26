package category

import (
	"net/http"
)

// Route patterns served by this package.
const (
	PagePattern = "GET /category/{category}"
	APIPattern  = "GET /api/category/{category}"
)

// Register mounts the page and props handlers on mux.
func Register(mux *http.ServeMux, page *PageHandler, api APIHandler) {
	mux.Handle(PagePattern, page)
	mux.Handle(APIPattern, api)
}
