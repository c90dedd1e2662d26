package category

import (
	"fmt"
	"net/url"
	"strings"
)

// PathPrefix is the route prefix of category pages.
const PathPrefix = "/category/"

// Path returns the page path for slug, e.g. /category/web-development.
func Path(slug string) string {
	return PathPrefix + url.PathEscape(slug)
}

// SearchURL returns the navigation target for a search on the page of slug.
func SearchURL(slug, search string) string {
	return Path(slug) + "?search=" + url.QueryEscape(search)
}

// ParseRoute parses a navigation target such as
// /category/javascript?page=2 back into route parameters.
func ParseRoute(target string) (RouteParams, error) {
	u, err := url.Parse(target)
	if err != nil {
		return RouteParams{}, fmt.Errorf("%w: %v", ErrInvalidRoute, err)
	}

	rest, ok := strings.CutPrefix(u.EscapedPath(), PathPrefix)
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return RouteParams{}, fmt.Errorf("%w: %q", ErrInvalidRoute, target)
	}
	slug, err := url.PathUnescape(rest)
	if err != nil {
		return RouteParams{}, fmt.Errorf("%w: %v", ErrInvalidRoute, err)
	}

	query := u.Query()
	return RouteParams{
		Category: slug,
		Page:     query.Get("page"),
		Search:   query.Get("search"),
	}, nil
}
