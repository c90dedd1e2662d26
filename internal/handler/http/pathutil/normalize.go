// Package pathutil collapses dynamic URL paths into route templates so they
// can be used as low-cardinality metric labels.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern maps a compiled path pattern to its template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// Evaluated in order; the first match wins.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/category/[^/]+$`), Template: "/category/:slug"},
	{Pattern: regexp.MustCompile(`^/api/category/[^/]+$`), Template: "/api/category/:slug"},
	{Pattern: regexp.MustCompile(`^/article/[^/]+$`), Template: "/article/:slug"},
	{Pattern: regexp.MustCompile(`^/static/.+$`), Template: "/static/*"},
	{Pattern: regexp.MustCompile(`^/swagger/.+$`), Template: "/swagger/*"},
}

var staticPaths = map[string]struct{}{
	"/":        {},
	"/health":  {},
	"/live":    {},
	"/ready":   {},
	"/metrics": {},
}

// Unmatched is the label used for paths that match no known route.
const Unmatched = "unmatched"

// NormalizePath converts a request path into its route template.
//
//	NormalizePath("/category/javascript")          // "/category/:slug"
//	NormalizePath("/category/javascript?page=2")   // "/category/:slug"
//	NormalizePath("/api/category/web-development") // "/api/category/:slug"
//	NormalizePath("/static/search.js")             // "/static/*"
//	NormalizePath("/health")                       // "/health"
//	NormalizePath("/wp-login.php")                 // "unmatched"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	if _, ok := staticPaths[path]; ok {
		return path
	}
	return Unmatched
}

// GetExpectedCardinality returns the number of distinct labels NormalizePath
// can produce.
func GetExpectedCardinality() int {
	return len(pathPatterns) + len(staticPaths) + 1
}
