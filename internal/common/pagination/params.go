package pagination

import (
	"strconv"
)

// ParsePage converts the raw "page" route parameter into a page number.
//
// Unlike a strict API parser, a category page never rejects a request because
// of its page parameter: absent, non-numeric, fractional, zero or negative
// values all fall back to config.DefaultPage.
//
// Examples:
//   - ""    -> 1
//   - "2"   -> 2
//   - "abc" -> 1
//   - "-3"  -> 1
func ParsePage(raw string, config Config) int {
	def := config.DefaultPage
	if def < 1 {
		def = 1
	}
	if raw == "" {
		return def
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return def
	}
	return page
}
