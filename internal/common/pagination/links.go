package pagination

import (
	"net/url"
	"strconv"
)

// Links holds the navigation targets rendered by the pagination control.
// Prev and Next are empty when the corresponding page does not exist.
type Links struct {
	Page      int
	PageCount int
	Prev      string
	Next      string
}

// BuildLinks derives prev/next targets for a listing rooted at redirectURL.
// Targets have the form redirectURL?page=N. Other query parameters (such as
// an active search) are not carried over.
func BuildLinks(redirectURL string, meta Metadata) Links {
	links := Links{Page: meta.Page, PageCount: meta.PageCount}
	if meta.HasPrev() {
		links.Prev = PageURL(redirectURL, meta.Page-1)
	}
	if meta.HasNext() {
		links.Next = PageURL(redirectURL, meta.Page+1)
	}
	return links
}

// PageURL returns redirectURL?page=page.
func PageURL(redirectURL string, page int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	return redirectURL + "?" + q.Encode()
}
