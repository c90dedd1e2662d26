package view

import (
	"time"

	"devblog/internal/debounce"
	"devblog/internal/usecase/category"
)

// DefaultSearchDebounce is the quiet window applied to search input.
const DefaultSearchDebounce = 500 * time.Millisecond

// SearchNavigator turns search submissions on a category page into
// navigations to /category/{slug}?search={query}. Submissions are
// debounced: a burst navigates once, to the last query.
//
// A SearchNavigator lives as long as the page it belongs to; Close it when
// the page goes away so a pending navigation is dropped.
type SearchNavigator struct {
	slug      string
	debouncer *debounce.Debouncer[string]
}

// NewSearchNavigator returns a navigator for the page of slug. navigate
// receives the target URL. A nil clock means the system clock.
func NewSearchNavigator(slug string, window time.Duration, clock debounce.Clock, navigate func(target string)) *SearchNavigator {
	if window <= 0 {
		window = DefaultSearchDebounce
	}
	return &SearchNavigator{
		slug:      slug,
		debouncer: debounce.NewWithClock(clock, window, navigate),
	}
}

// Submit schedules a navigation for query, replacing any pending one.
func (n *SearchNavigator) Submit(query string) {
	n.debouncer.Call(category.SearchURL(n.slug, query))
}

// Flush navigates now if a submission is pending.
func (n *SearchNavigator) Flush() bool {
	return n.debouncer.Flush()
}

// Cancel drops a pending submission.
func (n *SearchNavigator) Cancel() bool {
	return n.debouncer.Cancel()
}

// Pending reports whether a navigation is scheduled.
func (n *SearchNavigator) Pending() bool {
	return n.debouncer.Pending()
}

// Close drops any pending navigation and ignores later submissions.
func (n *SearchNavigator) Close() {
	n.debouncer.Close()
}
