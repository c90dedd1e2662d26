package category

import (
	"strconv"

	"devblog/internal/common/pagination"
	"devblog/internal/common/qs"
)

// Relation paths and sort order requested for every article listing.
var (
	defaultPopulate = []string{"author.avatar"}
	defaultSort     = []string{"id:desc"}
)

// RouteParams are the raw route parameters of a category page.
// An empty string means the parameter was absent.
type RouteParams struct {
	Category string
	Page     string
	Search   string
}

// Searching reports whether the route carries a search term.
func (p RouteParams) Searching() bool {
	return p.Search != ""
}

// FilterKind selects which predicate a Filters value holds.
type FilterKind int

const (
	// FilterCategory matches articles whose category slug equals Value.
	FilterCategory FilterKind = iota
	// FilterTitleContains matches articles whose title contains Value, ignoring case.
	FilterTitleContains
)

func (k FilterKind) String() string {
	if k == FilterTitleContains {
		return "title_contains"
	}
	return "category"
}

// Filters holds exactly one predicate. The zero value is the category
// filter with an empty slug.
type Filters struct {
	Kind  FilterKind
	Value string
}

// PageRequest is the pagination block of a query.
type PageRequest struct {
	Page     int
	PageSize int
}

// QueryOptions describes one article listing request.
type QueryOptions struct {
	Populate   []string
	Sort       []string
	Filters    Filters
	Pagination PageRequest
}

// BuildQuery translates route parameters into QueryOptions.
//
// A non-empty search term replaces the category filter entirely. A missing
// category is not an error; the resulting filter matches the empty slug.
func BuildQuery(params RouteParams, config pagination.Config) QueryOptions {
	filters := Filters{Kind: FilterCategory, Value: params.Category}
	if params.Searching() {
		filters = Filters{Kind: FilterTitleContains, Value: params.Search}
	}

	return QueryOptions{
		Populate: append([]string(nil), defaultPopulate...),
		Sort:     append([]string(nil), defaultSort...),
		Filters:  filters,
		Pagination: PageRequest{
			Page:     pagination.ParsePage(params.Page, config),
			PageSize: config.PageSize,
		},
	}
}

// Values flattens the options in the order filters, pagination, sort, populate.
func (q QueryOptions) Values() qs.Values {
	var v qs.Values
	switch q.Filters.Kind {
	case FilterTitleContains:
		v.Add(q.Filters.Value, "filters", "Title", "$containsi")
	default:
		v.Add(q.Filters.Value, "filters", "category", "slug")
	}
	v.Add(strconv.Itoa(q.Pagination.Page), "pagination", "page")
	v.Add(strconv.Itoa(q.Pagination.PageSize), "pagination", "pageSize")
	v.AddList(q.Sort, "sort")
	v.AddList(q.Populate, "populate")
	return v
}

// Encode returns the query string, without a leading "?".
func (q QueryOptions) Encode() string {
	return q.Values().Encode()
}
