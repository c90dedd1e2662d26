package pagination

// Metadata is the pagination block returned by the content API under
// meta.pagination.
type Metadata struct {
	Page      int `json:"page"`      // Current page number (1-based)
	PageSize  int `json:"pageSize"`  // Items per page
	PageCount int `json:"pageCount"` // Total number of pages
	Total     int `json:"total"`     // Total number of items across all pages
}

// HasPrev reports whether a previous page exists.
func (m Metadata) HasPrev() bool {
	return m.Page > 1
}

// HasNext reports whether a next page exists.
func (m Metadata) HasNext() bool {
	return m.Page < m.PageCount
}
