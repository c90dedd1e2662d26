package entity

// Category groups articles. Only Slug takes part in filtering; Title is
// the display name shown in the tab bar.
type Category struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}
