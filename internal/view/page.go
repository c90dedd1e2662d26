// Package view turns a loaded category page into what is shown: the page
// title, the category tab bar with its search box, the article list and
// the pagination control. It renders HTML with html/template and is also
// the model behind the terminal browser.
package view

import (
	"time"

	"devblog/internal/common/pagination"
	"devblog/internal/domain/entity"
	"devblog/internal/usecase/category"
)

// DefaultSiteName prefixes every page title.
const DefaultSiteName = "DevMirza Blog"

// Site carries the site-wide settings used by the renderer.
type Site struct {
	Name        string
	Description string
	// MediaBaseURL is prepended to relative upload URLs such as /uploads/a.png.
	MediaBaseURL string
}

// Tab is one entry of the category tab bar.
type Tab struct {
	Title  string
	Slug   string
	URL    string
	Active bool
}

// ArticleCard is one entry of the article list.
type ArticleCard struct {
	ID        int64
	Title     string
	URL       string
	Excerpt   string
	Author    string
	AvatarURL string
	ImageURL  string
	Date      time.Time
}

// Page is the complete view model of a category page.
type Page struct {
	Title          string
	Description    string
	Label          string
	Slug           string
	Search         string
	SearchAction   string
	DebounceMillis int64
	Tabs           []Tab
	Articles       []ArticleCard
	Pagination     pagination.Links
}

// Empty reports whether the article list has nothing to show.
func (p Page) Empty() bool {
	return len(p.Articles) == 0
}

// Title returns "<site> | <label>" for slug.
func Title(site Site, slug string) string {
	name := site.Name
	if name == "" {
		name = DefaultSiteName
	}
	return name + " | " + FormatCategory(slug)
}

// Build maps a loaded category page onto its view model. Pagination links
// are scoped to /category/{slug} and carry only the page number.
func Build(site Site, loaded *category.Page, debounceWindow time.Duration) Page {
	if debounceWindow <= 0 {
		debounceWindow = DefaultSearchDebounce
	}
	slug := loaded.Slug

	page := Page{
		Title:          Title(site, slug),
		Description:    site.Description,
		Label:          FormatCategory(slug),
		Slug:           slug,
		Search:         loaded.Route.Search,
		SearchAction:   category.Path(slug),
		DebounceMillis: debounceWindow.Milliseconds(),
		Tabs:           make([]Tab, 0, len(loaded.Categories.Items)),
		Articles:       make([]ArticleCard, 0, len(loaded.Articles.Items)),
		Pagination:     pagination.BuildLinks(category.Path(slug), loaded.Articles.Pagination),
	}

	for _, c := range loaded.Categories.Items {
		page.Tabs = append(page.Tabs, Tab{
			Title:  c.Title,
			Slug:   c.Slug,
			URL:    category.Path(c.Slug),
			Active: c.Slug == slug,
		})
	}
	for _, a := range loaded.Articles.Items {
		page.Articles = append(page.Articles, card(site, a))
	}
	return page
}

func card(site Site, a entity.Article) ArticleCard {
	c := ArticleCard{
		ID:      a.ID,
		Title:   a.Title,
		URL:     "/article/" + a.Slug,
		Excerpt: excerpt(a),
		Author:  a.AuthorName(),
		Date:    a.Date(),
	}
	if a.Author != nil && a.Author.Avatar != nil {
		c.AvatarURL = mediaURL(site, a.Author.Avatar.URL)
	}
	if a.Image != nil {
		c.ImageURL = mediaURL(site, a.Image.URL)
	}
	return c
}

const excerptRunes = 160

func excerpt(a entity.Article) string {
	text := a.Description
	if text == "" {
		text = a.Body
	}
	runes := []rune(text)
	if len(runes) <= excerptRunes {
		return text
	}
	return string(runes[:excerptRunes]) + "…"
}

func mediaURL(site Site, u string) string {
	if u == "" || site.MediaBaseURL == "" || u[0] != '/' {
		return u
	}
	return site.MediaBaseURL + u
}
