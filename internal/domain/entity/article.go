// Package entity defines the domain objects served by the blog: articles,
// their authors and the categories they are filed under, along with the
// validation rules and domain errors shared by the layers above.
package entity

import "time"

// Article is a blog post as returned by the content API.
// Author is nil when the relation was not populated.
type Article struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	Body        string     `json:"body,omitempty"`
	Image       *Media     `json:"image,omitempty"`
	Author      *Author    `json:"author,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// Author is the user who wrote an article.
type Author struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"-"`
	Avatar   *Media `json:"avatar,omitempty"`
}

// Media is an uploaded file reference (cover images, avatars).
type Media struct {
	ID              int64  `json:"id"`
	URL             string `json:"url"`
	AlternativeText string `json:"alternativeText,omitempty"`
	Width           int    `json:"width,omitempty"`
	Height          int    `json:"height,omitempty"`
}

// AuthorName returns the author's username or "Anonymous" when the relation is missing.
func (a Article) AuthorName() string {
	if a.Author == nil || a.Author.Username == "" {
		return "Anonymous"
	}
	return a.Author.Username
}

// Date returns the publication time, falling back to the creation time for drafts.
func (a Article) Date() time.Time {
	if a.PublishedAt != nil && !a.PublishedAt.IsZero() {
		return *a.PublishedAt
	}
	return a.CreatedAt
}
