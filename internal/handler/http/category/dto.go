// Package category serves the category page: the HTML page at
// /category/{category} and its JSON props at /api/category/{category}.
package category

import (
	"time"

	"devblog/internal/common/pagination"
	"devblog/internal/domain/entity"
	"devblog/internal/repository"
	catUC "devblog/internal/usecase/category"
)

// AuthorDTO is the public part of an article author.
type AuthorDTO struct {
	ID        int64  `json:"id" example:"3"`
	Username  string `json:"username" example:"mirza"`
	AvatarURL string `json:"avatar_url,omitempty" example:"/uploads/mirza.png"`
}

// ArticleDTO represents an article in the props response.
type ArticleDTO struct {
	ID          int64      `json:"id" example:"12"`
	Title       string     `json:"title" example:"Understanding closures"`
	Slug        string     `json:"slug" example:"understanding-closures"`
	Description string     `json:"description,omitempty" example:"How functions capture variables"`
	ImageURL    string     `json:"image_url,omitempty" example:"/uploads/closures.png"`
	Author      *AuthorDTO `json:"author,omitempty"`
	CreatedAt   time.Time  `json:"created_at" example:"2023-02-01T10:00:00Z"`
	PublishedAt *time.Time `json:"published_at,omitempty" example:"2023-02-03T10:00:00Z"`
}

// CategoryDTO represents a category tab.
type CategoryDTO struct {
	ID    int64  `json:"id" example:"1"`
	Title string `json:"title" example:"Web development"`
	Slug  string `json:"slug" example:"web-development"`
}

// ArticleList is one page of articles.
type ArticleList struct {
	Items      []ArticleDTO        `json:"items"`
	Pagination pagination.Metadata `json:"pagination"`
}

// CategoryList is the category collection.
type CategoryList struct {
	Items      []CategoryDTO       `json:"items"`
	Pagination pagination.Metadata `json:"pagination"`
}

// PropsResponse is everything the category page is rendered from.
type PropsResponse struct {
	Slug       string       `json:"slug" example:"javascript"`
	Categories CategoryList `json:"categories"`
	Articles   ArticleList  `json:"articles"`
}

// Props maps a loaded page onto its JSON representation.
func Props(loaded *catUC.Page) PropsResponse {
	return PropsResponse{
		Slug:       loaded.Slug,
		Categories: toCategoryList(loaded.Categories),
		Articles:   toArticleList(loaded.Articles),
	}
}

func toArticleList(c repository.Collection[entity.Article]) ArticleList {
	items := make([]ArticleDTO, 0, len(c.Items))
	for _, a := range c.Items {
		dto := ArticleDTO{
			ID:          a.ID,
			Title:       a.Title,
			Slug:        a.Slug,
			Description: a.Description,
			CreatedAt:   a.CreatedAt,
			PublishedAt: a.PublishedAt,
		}
		if a.Image != nil {
			dto.ImageURL = a.Image.URL
		}
		if a.Author != nil {
			dto.Author = &AuthorDTO{ID: a.Author.ID, Username: a.Author.Username}
			if a.Author.Avatar != nil {
				dto.Author.AvatarURL = a.Author.Avatar.URL
			}
		}
		items = append(items, dto)
	}
	return ArticleList{Items: items, Pagination: c.Pagination}
}

func toCategoryList(c repository.Collection[entity.Category]) CategoryList {
	items := make([]CategoryDTO, 0, len(c.Items))
	for _, cat := range c.Items {
		items = append(items, CategoryDTO{ID: cat.ID, Title: cat.Title, Slug: cat.Slug})
	}
	return CategoryList{Items: items, Pagination: c.Pagination}
}
