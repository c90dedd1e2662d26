package strapi

import (
	"time"

	"devblog/internal/common/pagination"
	"devblog/internal/domain/entity"
)

// Wire types of the Strapi v4 REST API. Every entry is {id, attributes}
// and every relation is {data: entry|null}. encoding/json matches keys
// case-insensitively, so "Title" and "title" both decode.

type collectionResponse[T any] struct {
	Data []entry[T] `json:"data"`
	Meta struct {
		Pagination pagination.Metadata `json:"pagination"`
	} `json:"meta"`
}

type entry[T any] struct {
	ID         int64 `json:"id"`
	Attributes T     `json:"attributes"`
}

type relation[T any] struct {
	Data *entry[T] `json:"data"`
}

type articleAttributes struct {
	Title       string                     `json:"Title"`
	Slug        string                     `json:"Slug"`
	Description string                     `json:"Description"`
	Body        string                     `json:"Body"`
	Image       relation[mediaAttributes]  `json:"Image"`
	Author      relation[authorAttributes] `json:"author"`
	CreatedAt   time.Time                  `json:"createdAt"`
	UpdatedAt   time.Time                  `json:"updatedAt"`
	PublishedAt *time.Time                 `json:"publishedAt"`
}

type authorAttributes struct {
	Username string                    `json:"username"`
	Email    string                    `json:"email"`
	Avatar   relation[mediaAttributes] `json:"avatar"`
}

type mediaAttributes struct {
	URL             string `json:"url"`
	AlternativeText string `json:"alternativeText"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
}

type categoryAttributes struct {
	Title string `json:"Title"`
	Slug  string `json:"Slug"`
}

type errorResponse struct {
	Error *struct {
		Status  int    `json:"status"`
		Name    string `json:"name"`
		Message string `json:"message"`
	} `json:"error"`
}

func toMedia(r relation[mediaAttributes]) *entity.Media {
	if r.Data == nil {
		return nil
	}
	a := r.Data.Attributes
	return &entity.Media{
		ID:              r.Data.ID,
		URL:             a.URL,
		AlternativeText: a.AlternativeText,
		Width:           a.Width,
		Height:          a.Height,
	}
}

func toAuthor(r relation[authorAttributes]) *entity.Author {
	if r.Data == nil {
		return nil
	}
	a := r.Data.Attributes
	return &entity.Author{
		ID:       r.Data.ID,
		Username: a.Username,
		Email:    a.Email,
		Avatar:   toMedia(a.Avatar),
	}
}

func toArticle(e entry[articleAttributes]) entity.Article {
	a := e.Attributes
	return entity.Article{
		ID:          e.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		Description: a.Description,
		Body:        a.Body,
		Image:       toMedia(a.Image),
		Author:      toAuthor(a.Author),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		PublishedAt: a.PublishedAt,
	}
}

func toCategory(e entry[categoryAttributes]) entity.Category {
	return entity.Category{
		ID:    e.ID,
		Title: e.Attributes.Title,
		Slug:  e.Attributes.Slug,
	}
}
