package repository

import (
	"context"
	"errors"

	"devblog/internal/common/pagination"
	"devblog/internal/domain/entity"
)

// ErrContentUnavailable matches (errors.Is) every failure reported by a
// ContentRepository implementation while talking to the content API.
var ErrContentUnavailable = errors.New("content api unavailable")

// Collection is one page of a content API collection response.
type Collection[T any] struct {
	Items      []T
	Pagination pagination.Metadata
}

// ContentRepository reads articles and categories from the content API.
// Each call is exactly one round trip; the query is an already encoded
// query string without the leading "?".
type ContentRepository interface {
	// FetchArticles returns the articles matching query.
	FetchArticles(ctx context.Context, query string) (Collection[entity.Article], error)
	// FetchCategories returns categories. An empty query requests the API's
	// default page.
	FetchCategories(ctx context.Context, query string) (Collection[entity.Category], error)
}
