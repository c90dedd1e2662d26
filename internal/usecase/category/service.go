package category

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"devblog/internal/common/pagination"
	"devblog/internal/domain/entity"
	"devblog/internal/repository"
)

// Page is everything the renderer needs for one category page.
type Page struct {
	Slug       string
	Route      RouteParams
	Query      QueryOptions
	Articles   repository.Collection[entity.Article]
	Categories repository.Collection[entity.Category]
}

// Service provides the category page use case.
type Service struct {
	Repo       repository.ContentRepository
	Pagination pagination.Config
}

// NewService creates a Service. A zero pagination config is replaced by
// pagination.DefaultConfig().
func NewService(repo repository.ContentRepository, config pagination.Config) *Service {
	if config == (pagination.Config{}) {
		config = pagination.DefaultConfig()
	}
	return &Service{Repo: repo, Pagination: config}
}

// LoadPage builds the article query for params and fetches articles and
// categories concurrently. Both must succeed; the first failure cancels the
// other fetch and is returned.
func (s *Service) LoadPage(ctx context.Context, params RouteParams) (*Page, error) {
	if s.Repo == nil {
		return nil, ErrNoRepository
	}
	start := time.Now()
	defer func() {
		pagination.RecordDuration("service", time.Since(start).Seconds())
	}()

	query := BuildQuery(params, s.Pagination)
	page := &Page{
		Slug:  params.Category,
		Route: params,
		Query: query,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		articles, err := s.Repo.FetchArticles(gctx, query.Encode())
		if err != nil {
			return fmt.Errorf("fetch articles: %w", err)
		}
		page.Articles = articles
		return nil
	})
	g.Go(func() error {
		categories, err := s.Repo.FetchCategories(gctx, "")
		if err != nil {
			return fmt.Errorf("fetch categories: %w", err)
		}
		page.Categories = categories
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return page, nil
}
