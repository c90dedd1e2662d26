// Package pagination provides page-number pagination for category listings:
// lenient page parsing, the upstream pagination metadata, and prev/next link
// derivation for the pagination control.
package pagination

import (
	"fmt"

	"devblog/pkg/config"
)

// Config holds pagination configuration settings.
type Config struct {
	DefaultPage int `yaml:"-"`             // Page used when the route carries no usable page (always 1)
	PageSize    int `yaml:"page_size"`     // Articles requested per page
	MaxPageSize int `yaml:"max_page_size"` // Upper bound accepted for PageSize
}

// DefaultConfig returns the default pagination configuration.
// PageSize defaults to 1, the value the blog front end has always requested.
func DefaultConfig() Config {
	return Config{
		DefaultPage: 1,
		PageSize:    1,
		MaxPageSize: 100,
	}
}

// LoadFromEnv overlays environment variables on top of base.
// Supported environment variables:
//   - PAGINATION_PAGE_SIZE: Articles per page
//   - PAGINATION_MAX_PAGE_SIZE: Maximum articles per page
func LoadFromEnv(base Config) Config {
	base.PageSize = config.GetEnvInt("PAGINATION_PAGE_SIZE", base.PageSize)
	base.MaxPageSize = config.GetEnvInt("PAGINATION_MAX_PAGE_SIZE", base.MaxPageSize)
	return base
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.DefaultPage < 1 {
		return fmt.Errorf("default page must be a positive integer, got %d", c.DefaultPage)
	}
	if c.MaxPageSize < 1 {
		return fmt.Errorf("max page size must be a positive integer, got %d", c.MaxPageSize)
	}
	if c.PageSize < 1 || c.PageSize > c.MaxPageSize {
		return fmt.Errorf("page size must be between 1 and %d, got %d", c.MaxPageSize, c.PageSize)
	}
	return nil
}
