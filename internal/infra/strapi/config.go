package strapi

import (
	"fmt"
	"time"

	"devblog/internal/domain/entity"
	"devblog/pkg/config"
)

// Config holds the content API client settings.
type Config struct {
	// BaseURL is the API root without the /api suffix, e.g. http://localhost:1337.
	BaseURL string `yaml:"base_url"`

	// Token is an optional API token sent as a bearer credential.
	Token string `yaml:"token"`

	// Timeout bounds a single request including reading the body.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`

	// MaxBodySize is the largest response body accepted, in bytes.
	// Default: 5MB
	MaxBodySize int64 `yaml:"max_body_size"`

	// RequestsPerSecond and Burst shape outbound traffic with a token bucket.
	// Default: 20 req/s, burst 40
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`

	// UserAgent identifies this service to the content API.
	UserAgent string `yaml:"user_agent"`
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:           "http://localhost:1337",
		Timeout:           10 * time.Second,
		MaxBodySize:       5 * 1024 * 1024,
		RequestsPerSecond: 20,
		Burst:             40,
		UserAgent:         "DevBlog/1.0",
	}
}

// Validate checks if the configuration values are valid.
//
// Validation rules:
//   - BaseURL: absolute http(s) URL without query
//   - Timeout: > 0
//   - MaxBodySize: 1KB-100MB
//   - RequestsPerSecond: > 0
//   - Burst: >= 1
func (c Config) Validate() error {
	if err := entity.ValidateBaseURL(c.BaseURL); err != nil {
		return fmt.Errorf("base url: %w", err)
	}
	if err := config.ValidatePositiveDuration(c.Timeout); err != nil {
		return fmt.Errorf("timeout: %w", err)
	}

	minBodySize := int64(1024)
	maxBodySize := int64(100 * 1024 * 1024)
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests per second must be positive, got %v", c.RequestsPerSecond)
	}
	if c.Burst < 1 {
		return fmt.Errorf("burst must be at least 1, got %d", c.Burst)
	}
	return nil
}

// LoadConfigFromEnv overlays environment variables on top of base.
//
// Environment variables:
//   - CONTENT_API_URL: base URL (default: http://localhost:1337)
//   - CONTENT_API_TOKEN: bearer token (default: none)
//   - CONTENT_API_TIMEOUT: duration string, e.g. "10s"
//   - CONTENT_API_MAX_BODY_SIZE: integer in bytes
//   - CONTENT_API_RPS: float, requests per second
//   - CONTENT_API_BURST: integer
func LoadConfigFromEnv(base Config) Config {
	base.BaseURL = config.GetEnvString("CONTENT_API_URL", base.BaseURL)
	base.Token = config.GetEnvString("CONTENT_API_TOKEN", base.Token)
	base.Timeout = config.GetEnvDuration("CONTENT_API_TIMEOUT", base.Timeout)
	base.MaxBodySize = config.GetEnvInt64("CONTENT_API_MAX_BODY_SIZE", base.MaxBodySize)
	base.RequestsPerSecond = config.GetEnvFloat("CONTENT_API_RPS", base.RequestsPerSecond)
	base.Burst = config.GetEnvInt("CONTENT_API_BURST", base.Burst)
	return base
}
