// Package config assembles the web server configuration.
//
// Loading order: built-in defaults, then an optional YAML file, then
// environment variables, then Validate. Each layer only overrides the
// fields it sets.
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"devblog/internal/common/pagination"
	"devblog/internal/infra/strapi"
	pkgconfig "devblog/pkg/config"
)

// ConfigFileEnv names the environment variable holding the YAML file path.
const ConfigFileEnv = "CONFIG_FILE"

// WebConfig is the complete configuration of the web server.
type WebConfig struct {
	Server     ServerConfig      `yaml:"server"`
	ContentAPI strapi.Config     `yaml:"content_api"`
	Site       SiteConfig        `yaml:"site"`
	Pagination pagination.Config `yaml:"pagination"`
	Search     SearchConfig      `yaml:"search"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	// RequestTimeout bounds a whole request including the content API calls.
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// SiteConfig holds the values rendered into every page.
type SiteConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// MediaBaseURL prefixes relative upload URLs. Empty means the content API base URL.
	MediaBaseURL string `yaml:"media_base_url"`
}

// SearchConfig holds the search box settings.
type SearchConfig struct {
	// Debounce is the quiet window before a typed term navigates.
	Debounce time.Duration `yaml:"debounce"`
	// MaxLength is the longest accepted term, in characters.
	MaxLength int `yaml:"max_length"`
	// Limit searches per client IP within Window.
	Limit  int           `yaml:"limit"`
	Window time.Duration `yaml:"window"`
	// TrustedProxies lists the reverse proxies, as IPs or CIDR ranges,
	// whose X-Forwarded-For and X-Real-IP headers name the client.
	// Empty means forwarding headers are ignored.
	TrustedProxies []string `yaml:"trusted_proxies"`
}

// TrustedPrefixes parses TrustedProxies. A bare IP becomes a single-address
// prefix.
func (s SearchConfig) TrustedPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(s.TrustedProxies))
	for _, raw := range s.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if prefix, err := netip.ParsePrefix(raw); err == nil {
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: want an IP or CIDR range such as 10.0.0.0/8", raw)
		}
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// DefaultWebConfig returns the configuration used when nothing is overridden.
func DefaultWebConfig() WebConfig {
	return WebConfig{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			RequestTimeout:    15 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		ContentAPI: strapi.DefaultConfig(),
		Site: SiteConfig{
			Name:        "DevMirza Blog",
			Description: "Articles about web development",
		},
		Pagination: pagination.DefaultConfig(),
		Search: SearchConfig{
			Debounce:  500 * time.Millisecond,
			MaxLength: 200,
			Limit:     30,
			Window:    time.Minute,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is non-empty), and the environment. An empty path falls back to
// CONFIG_FILE. The result is validated.
func Load(path string) (*WebConfig, error) {
	cfg := DefaultWebConfig()

	if path == "" {
		path = os.Getenv(ConfigFileEnv)
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *WebConfig) loadFile(path string) error {
	// #nosec G304 -- path comes from the command line or CONFIG_FILE
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays environment variables.
//
// Environment variables:
//   - ADDR, READ_HEADER_TIMEOUT, REQUEST_TIMEOUT, SHUTDOWN_TIMEOUT
//   - CONTENT_API_* (see strapi.LoadConfigFromEnv)
//   - SITE_NAME, SITE_DESCRIPTION, MEDIA_BASE_URL
//   - PAGINATION_PAGE_SIZE, PAGINATION_MAX_PAGE_SIZE
//   - SEARCH_DEBOUNCE, SEARCH_MAX_LENGTH, SEARCH_RATE_LIMIT, SEARCH_RATE_WINDOW
//   - SEARCH_TRUSTED_PROXIES (comma-separated)
func (c *WebConfig) applyEnv() {
	c.Server.Addr = pkgconfig.GetEnvString("ADDR", c.Server.Addr)
	c.Server.ReadHeaderTimeout = pkgconfig.GetEnvDuration("READ_HEADER_TIMEOUT", c.Server.ReadHeaderTimeout)
	c.Server.RequestTimeout = pkgconfig.GetEnvDuration("REQUEST_TIMEOUT", c.Server.RequestTimeout)
	c.Server.ShutdownTimeout = pkgconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.ContentAPI = strapi.LoadConfigFromEnv(c.ContentAPI)

	c.Site.Name = pkgconfig.GetEnvString("SITE_NAME", c.Site.Name)
	c.Site.Description = pkgconfig.GetEnvString("SITE_DESCRIPTION", c.Site.Description)
	c.Site.MediaBaseURL = pkgconfig.GetEnvString("MEDIA_BASE_URL", c.Site.MediaBaseURL)

	c.Pagination = pagination.LoadFromEnv(c.Pagination)

	c.Search.Debounce = pkgconfig.GetEnvDuration("SEARCH_DEBOUNCE", c.Search.Debounce)
	c.Search.MaxLength = pkgconfig.GetEnvInt("SEARCH_MAX_LENGTH", c.Search.MaxLength)
	c.Search.Limit = pkgconfig.GetEnvInt("SEARCH_RATE_LIMIT", c.Search.Limit)
	c.Search.Window = pkgconfig.GetEnvDuration("SEARCH_RATE_WINDOW", c.Search.Window)
	c.Search.TrustedProxies = pkgconfig.GetEnvStringList("SEARCH_TRUSTED_PROXIES", c.Search.TrustedProxies)
}

// MediaBase returns the prefix for relative media URLs.
func (c *WebConfig) MediaBase() string {
	if c.Site.MediaBaseURL != "" {
		return c.Site.MediaBaseURL
	}
	return c.ContentAPI.BaseURL
}

// Validate checks every section and joins the failures.
func (c *WebConfig) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server: addr is required"))
	}
	if err := pkgconfig.ValidatePositiveDuration(c.Server.ReadHeaderTimeout); err != nil {
		errs = append(errs, fmt.Errorf("server: read header timeout: %w", err))
	}
	if c.Server.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("server: request timeout must not be negative, got %v", c.Server.RequestTimeout))
	}
	if err := pkgconfig.ValidatePositiveDuration(c.Server.ShutdownTimeout); err != nil {
		errs = append(errs, fmt.Errorf("server: shutdown timeout: %w", err))
	}
	if err := c.ContentAPI.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("content_api: %w", err))
	}
	if c.Site.Name == "" {
		errs = append(errs, errors.New("site: name is required"))
	}
	if err := c.Pagination.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("pagination: %w", err))
	}
	if err := pkgconfig.ValidateDurationRange(c.Search.Debounce, 0, 5*time.Second); err != nil {
		errs = append(errs, fmt.Errorf("search: debounce: %w", err))
	}
	if c.Search.MaxLength < 1 {
		errs = append(errs, fmt.Errorf("search: max length must be positive, got %d", c.Search.MaxLength))
	}
	if c.Search.Limit < 0 {
		errs = append(errs, fmt.Errorf("search: limit must not be negative, got %d", c.Search.Limit))
	}
	if c.Search.Limit > 0 {
		if err := pkgconfig.ValidatePositiveDuration(c.Search.Window); err != nil {
			errs = append(errs, fmt.Errorf("search: window: %w", err))
		}
	}
	if _, err := c.Search.TrustedPrefixes(); err != nil {
		errs = append(errs, fmt.Errorf("search: %w", err))
	}
	return errors.Join(errs...)
}
