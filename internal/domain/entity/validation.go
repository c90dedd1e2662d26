package entity

import (
	"fmt"
	"net/url"
	"regexp"
)

const (
	maxURLLength  = 2048
	maxSlugLength = 200
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidateBaseURL checks a content API base URL: absolute http(s), a host,
// and no query or fragment since paths are appended to it.
func ValidateBaseURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}
	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}
	if parsedURL.Host == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}
	if parsedURL.RawQuery != "" || parsedURL.Fragment != "" {
		return &ValidationError{Field: "url", Message: "URL must not carry a query or fragment"}
	}
	return nil
}

// IsSlug reports whether s is a lowercase hyphen-separated slug such as
// "web-development". The query builder does not require it; blogctl uses it
// to warn about a category argument that no category is likely to match.
func IsSlug(s string) bool {
	return len(s) <= maxSlugLength && slugPattern.MatchString(s)
}
