// Package category implements the category page use case: it turns route
// parameters into a content API query, fetches the matching articles and the
// category list, and hands both to the renderer.
package category

import "errors"

// Sentinel errors for category use case operations.
var (
	// ErrInvalidRoute indicates that a navigation target is not a category page URL.
	ErrInvalidRoute = errors.New("not a category route")

	// ErrNoRepository indicates that the service was built without a content repository.
	ErrNoRepository = errors.New("content repository is not configured")
)
