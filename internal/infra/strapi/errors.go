package strapi

import (
	"errors"
	"fmt"
	"net/http"

	"devblog/internal/repository"
)

// ErrBodyTooLarge is wrapped by a decode FetchError when a response exceeds MaxBodySize.
var ErrBodyTooLarge = errors.New("response body too large")

// Kind classifies a FetchError.
type Kind int

const (
	// KindNetwork means no usable response was received (DNS, connect, timeout, reset).
	KindNetwork Kind = iota + 1
	// KindStatus means the API answered with a non-2xx status.
	KindStatus
	// KindDecode means the response body could not be read or parsed.
	KindDecode
	// KindUnavailable means the call was not attempted: circuit open or throttled.
	KindUnavailable
	// KindCanceled means the caller's context ended before a response arrived.
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	case KindUnavailable:
		return "unavailable"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// FetchError is returned by every Client call that fails.
type FetchError struct {
	Resource   string // "articles" or "categories"
	Kind       Kind
	StatusCode int    // set for KindStatus
	APIName    string // error.name from the API body, e.g. "NotFoundError"
	Message    string // error.message from the API body, or the status text
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.APIName != "" {
			return fmt.Sprintf("content api: fetch %s: status %d %s: %s", e.Resource, e.StatusCode, e.APIName, e.Message)
		}
		return fmt.Sprintf("content api: fetch %s: status %d: %s", e.Resource, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("content api: fetch %s: %s: %v", e.Resource, e.Kind, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is makes every FetchError match repository.ErrContentUnavailable.
func (e *FetchError) Is(target error) bool {
	return target == repository.ErrContentUnavailable
}

// Upstream reports whether the failure is attributable to the API or the
// network rather than to the request. 4xx answers and canceled calls are not.
func (e *FetchError) Upstream() bool {
	switch e.Kind {
	case KindStatus:
		return e.StatusCode >= http.StatusInternalServerError
	case KindCanceled:
		return false
	}
	return true
}

// AsFetchError returns the FetchError in err's chain, if any.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
