package restcountries

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrFetchFailure marks a network error or non-success HTTP status.
	ErrFetchFailure = errors.New("fetch failure")
	// ErrNotFound marks a targeted lookup that matched nothing.
	ErrNotFound = errors.New("country not found")
	// ErrLocalFallbackFailure marks an unavailable or unreadable fallback dataset.
	ErrLocalFallbackFailure = errors.New("local fallback unavailable")
)

// FetchError describes a failed request against the remote API.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

// NewFetchError constructs a FetchError. statusCode is 0 for transport errors.
func NewFetchError(url string, statusCode int, err error) error {
	return &FetchError{URL: url, StatusCode: statusCode, Err: err}
}

func (e *FetchError) Error() string {
	if e == nil {
		return ""
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap exposes both the taxonomy sentinel and the root cause.
func (e *FetchError) Unwrap() []error {
	if e == nil {
		return nil
	}
	if e.Err == nil {
		return []error{ErrFetchFailure}
	}
	return []error{ErrFetchFailure, e.Err}
}

// IsNotFoundStatus reports whether err is a FetchError carrying HTTP 404.
func IsNotFoundStatus(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.StatusCode == http.StatusNotFound
}
