package model

import "fmt"

// FetchErrorKind classifies why a page fetch failed, so callers and tests can
// assert on the reason instead of matching error strings.
type FetchErrorKind string

const (
	FetchTransport   FetchErrorKind = "transport"   // connection, timeout
	FetchDecode      FetchErrorKind = "decode"      // malformed response body
	FetchApplication FetchErrorKind = "application" // upstream success=false or bad shape
)

// FetchError wraps a page fetch failure with its kind and the page it hit.
type FetchError struct {
	Kind FetchErrorKind
	Page int
	Err  error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch page %d: %s: %v", e.Page, e.Kind, e.Err)
	}
	return fmt.Sprintf("fetch page %d: %s", e.Page, e.Kind)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
