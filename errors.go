package geminikit

import (
	"errors"
	"net/http"
)

// Sentinel errors for settings and transport operations.
// All use prefix "geminikit:". Callers should use errors.Is/errors.As.
var (
	ErrInvalidSettings = errors.New("geminikit: invalid settings")
	ErrRequestFailed   = errors.New("geminikit: request failed")
	ErrInvalidPart     = errors.New("geminikit: invalid content part")
)

// HTTPError is a non-2xx answer from the API. Every transport reports failures
// of the remote call this way, so callers handle a single error shape.
// Use errors.Is(err, ErrRequestFailed) and errors.As(err, &httpErr) to inspect.
type HTTPError struct {
	StatusCode int
	Message    string
	Body       string
	Header     http.Header
}

// Error renders "{message}: {body}".
func (e *HTTPError) Error() string {
	return e.Message + ": " + e.Body
}

// Is reports ErrRequestFailed as a match.
func (e *HTTPError) Is(target error) bool { return target == ErrRequestFailed }

// Compile-time check that HTTPError implements error.
var _ error = (*HTTPError)(nil)
