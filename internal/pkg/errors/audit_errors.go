package errors

import (
	"errors"
	"fmt"
)

// ErrSpam marks a request whose honeypot field was filled in.
var ErrSpam = errors.New(`spam detected`)

// ErrUnparseable means no JSON object could be recovered from model output.
var ErrUnparseable = errors.New(`no json object found in model output`)

// ValidationError is a client-caused failure. The message is safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// FetchError is returned by the content extractor when the target page
// could not be retrieved or read.
type FetchError struct {
	URL     string
	Timeout bool
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Timeout {
		return fmt.Sprintf(`fetch %s: timed out: %v`, e.URL, e.Cause)
	}
	return fmt.Sprintf(`fetch %s: %v`, e.URL, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// ModelError is a non-success response from the completion endpoint.
// Status is the upstream HTTP status, 0 when the call never got a response.
type ModelError struct {
	Provider string
	Status   int
	Body     string
	Cause    error
}

func (e *ModelError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf(`%s model call failed: %v`, e.Provider, e.Cause)
	}
	return fmt.Sprintf(`%s model error %d`, e.Provider, e.Status)
}

func (e *ModelError) Unwrap() error {
	return e.Cause
}

// RateLimited reports whether the upstream rejected the call for quota or rate reasons.
func (e *ModelError) RateLimited() bool {
	return e.Status == 429
}

// ResolutionError is the terminal failure of the response resolver: neither
// the first completion nor the repair completion produced a valid result.
type ResolutionError struct {
	Raw   string
	Cause error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf(`model did not return valid structured output: %v`, e.Cause)
}

func (e *ResolutionError) Unwrap() error {
	return e.Cause
}
