package domain

import (
	"errors"
	"fmt"
)

// Class categorizes a provider failure. The aggregation layer branches on
// the class, never on raw status codes or transport error strings.
type Class string

const (
	// ClassTransport covers DNS, connection and timeout failures, including
	// deadlines imposed by the aggregation layer and open circuit breakers.
	ClassTransport Class = "transport"

	// ClassRateLimited marks an HTTP 429 from the provider.
	ClassRateLimited Class = "rate_limited"

	// ClassNotFound marks an HTTP 404 or a success response with an empty body.
	ClassNotFound Class = "not_found"

	// ClassServerError marks any 5xx from the provider.
	ClassServerError Class = "server_error"

	// ClassMalformed marks a response that is not JSON or is missing the
	// expected envelope.
	ClassMalformed Class = "malformed"

	// ClassValidationFailed marks an item the normalizer rejected for
	// missing mandatory fields. Handled per item, never per batch.
	ClassValidationFailed Class = "validation_failed"
)

// ProviderError carries the classification alongside the underlying cause
// and, when one exists, the HTTP status code. The status code is preserved
// so callers can always inspect what the provider actually returned.
type ProviderError struct {
	Provider   string
	Class      Class
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", e.Provider, e.Class, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Class, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError builds a classified provider error.
func NewProviderError(provider string, class Class, statusCode int, err error) *ProviderError {
	return &ProviderError{
		Provider:   provider,
		Class:      class,
		StatusCode: statusCode,
		Err:        err,
	}
}

// ErrValidation is the sentinel cause for normalizer rejections.
var ErrValidation = errors.New("mandatory fields missing")

// ClassOf extracts the classification from an error chain.
// Unclassified errors are treated as transport failures.
func ClassOf(err error) Class {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Class
	}
	if errors.Is(err, ErrValidation) {
		return ClassValidationFailed
	}
	return ClassTransport
}

// IsNotFound reports whether the error chain classifies as NotFound.
func IsNotFound(err error) bool {
	return err != nil && ClassOf(err) == ClassNotFound
}

// IsRateLimited reports whether the error chain classifies as RateLimited.
func IsRateLimited(err error) bool {
	return err != nil && ClassOf(err) == ClassRateLimited
}
