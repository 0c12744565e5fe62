// ABOUTME: Custom error types for the core business logic
// ABOUTME: Distinguishes source failures, decode failures and bad configuration

package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ExternalAPIError is returned when a recipe source answers with a non-2xx
// status or cannot be reached at all (StatusCode 0).
type ExternalAPIError struct {
	StatusCode int
	Message    string
	URL        string
	Err        error
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("fetching %s: %s", e.URL, e.Message)
	}
	return fmt.Sprintf("fetching %s: %d - %s", e.URL, e.StatusCode, e.Message)
}

// Unwrap returns the transport error, if any
func (e *ExternalAPIError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when a document (a source body or the cached
// collection) is not valid JSON.
type DecodeError struct {
	Source string
	Err    error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying parse error
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsExternalAPI checks if an error is an ExternalAPIError
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// IsDecode checks if an error is a DecodeError
func IsDecode(err error) bool {
	var decodeErr *DecodeError
	return errors.As(err, &decodeErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
