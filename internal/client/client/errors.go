package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
)

// Machine-readable codes the backend may put in an error body.
const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
)

// APIError is the single failure shape returned by HTTPClient. Status is zero
// when no response was received.
type APIError struct {
	Message string
	Code    string
	Field   string
	Status  int

	cause error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return "api: " + e.Message
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Unwrap exposes the transport error, if any, so that context cancellation
// stays matchable with errors.Is.
func (e *APIError) Unwrap() error { return e.cause }

func (e *APIError) IsAuthError() bool {
	return e.Status == 401 || e.Code == CodeUnauthorized
}

func (e *APIError) IsValidationError() bool {
	return e.Status == 422 || e.Code == CodeValidation
}

func (e *APIError) IsNotFoundError() bool {
	return e.Status == 404 || e.Code == CodeNotFound
}

// IsTransportError reports a failure with no HTTP response at all.
func (e *APIError) IsTransportError() bool {
	return e.Status == 0
}

// Is maps the classification onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.IsAuthError()
	case ErrValidation:
		return e.IsValidationError()
	case ErrNotFound:
		return e.IsNotFoundError()
	case ErrUnavailable:
		return e.IsTransportError()
	}
	return false
}

// UserMessage renders err for display. Anything that is not an *APIError
// gets the generic message.
func UserMessage(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return "An unexpected error occurred"
	}
	return apiErr.UserMessage()
}

func (e *APIError) UserMessage() string {
	switch {
	case e.IsAuthError():
		return "Please log in to continue"
	case e.IsValidationError() && e.Field != "":
		return fmt.Sprintf("Invalid %s: %s", e.Field, e.Message)
	case e.IsNotFoundError():
		return "The requested resource was not found"
	case e.Message != "":
		return e.Message
	}
	return "An unexpected error occurred"
}
