package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrServerOffline indicates the content API is unreachable
	ErrServerOffline = errors.New("content server is unreachable")

	// ErrNotFound indicates the requested book, chapter or technique does not exist
	ErrNotFound = errors.New("content not found")

	// ErrNoVideo indicates the technique has no video to open
	ErrNoVideo = errors.New("no video available yet")
)

// Default values used when a failure carries no structured server error
const (
	DefaultErrorStatus  = 500
	DefaultErrorMessage = "An unexpected error occurred"
)

// APIError is the uniform shape every failed request is normalized into
type APIError struct {
	Message string
	Status  int
	Data    any // Decoded response body, if any

	cause error
}

// NewAPIError creates an APIError that wraps the underlying failure
func NewAPIError(message string, status int, data any, cause error) *APIError {
	return &APIError{Message: message, Status: status, Data: data, cause: cause}
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying failure to errors.Is / errors.As
func (e *APIError) Unwrap() error {
	return e.cause
}
