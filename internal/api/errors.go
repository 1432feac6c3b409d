package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mmcdole/hema/internal/domain"
)

// TransportError means no HTTP response was received (network error, timeout)
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is lets callers match transport failures against domain.ErrServerOffline
func (e *TransportError) Is(target error) bool {
	return target == domain.ErrServerOffline
}

// HTTPError is a non-2xx response
type HTTPError struct {
	URL        string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
}

// Is lets callers match 404 responses against domain.ErrNotFound
func (e *HTTPError) Is(target error) bool {
	return target == domain.ErrNotFound && e.StatusCode == http.StatusNotFound
}

// DecodeError means a 2xx body could not be decoded
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to parse response from %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NormalizeError maps any request failure into the uniform APIError shape.
// Status defaults to 500 and the message to a generic one when the failure
// carries no structured server error.
func NormalizeError(err error) *domain.APIError {
	if err == nil {
		return nil
	}

	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		data := decodeBody(httpErr.Body)
		message := httpErr.Error()
		if obj, ok := data.(map[string]any); ok {
			if msg, ok := obj["error"].(string); ok && msg != "" {
				message = msg
			}
		}
		status := httpErr.StatusCode
		if status == 0 {
			status = domain.DefaultErrorStatus
		}
		return domain.NewAPIError(message, status, data, err)
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return domain.NewAPIError(transportErr.Error(), domain.DefaultErrorStatus, nil, err)
	}

	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return domain.NewAPIError(decodeErr.Error(), domain.DefaultErrorStatus, nil, err)
	}

	return domain.NewAPIError(domain.DefaultErrorMessage, domain.DefaultErrorStatus, nil, err)
}

// decodeBody returns the body as decoded JSON, as trimmed text when it is not
// JSON, or nil when empty
func decodeBody(body []byte) any {
	if len(body) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(body, &v); err == nil {
		return v
	}
	return strings.TrimSpace(string(body))
}
