package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultTimeout = 30 * time.Second
	userAgent      = "hema/1.0"
	requestIDKey   = "X-Request-ID"
)

// Response is a successful (2xx) HTTP response with its body fully read
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Getter issues GET requests against the content API.
// Implemented by *Client; tests substitute a recording fake.
type Getter interface {
	Get(ctx context.Context, path string, params url.Values) (*Response, error)
}

// Client talks to the content API at a fixed base URL
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new API client. A non-positive timeout uses DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// BaseURL returns the API root this client targets
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPClient exposes the underlying transport (used by tests to intercept requests)
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Get performs a GET request. Params with no values are not sent.
// Non-2xx responses return *HTTPError, transport failures *TransportError.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (*Response, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(requestIDKey, requestID)

	c.logger.Debug("api request", "method", http.MethodGet, "url", reqURL, "requestID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("api request failed", "error", err, "url", reqURL, "requestID", requestID)
		return nil, &TransportError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("api request error",
			"status", resp.StatusCode,
			"body", string(body),
			"url", reqURL,
			"requestID", requestID,
		)
		return nil, &HTTPError{URL: reqURL, StatusCode: resp.StatusCode, Body: body}
	}

	c.logger.Debug("api response",
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed", time.Since(start),
		"requestID", requestID,
	)

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

// GetJSON performs a GET request and decodes the body into T
func GetJSON[T any](ctx context.Context, g Getter, path string, params url.Values) (T, error) {
	var out T
	resp, err := g.Get(ctx, path, params)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return out, &DecodeError{Path: path, Err: err}
	}
	return out, nil
}

// IsRetryable reports whether a failed request is worth repeating.
// Transport failures and 5xx/408/429 responses are; other client errors are not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.StatusCode >= 500:
			return true
		case httpErr.StatusCode == http.StatusRequestTimeout, httpErr.StatusCode == http.StatusTooManyRequests:
			return true
		default:
			return false
		}
	}
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return false
	}
	return true
}
