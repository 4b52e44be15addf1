package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/aiscreen-io/canvasctl/internal/constants"
	"github.com/aiscreen-io/canvasctl/internal/http"
	"github.com/aiscreen-io/canvasctl/internal/logging"
)

// TokenSource supplies the current bearer token. The Authorization header
// is recomputed from it on every request, so there is no default-header
// state to fall out of sync with the persisted token.
type TokenSource interface {
	Token() string
}

// retryLogger adapts our logger to the retryablehttp.LeveledLogger interface.
type retryLogger struct {
	logger *logging.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error().Msgf("retry: %s %v", msg, keysAndValues)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn().Msgf("retry: %s %v", msg, keysAndValues)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {}

// Client is the shared request client for the canvas backend. All API
// traffic funnels through Do so auth injection, retries, and error
// normalization happen in exactly one place.
type Client struct {
	httpClient     *nethttp.Client
	baseURL        string
	tokens         TokenSource
	logger         *logging.Logger
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithOnUnauthorized registers a callback invoked whenever the backend
// answers 401. The session manager uses it to clear the persisted token.
func WithOnUnauthorized(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests.
func WithHTTPClient(hc *nethttp.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates an API client for the given base URL. tokens may be
// nil for unauthenticated use; requests are then sent without an
// Authorization header.
func NewClient(baseURL string, tokens TokenSource, logger *logging.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("API base URL is empty")
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = http.NewClient()
	retryClient.RetryMax = constants.RetryMax
	retryClient.RetryWaitMin = constants.RetryWaitMin
	retryClient.RetryWaitMax = constants.RetryWaitMax
	retryClient.Logger = &retryLogger{logger: logger}

	c := &Client{
		httpClient: retryClient.StandardClient(),
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		tokens:     tokens,
		logger:     logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs an HTTP request against the backend. body may be nil.
// contentType is required when body is non-nil. A 401 response triggers
// the onUnauthorized callback before the response is returned.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader, contentType string) (*nethttp.Response, error) {
	url := c.baseURL + path
	req, err := nethttp.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, NetworkError(err, "failed to create request")
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().
			Str("method", method).
			Str("path", path).
			Err(err).
			Msg("API call failed")
		return nil, NetworkError(err, "request failed, check your connection")
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("API call")

	if resp.StatusCode == nethttp.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	return resp, nil
}

// DoJSON performs a request with a JSON-encoded body.
func (c *Client) DoJSON(ctx context.Context, method, path string, body interface{}) (*nethttp.Response, error) {
	var reqBody io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, NetworkError(err, "failed to encode request body")
		}
		reqBody = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.Do(ctx, method, path, reqBody, contentType)
}

// DecodeJSON decodes a response body into v and closes the body.
func DecodeJSON(resp *nethttp.Response, v interface{}) error {
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return NetworkError(err, "failed to decode response")
	}
	return nil
}
