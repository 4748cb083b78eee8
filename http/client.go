package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/workflowkit/httpcore/logger"
)

const (
	// DefaultTimeout applies when a RequestConfig carries no timeout
	DefaultTimeout = 30 * time.Second

	// HeaderXRequestID is the correlation ID header stamped on every
	// outbound request
	HeaderXRequestID = "X-Request-ID"

	headerContentType   = "Content-Type"
	headerAuthorization = "Authorization"
	contentTypeJSON     = "application/json"
)

// Client is the blocking transport consumed by per-service API clients.
// Each verb takes a URL and a RequestConfig, sends the request, and
// returns the wrapped response. A non-2xx status is not an error at this
// layer; callers classify it through Response.EnsureSuccess or the retry
// engine.
type Client interface {
	Get(ctx context.Context, url string, cfg *RequestConfig) (*Response, error)
	Post(ctx context.Context, url string, cfg *RequestConfig) (*Response, error)
	Put(ctx context.Context, url string, cfg *RequestConfig) (*Response, error)
	Patch(ctx context.Context, url string, cfg *RequestConfig) (*Response, error)
	Delete(ctx context.Context, url string, cfg *RequestConfig) (*Response, error)
	Do(ctx context.Context, method, url string, cfg *RequestConfig) (*Response, error)
	PostMultipart(ctx context.Context, url string, cfg *MultipartRequestConfig) (*Response, error)
	Stream(ctx context.Context, method, url string, cfg *RequestConfig) (*nethttp.Response, error)
}

// client implements the Client interface
type client struct {
	httpClient     *nethttp.Client
	log            logger.Logger
	defaultHeaders map[string]string
	newRequestID   func() string
}

// NewClient creates a transport with default configuration.
func NewClient(log logger.Logger) Client {
	return NewBuilder(log).Build()
}

// Builder provides a fluent interface for configuring the transport
type Builder struct {
	httpClient     *nethttp.Client
	log            logger.Logger
	defaultHeaders map[string]string
	newRequestID   func() string
}

// NewBuilder creates a new transport builder
func NewBuilder(log logger.Logger) *Builder {
	return &Builder{
		log:            log,
		defaultHeaders: make(map[string]string),
		newRequestID:   uuid.NewString,
	}
}

// WithDefaultHeader adds a header sent with every request
func (b *Builder) WithDefaultHeader(key, value string) *Builder {
	b.defaultHeaders[key] = value
	return b
}

// WithHTTPClient replaces the underlying net/http client
func (b *Builder) WithHTTPClient(c *nethttp.Client) *Builder {
	b.httpClient = c
	return b
}

// WithRequestIDGenerator replaces the correlation ID generator
func (b *Builder) WithRequestIDGenerator(fn func() string) *Builder {
	if fn != nil {
		b.newRequestID = fn
	}
	return b
}

// Build creates the transport with the configured options
func (b *Builder) Build() Client {
	httpClient := b.httpClient
	if httpClient == nil {
		httpClient = &nethttp.Client{}
	}
	return &client{
		httpClient:     httpClient,
		log:            b.log,
		defaultHeaders: b.defaultHeaders,
		newRequestID:   b.newRequestID,
	}
}

// Get performs a GET request
func (c *client) Get(ctx context.Context, url string, cfg *RequestConfig) (*Response, error) {
	return c.Do(ctx, nethttp.MethodGet, url, cfg)
}

// Post performs a POST request
func (c *client) Post(ctx context.Context, url string, cfg *RequestConfig) (*Response, error) {
	return c.Do(ctx, nethttp.MethodPost, url, cfg)
}

// Put performs a PUT request
func (c *client) Put(ctx context.Context, url string, cfg *RequestConfig) (*Response, error) {
	return c.Do(ctx, nethttp.MethodPut, url, cfg)
}

// Patch performs a PATCH request
func (c *client) Patch(ctx context.Context, url string, cfg *RequestConfig) (*Response, error) {
	return c.Do(ctx, nethttp.MethodPatch, url, cfg)
}

// Delete performs a DELETE request
func (c *client) Delete(ctx context.Context, url string, cfg *RequestConfig) (*Response, error) {
	return c.Do(ctx, nethttp.MethodDelete, url, cfg)
}

// Do performs an HTTP request with the specified method. Exactly one
// attempt is made; retrying belongs to the Retrier.
func (c *client) Do(ctx context.Context, method, url string, cfg *RequestConfig) (*Response, error) {
	if cfg == nil {
		cfg = NewRequestConfig()
	}

	body, contentType, err := jsonBody(cfg)
	if err != nil {
		return nil, err
	}

	return c.send(ctx, method, url, body, contentType, cfg.Query, cfg.Auth, cfg.Headers, cfg.Timeout)
}

// Stream performs a request and returns the raw response with its body
// left open, for server-sent events and other endpoints where buffering
// the body defeats the purpose. The caller owns resp.Body and must close
// it. No per-request timeout is applied; cancellation comes from the
// caller's context.
func (c *client) Stream(ctx context.Context, method, url string, cfg *RequestConfig) (*nethttp.Response, error) {
	if cfg == nil {
		cfg = NewRequestConfig()
	}

	body, contentType, err := jsonBody(cfg)
	if err != nil {
		return nil, err
	}

	req, err := c.buildRequest(ctx, method, url, body, contentType, cfg.Query, cfg.Auth, cfg.Headers)
	if err != nil {
		return nil, err
	}

	c.logRequest(method, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, NewTransportError("request timed out", err)
		}
		return nil, NewTransportError("request failed", err)
	}
	return resp, nil
}

// jsonBody serializes a config's body, if any, as JSON.
func jsonBody(cfg *RequestConfig) (io.Reader, string, error) {
	if cfg.Body == nil {
		return nil, "", nil
	}
	encoded, err := json.Marshal(cfg.Body)
	if err != nil {
		return nil, "", NewDecodeError("failed to serialize request body as JSON", err)
	}
	return bytes.NewReader(encoded), contentTypeJSON, nil
}

// PostMultipart performs a POST request with a multipart form payload
func (c *client) PostMultipart(ctx context.Context, url string, cfg *MultipartRequestConfig) (*Response, error) {
	if cfg == nil || cfg.Form == nil {
		return nil, NewTransportError("multipart request requires a form payload", nil)
	}

	payload, err := cfg.Form.Payload()
	if err != nil {
		return nil, NewTransportError("failed to finalize multipart form", err)
	}

	return c.send(ctx, nethttp.MethodPost, url, strings.NewReader(payload),
		cfg.Form.ContentType(), cfg.Query, cfg.Auth, cfg.Headers, cfg.Timeout)
}

func (c *client) send(ctx context.Context, method, url string, body io.Reader, contentType string,
	query map[string][]string, auth *Authorization, headers map[string]string, timeout time.Duration) (*Response, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := c.buildRequest(ctx, method, url, body, contentType, query, auth, headers)
	if err != nil {
		return nil, err
	}

	c.logRequest(method, req)
	start := time.Now()

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, NewTransportError("request timed out", err)
		}
		return nil, NewTransportError("request failed", err)
	}

	resp, err := newResponseFrom(httpResp)
	if err != nil {
		return nil, err
	}

	c.logResponse(method, req.URL.String(), resp, time.Since(start))
	return resp, nil
}

func (c *client) buildRequest(ctx context.Context, method, url string, body io.Reader, contentType string,
	query map[string][]string, auth *Authorization, headers map[string]string) (*nethttp.Request, error) {
	req, err := nethttp.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, NewTransportError("failed to build HTTP request", err)
	}

	if len(query) > 0 {
		q := req.URL.Query()
		for key, values := range query {
			for _, v := range values {
				q.Add(key, v)
			}
		}
		req.URL.RawQuery = q.Encode()
	}

	for key, value := range c.defaultHeaders {
		req.Header.Set(key, value)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	if contentType != "" && req.Header.Get(headerContentType) == "" {
		req.Header.Set(headerContentType, contentType)
	}
	if req.Header.Get(HeaderXRequestID) == "" {
		req.Header.Set(HeaderXRequestID, c.newRequestID())
	}
	if auth != nil {
		req.Header.Set(headerAuthorization, auth.HeaderValue())
	}

	return req, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// logRequest logs the outgoing request. Credential headers are never
// logged.
func (c *client) logRequest(method string, req *nethttp.Request) {
	c.log.Debug().
		Str("direction", "outbound").
		Str("method", method).
		Str("url", req.URL.String()).
		Str("request_id", req.Header.Get(HeaderXRequestID)).
		Msg("HTTP request")
}

// logResponse logs the completed call
func (c *client) logResponse(method, url string, resp *Response, elapsed time.Duration) {
	c.log.Debug().
		Str("direction", "inbound").
		Str("method", method).
		Str("url", url).
		Int("status", resp.Status).
		Dur("elapsed", elapsed).
		Int("body_bytes", len(resp.AsBytes())).
		Msg("HTTP response")
}
