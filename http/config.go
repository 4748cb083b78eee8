package http

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strings"
	"time"
)

// RequestConfig accumulates the optional parts of a request: a body
// (serialized as JSON by the transport), query parameters, authorization,
// headers, and a per-request timeout. Every field is independently
// optional; absence means "use the transport default". Construct one per
// call with NewRequestConfig and chain the With* methods. No validation
// happens here; malformed values surface when the transport consumes
// them.
type RequestConfig struct {
	Body    any
	Query   url.Values
	Auth    *Authorization
	Headers map[string]string
	Timeout time.Duration
}

// NewRequestConfig returns an empty configuration.
func NewRequestConfig() *RequestConfig {
	return &RequestConfig{}
}

// WithBody sets the request body. The transport serializes it as JSON.
func (c *RequestConfig) WithBody(body any) *RequestConfig {
	c.Body = body
	return c
}

// WithQuery sets the query parameters.
func (c *RequestConfig) WithQuery(query url.Values) *RequestConfig {
	c.Query = query
	return c
}

// WithAuth sets the basic-auth credentials.
func (c *RequestConfig) WithAuth(auth *Authorization) *RequestConfig {
	c.Auth = auth
	return c
}

// WithHeaders replaces the header map.
func (c *RequestConfig) WithHeaders(headers map[string]string) *RequestConfig {
	c.Headers = headers
	return c
}

// WithHeader sets a single header.
func (c *RequestConfig) WithHeader(key, value string) *RequestConfig {
	if c.Headers == nil {
		c.Headers = make(map[string]string)
	}
	c.Headers[key] = value
	return c
}

// WithTimeout sets the per-request timeout.
func (c *RequestConfig) WithTimeout(timeout time.Duration) *RequestConfig {
	c.Timeout = timeout
	return c
}

// MultipartForm builds a multipart/form-data payload. Unlike a JSON body
// it is written once and carries its own content type, which is why
// multipart requests use a dedicated config type.
type MultipartForm struct {
	buf    strings.Builder
	writer *multipart.Writer
	closed bool
}

// NewMultipartForm returns an empty form.
func NewMultipartForm() *MultipartForm {
	f := &MultipartForm{}
	f.writer = multipart.NewWriter(&f.buf)
	return f
}

// AddField appends a simple text field.
func (f *MultipartForm) AddField(name, value string) error {
	return f.writer.WriteField(name, value)
}

// AddFile appends a file part read from r.
func (f *MultipartForm) AddFile(fieldName, fileName string, r io.Reader) error {
	part, err := f.writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("failed to write file part %q: %w", fileName, err)
	}
	return nil
}

// ContentType returns the multipart content type including the boundary.
func (f *MultipartForm) ContentType() string {
	return f.writer.FormDataContentType()
}

// Payload finalizes the form and returns the encoded payload. Further
// Add calls after Payload are invalid.
func (f *MultipartForm) Payload() (string, error) {
	if !f.closed {
		if err := f.writer.Close(); err != nil {
			return "", err
		}
		f.closed = true
	}
	return f.buf.String(), nil
}

// MultipartRequestConfig is the multipart counterpart of RequestConfig:
// the JSON body is replaced by an opaque form payload, everything else is
// the same.
type MultipartRequestConfig struct {
	Form    *MultipartForm
	Query   url.Values
	Auth    *Authorization
	Headers map[string]string
	Timeout time.Duration
}

// NewMultipartRequestConfig returns an empty configuration.
func NewMultipartRequestConfig() *MultipartRequestConfig {
	return &MultipartRequestConfig{}
}

// WithForm sets the multipart payload.
func (c *MultipartRequestConfig) WithForm(form *MultipartForm) *MultipartRequestConfig {
	c.Form = form
	return c
}

// WithQuery sets the query parameters.
func (c *MultipartRequestConfig) WithQuery(query url.Values) *MultipartRequestConfig {
	c.Query = query
	return c
}

// WithAuth sets the basic-auth credentials.
func (c *MultipartRequestConfig) WithAuth(auth *Authorization) *MultipartRequestConfig {
	c.Auth = auth
	return c
}

// WithHeaders replaces the header map.
func (c *MultipartRequestConfig) WithHeaders(headers map[string]string) *MultipartRequestConfig {
	c.Headers = headers
	return c
}

// WithTimeout sets the per-request timeout.
func (c *MultipartRequestConfig) WithTimeout(timeout time.Duration) *MultipartRequestConfig {
	c.Timeout = timeout
	return c
}
