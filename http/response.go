package http

import (
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
)

// Response wraps a completed call: status, status text, headers, and the
// body bytes captured exactly once at construction. All decode methods
// re-derive their result from that same buffer, so they are idempotent
// and side-effect-free; a caller may invoke EnsureSuccess, then AsJSON,
// then AsText on the same instance without refetching.
type Response struct {
	Status     int
	StatusText string
	Headers    nethttp.Header

	body []byte
}

// NewResponse builds a Response from already-captured parts. The status
// text is derived from the code.
func NewResponse(status int, headers nethttp.Header, body []byte) *Response {
	statusText := nethttp.StatusText(status)
	if statusText == "" {
		statusText = "Unknown"
	}
	if headers == nil {
		headers = nethttp.Header{}
	}
	return &Response{
		Status:     status,
		StatusText: statusText,
		Headers:    headers,
		body:       body,
	}
}

// newResponseFrom captures the metadata and body of a raw transport
// response. The body reader is drained and closed here; this is the one
// point where bytes are read off the wire.
func newResponseFrom(resp *nethttp.Response) (*Response, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewTransportError("failed to read response body", err)
	}
	return NewResponse(resp.StatusCode, resp.Header, body), nil
}

// IsSuccess reports whether the status is in [200, 300).
func (r *Response) IsSuccess() bool {
	return IsSuccessStatus(r.Status)
}

// IsError reports whether the status is outside the success range.
func (r *Response) IsError() bool {
	return !r.IsSuccess()
}

// AsText decodes the body as UTF-8 text.
func (r *Response) AsText() (string, error) {
	return TextParser{}.Parse(r.body, r.Status)
}

// AsBytes returns the raw captured body. It never fails.
func (r *Response) AsBytes() []byte {
	return r.body
}

// AsJSON decodes the response body as JSON into T.
func AsJSON[T any](r *Response) (T, error) {
	return JSONParser[T]{}.Parse(r.body, r.Status)
}

// ParseWith decodes the response body with an explicit parser. Use this
// for formats beyond the built-in JSON and text parsers.
func ParseWith[T any](r *Response, parser Parser[T]) (T, error) {
	return parser.Parse(r.body, r.Status)
}

// EnsureSuccess returns the response unchanged when the status is in the
// success range, and a status error carrying the best-effort body text
// otherwise.
func (r *Response) EnsureSuccess() (*Response, error) {
	if r.IsSuccess() {
		return r, nil
	}
	return nil, NewStatusError(r.Status, r.ExtractErrorMessage(), r.body)
}

// EnsureSuccessWith behaves like EnsureSuccess but lets the caller build
// the error from the entire response, enabling per-service error shapes.
func (r *Response) EnsureSuccessWith(handler func(*Response) error) (*Response, error) {
	if r.IsSuccess() {
		return r, nil
	}
	return nil, handler(r)
}

// ExtractErrorMessage pulls a human-readable message out of an error
// body. It prefers, in order, the JSON fields error.message, error (as a
// string), and message, then falls back to the text representation of the
// body. It always returns a string, whatever the body holds.
func (r *Response) ExtractErrorMessage() string {
	var payload map[string]any
	if err := json.Unmarshal(r.body, &payload); err == nil {
		if msg, ok := nestedErrorMessage(payload); ok {
			return msg
		}
	}

	if text, err := r.AsText(); err == nil && text != "" {
		return text
	}
	if len(r.body) > 0 {
		return fmt.Sprintf("%d bytes of undecodable body", len(r.body))
	}
	return r.StatusText
}

func nestedErrorMessage(payload map[string]any) (string, bool) {
	if errVal, ok := payload["error"]; ok {
		if errObj, ok := errVal.(map[string]any); ok {
			if msg, ok := errObj["message"].(string); ok && msg != "" {
				return msg, true
			}
		}
		if msg, ok := errVal.(string); ok && msg != "" {
			return msg, true
		}
	}
	if msg, ok := payload["message"].(string); ok && msg != "" {
		return msg, true
	}
	return "", false
}
