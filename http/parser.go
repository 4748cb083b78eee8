package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

const previewLimit = 200

// Parser decodes a captured response body into a concrete value. Parsers
// are pure: they never mutate the response, so decoding is idempotent and
// a caller may apply several parsers to the same bytes.
type Parser[T any] interface {
	Parse(body []byte, status int) (T, error)
}

// JSONParser decodes the body as JSON into T. An empty or whitespace-only
// body decodes as the zero value of T, the same result as a JSON null.
type JSONParser[T any] struct{}

// Parse implements Parser
func (JSONParser[T]) Parse(body []byte, status int) (T, error) {
	var value T

	if len(bytes.TrimSpace(body)) == 0 {
		return value, nil
	}

	if err := json.Unmarshal(body, &value); err != nil {
		return value, NewDecodeError(
			fmt.Sprintf("failed to parse JSON response (%d bytes, HTTP %d), body preview: %s",
				len(body), status, preview(body)),
			err,
		)
	}
	return value, nil
}

// TextParser decodes the body as UTF-8 text. It fails only on invalid
// UTF-8; the status code does not affect the result.
type TextParser struct{}

// Parse implements Parser
func (TextParser) Parse(body []byte, status int) (string, error) {
	if !utf8.Valid(body) {
		return "", NewDecodeError(
			fmt.Sprintf("response body is not valid UTF-8 (%d bytes, HTTP %d)", len(body), status),
			nil,
		)
	}
	return string(body), nil
}

// preview truncates a body to a printable snippet for error messages
func preview(body []byte) string {
	text := string(bytes.ToValidUTF8(body, []byte("�")))
	if len(text) > previewLimit {
		return text[:previewLimit] + "..."
	}
	return text
}
