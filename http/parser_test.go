package http

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type parserTestStruct struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestJSONParser(t *testing.T) {
	t.Run("decodes a struct", func(t *testing.T) {
		result, err := JSONParser[parserTestStruct]{}.Parse([]byte(`{"id": 1, "name": "test"}`), 200)
		require.NoError(t, err)
		assert.Equal(t, 1, result.ID)
		assert.Equal(t, "test", result.Name)
	})

	t.Run("decodes arbitrary JSON", func(t *testing.T) {
		result, err := JSONParser[map[string]any]{}.Parse([]byte(`{"key": "value", "number": 42}`), 200)
		require.NoError(t, err)
		assert.Equal(t, "value", result["key"])
		assert.Equal(t, float64(42), result["number"])
	})

	t.Run("empty body decodes as zero value", func(t *testing.T) {
		result, err := JSONParser[map[string]any]{}.Parse([]byte{}, 200)
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("whitespace-only body decodes as zero value", func(t *testing.T) {
		result, err := JSONParser[map[string]any]{}.Parse([]byte("   \n\t  "), 200)
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("empty body decodes a struct as its zero value", func(t *testing.T) {
		result, err := JSONParser[parserTestStruct]{}.Parse(nil, 204)
		require.NoError(t, err)
		assert.Zero(t, result)
	})

	t.Run("invalid JSON fails with a decode error", func(t *testing.T) {
		_, err := JSONParser[map[string]any]{}.Parse([]byte("not valid json"), 200)
		require.Error(t, err)
		assert.True(t, IsErrorType(err, DecodeError))
		assert.Contains(t, err.Error(), "failed to parse JSON")
	})

	t.Run("decodes error payloads regardless of status", func(t *testing.T) {
		result, err := JSONParser[map[string]any]{}.Parse([]byte(`{"error": "Not Found"}`), 404)
		require.NoError(t, err)
		assert.Equal(t, "Not Found", result["error"])
	})

	t.Run("failure message carries status and a capped preview", func(t *testing.T) {
		broken := `{"invalid": "` + strings.Repeat("x", 250) + `"}` + "invalid"
		_, err := JSONParser[map[string]any]{}.Parse([]byte(broken), 502)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 502")
		assert.Contains(t, err.Error(), "...")
	})
}

func TestTextParser(t *testing.T) {
	t.Run("decodes plain text", func(t *testing.T) {
		result, err := TextParser{}.Parse([]byte("Hello, World!"), 200)
		require.NoError(t, err)
		assert.Equal(t, "Hello, World!", result)
	})

	t.Run("decodes multi-byte UTF-8", func(t *testing.T) {
		result, err := TextParser{}.Parse([]byte("こんにちは世界"), 200)
		require.NoError(t, err)
		assert.Equal(t, "こんにちは世界", result)
	})

	t.Run("empty body decodes as empty string", func(t *testing.T) {
		result, err := TextParser{}.Parse([]byte{}, 200)
		require.NoError(t, err)
		assert.Equal(t, "", result)
	})

	t.Run("status does not affect text decoding", func(t *testing.T) {
		result, err := TextParser{}.Parse([]byte("Error message"), 500)
		require.NoError(t, err)
		assert.Equal(t, "Error message", result)
	})

	t.Run("invalid UTF-8 fails with a decode error", func(t *testing.T) {
		_, err := TextParser{}.Parse([]byte{0xFF, 0xFE, 0xFD}, 200)
		require.Error(t, err)
		assert.True(t, IsErrorType(err, DecodeError))
		assert.Contains(t, err.Error(), "UTF-8")
	})
}

func TestParseWith(t *testing.T) {
	resp := NewResponse(200, nil, []byte(`{"id": 9, "name": "explicit"}`))

	result, err := ParseWith(resp, JSONParser[parserTestStruct]{})
	require.NoError(t, err)
	assert.Equal(t, 9, result.ID)

	text, err := ParseWith[string](resp, TextParser{})
	require.NoError(t, err)
	assert.Contains(t, text, "explicit")
}
