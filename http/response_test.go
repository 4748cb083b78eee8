package http

import (
	"fmt"
	nethttp "net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseStatusClassification(t *testing.T) {
	tests := []struct {
		status  int
		success bool
	}{
		{199, false},
		{200, true},
		{204, true},
		{299, true},
		{300, false},
		{404, false},
		{500, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			resp := NewResponse(tt.status, nil, nil)
			assert.Equal(t, tt.success, resp.IsSuccess())
			assert.Equal(t, !tt.success, resp.IsError())
		})
	}
}

func TestResponseStatusText(t *testing.T) {
	assert.Equal(t, "Not Found", NewResponse(404, nil, nil).StatusText)
	assert.Equal(t, "OK", NewResponse(200, nil, nil).StatusText)
	assert.Equal(t, "Unknown", NewResponse(799, nil, nil).StatusText)
}

func TestResponseDecodingIsIdempotent(t *testing.T) {
	body := []byte(`{"message": "success", "code": 200}`)
	resp := NewResponse(200, nethttp.Header{"Content-Type": []string{"application/json"}}, body)

	type payload struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	}

	first, err := AsJSON[payload](resp)
	require.NoError(t, err)
	second, err := AsJSON[payload](resp)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "success", first.Message)

	text1, err := resp.AsText()
	require.NoError(t, err)
	text2, err := resp.AsText()
	require.NoError(t, err)
	assert.Equal(t, text1, text2)

	assert.Equal(t, body, resp.AsBytes())
	assert.Equal(t, body, resp.AsBytes())
}

func TestResponseMixedDecodingOnSameInstance(t *testing.T) {
	resp := NewResponse(200, nil, []byte(`{"ok": true}`))

	_, err := resp.EnsureSuccess()
	require.NoError(t, err)

	data, err := AsJSON[map[string]any](resp)
	require.NoError(t, err)
	assert.Equal(t, true, data["ok"])

	text, err := resp.AsText()
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, text)
}

func TestResponseAsJSONDecodeError(t *testing.T) {
	resp := NewResponse(502, nil, []byte("<html>gateway error</html>"))

	_, err := AsJSON[map[string]any](resp)
	require.Error(t, err)
	assert.True(t, IsErrorType(err, DecodeError))
	assert.Contains(t, err.Error(), "HTTP 502")
	assert.Contains(t, err.Error(), "26 bytes")
	assert.False(t, IsRetryable(err), "decode errors are never retried")
}

func TestResponseEnsureSuccess(t *testing.T) {
	t.Run("passes the response through on success", func(t *testing.T) {
		resp := NewResponse(200, nil, []byte(`{"message": "success"}`))
		same, err := resp.EnsureSuccess()
		require.NoError(t, err)
		assert.Same(t, resp, same)
	})

	t.Run("fails with status and body text", func(t *testing.T) {
		resp := NewResponse(404, nil, []byte(`{"error": "Not Found"}`))
		_, err := resp.EnsureSuccess()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
		assert.Contains(t, err.Error(), "Not Found")
		assert.True(t, IsErrorType(err, ClientError))
	})

	t.Run("classifies 5xx as server error", func(t *testing.T) {
		resp := NewResponse(503, nil, nil)
		_, err := resp.EnsureSuccess()
		require.Error(t, err)
		assert.True(t, IsErrorType(err, ServerError))
		assert.True(t, IsRetryable(err))
	})
}

func TestResponseEnsureSuccessWith(t *testing.T) {
	resp := NewResponse(500, nil, []byte(`{"error": "Internal Server Error"}`))

	_, err := resp.EnsureSuccessWith(func(r *Response) error {
		return fmt.Errorf("upstream rejected call: status %d", r.Status)
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream rejected call")
	assert.Contains(t, err.Error(), "500")

	t.Run("handler not invoked on success", func(t *testing.T) {
		ok := NewResponse(201, nil, nil)
		same, err := ok.EnsureSuccessWith(func(*Response) error {
			t.Fatal("handler must not run for success responses")
			return nil
		})
		require.NoError(t, err)
		assert.Same(t, ok, same)
	})
}

func TestResponseExtractErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body []byte
		want string
	}{
		{"nested error.message", []byte(`{"error": {"message": "Bad Request"}, "code": 400}`), "Bad Request"},
		{"error as string", []byte(`{"error": "Not Found"}`), "Not Found"},
		{"top-level message", []byte(`{"message": "quota exceeded"}`), "quota exceeded"},
		{"plain text body", []byte("Internal Server Error"), "Internal Server Error"},
		{"non-object JSON", []byte(`["a", "b"]`), `["a", "b"]`},
		{"empty JSON object", []byte(`{}`), "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewResponse(400, nil, tt.body)
			assert.Equal(t, tt.want, resp.ExtractErrorMessage())
		})
	}

	t.Run("empty body falls back to status text", func(t *testing.T) {
		resp := NewResponse(404, nil, nil)
		assert.Equal(t, "Not Found", resp.ExtractErrorMessage())
	})

	t.Run("undecodable bytes still yield a string", func(t *testing.T) {
		resp := NewResponse(500, nil, []byte{0xFF, 0xFE, 0xFD})
		msg := resp.ExtractErrorMessage()
		assert.NotEmpty(t, msg)
	})
}

func TestResponseNotFoundScenario(t *testing.T) {
	resp := NewResponse(404, nethttp.Header{"Content-Type": []string{"application/json"}},
		[]byte(`{"error":"Not Found"}`))

	assert.False(t, resp.IsSuccess())
	assert.True(t, resp.IsError())
	assert.Contains(t, resp.ExtractErrorMessage(), "Not Found")
}
