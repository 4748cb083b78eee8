package http

import (
	"errors"
	"fmt"
)

// TypedError is implemented by every error this package produces. The type
// drives the retry engine's classification decision.
type TypedError interface {
	error
	Type() ErrorType
}

// ErrorType defines the failure category of a request.
type ErrorType string

const (
	// TransportError covers connection, DNS, and timeout failures below
	// the HTTP layer. Always retryable.
	TransportError ErrorType = "transport"
	// ClientError covers 4xx statuses other than 429. Never retryable.
	ClientError ErrorType = "client"
	// RateLimitedError is a 429: the server explicitly asked for backoff.
	RateLimitedError ErrorType = "rate_limited"
	// ServerError covers 5xx statuses, assumed transient.
	ServerError ErrorType = "server"
	// DecodeError means the captured bytes do not match the requested
	// shape. Never retried: the bytes are already captured.
	DecodeError ErrorType = "decode"
)

// transportError represents failures below the HTTP layer
type transportError struct {
	message string
	wrapped error
}

func (e *transportError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("transport error: %s: %v", e.message, e.wrapped)
	}
	return fmt.Sprintf("transport error: %s", e.message)
}

func (e *transportError) Type() ErrorType {
	return TransportError
}

func (e *transportError) Unwrap() error {
	return e.wrapped
}

// statusError represents a completed call whose status signals failure
type statusError struct {
	statusCode int
	message    string
	body       []byte
}

func (e *statusError) Error() string {
	if e.message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.statusCode, e.message)
	}
	return fmt.Sprintf("HTTP %d", e.statusCode)
}

func (e *statusError) Type() ErrorType {
	switch {
	case e.statusCode == 429:
		return RateLimitedError
	case e.statusCode >= 500 && e.statusCode < 600:
		return ServerError
	default:
		return ClientError
	}
}

func (e *statusError) StatusCode() int {
	return e.statusCode
}

func (e *statusError) Body() []byte {
	return e.body
}

// decodeError represents a body that could not be decoded into the
// requested shape
type decodeError struct {
	message string
	wrapped error
}

func (e *decodeError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("decode error: %s: %v", e.message, e.wrapped)
	}
	return fmt.Sprintf("decode error: %s", e.message)
}

func (e *decodeError) Type() ErrorType {
	return DecodeError
}

func (e *decodeError) Unwrap() error {
	return e.wrapped
}

// NewTransportError creates a transport-level error
func NewTransportError(message string, wrapped error) TypedError {
	return &transportError{
		message: message,
		wrapped: wrapped,
	}
}

// NewStatusError creates an error for a non-success status code. The
// category (client, rate-limited, server) is derived from the code.
func NewStatusError(statusCode int, message string, body []byte) TypedError {
	return &statusError{
		statusCode: statusCode,
		message:    message,
		body:       body,
	}
}

// NewDecodeError creates an error for a body that does not match the
// requested shape
func NewDecodeError(message string, wrapped error) TypedError {
	return &decodeError{
		message: message,
		wrapped: wrapped,
	}
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errorType ErrorType) bool {
	if err == nil {
		return false
	}
	var typedErr TypedError
	if errors.As(err, &typedErr) {
		return typedErr.Type() == errorType
	}
	return false
}

// IsRetryable reports whether another attempt could change the outcome:
// transport failures, 5xx, and 429. Client and decode errors are terminal,
// as is any error this package did not produce.
func IsRetryable(err error) bool {
	var typedErr TypedError
	if !errors.As(err, &typedErr) {
		return false
	}
	switch typedErr.Type() {
	case TransportError, ServerError, RateLimitedError:
		return true
	default:
		return false
	}
}

// StatusCode extracts the HTTP status from a status error, if the error
// carries one.
func StatusCode(err error) (int, bool) {
	var statusErr *statusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode(), true
	}
	return 0, false
}

// IsSuccessStatus checks if a status code represents success (2xx)
func IsSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
