// Package http provides the request-configuration builder, lazy response
// wrapper, and retry engine shared by every outbound API client.
//
// Requests
//   - RequestConfig accumulates an optional body, query parameters,
//     basic-auth credentials, headers, and a per-request timeout; each
//     field defaults to the transport's own behavior when unset.
//   - MultipartRequestConfig carries a multipart form payload instead of
//     a JSON body.
//
// Responses
//   - Response captures status, status text, headers, and the body bytes
//     exactly once. Decoding is lazy and idempotent: AsJSON, AsText, and
//     AsBytes re-derive their result from the same buffer, selected
//     explicitly rather than sniffed from the content type.
//   - EnsureSuccess / EnsureSuccessWith separate transport-level success
//     from payload shape; ExtractErrorMessage always yields a string.
//   - Stream bypasses the wrapper, handing back the raw net/http
//     response with its body open for incremental consumers.
//
// Retries
//   - Retry runs a caller-supplied operation with capped exponential
//     backoff: delay(n) = min(InitialDelay * BackoffMultiplier^(n-1),
//     MaxDelay).
//   - Transport failures, 5xx, and 429 are retried; other 4xx, decode
//     failures, and unclassified errors return immediately.
//   - When the budget is exhausted an interactive Retrier consults a
//     decision callback before producing the aggregated terminal error.
//   - Request bodies are safe to re-send: the transport rebuilds the
//     http.Request on each attempt from the immutable RequestConfig.
package http
