package x402

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError represents a non-success response from the payment API. Message
// carries the server-provided error description when the response body
// contained one, else a generic status-code message.
type APIError struct {
	// StatusCode is the HTTP status the server responded with.
	StatusCode int
	// Message is the human-readable failure description.
	Message string
	// RequestID echoes the Request-Id header of the failed call, when the
	// server returned one, for support correlation.
	RequestID string
}

// Error makes *APIError satisfy the stdlib error interface.
func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// IsRetryable reports whether the failure class is worth retrying.
func (e *APIError) IsRetryable() bool {
	if e == nil {
		return false
	}
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// AsAPIError unwraps err into an *APIError when the failure originated from
// a non-success API response.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// errorResponse is the error payload shape the API emits.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// newAPIError reads a non-2xx response into a structured error, preferring
// the server's own description over the generic status line.
func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		RequestID:  strings.TrimSpace(resp.Header.Get("Request-Id")),
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(raw) == 0 {
		return apiErr
	}
	var payload errorResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return apiErr
	}
	switch {
	case payload.Error != "":
		apiErr.Message = payload.Error
	case payload.Message != "":
		apiErr.Message = payload.Message
	}
	return apiErr
}
