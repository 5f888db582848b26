package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Messages surfaced to readers.
const (
	GenericMessage         = "An error occurred"
	NotFoundMessage        = "Post not found"
	InvalidResponseMessage = "Invalid response from server"
)

// ErrNotFound matches any *ClientError with status 404 under errors.Is.
var ErrNotFound = &ClientError{Status: http.StatusNotFound, Message: NotFoundMessage}

// ClientError is returned for every failed content API call.
// Status is the HTTP status code, or 0 when no response was received.
type ClientError struct {
	Status  int
	Message string
	Err     error
}

func (e *ClientError) Error() string {
	if e.Status == 0 {
		if e.Err != nil {
			return fmt.Sprintf("api: %s: %v", e.Message, e.Err)
		}
		return "api: " + e.Message
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *ClientError with the same status.
func (e *ClientError) Is(target error) bool {
	var t *ClientError
	if errors.As(target, &t) {
		return e.Status == t.Status
	}
	return false
}

// NotFound reports whether the resource is absent.
func (e *ClientError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// Retryable reports whether re-issuing the same request may succeed.
// Everything except a definite "not found" or a cancelled caller is.
func (e *ClientError) Retryable() bool {
	if e.NotFound() {
		return false
	}
	return !errors.Is(e.Err, context.Canceled)
}

// NewNotFound returns the error used when an article cannot be resolved.
func NewNotFound() *ClientError {
	return &ClientError{Status: http.StatusNotFound, Message: NotFoundMessage}
}

// AsClientError extracts a *ClientError from err.
func AsClientError(err error) (*ClientError, bool) {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsNotFound reports whether err is a not-found ClientError.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// transportError wraps a failure that produced no HTTP response.
func transportError(err error) *ClientError {
	return &ClientError{Message: GenericMessage, Err: err}
}

// statusError builds the error for a non-2xx response. The body is expected
// to look like {"message": "..."}; anything unparsable yields GenericMessage.
func statusError(status int, body []byte) *ClientError {
	var payload struct {
		Message string `json:"message"`
	}
	if len(body) == 0 || json.Unmarshal(body, &payload) != nil {
		return &ClientError{Status: status, Message: GenericMessage}
	}
	msg := strings.TrimSpace(payload.Message)
	if msg == "" {
		msg = fmt.Sprintf("HTTP error! status: %d", status)
	}
	return &ClientError{Status: status, Message: msg}
}

// decodeError wraps a 2xx body that could not be decoded.
func decodeError(err error) *ClientError {
	return &ClientError{
		Status:  http.StatusBadGateway,
		Message: InvalidResponseMessage,
		Err:     fmt.Errorf("parse response: %w", err),
	}
}
