package transport

import (
	"fmt"
	"time"
)

// Defaults used when a failure carries no usable detail.
const (
	defaultMessage   = "Unknown error"
	defaultErrorCode = "UNKNOWN_ERROR"
	defaultPath      = "unknown"
)

// APIError is the one normalized error shape every HTTP failure is rewritten
// into, regardless of whether the transport, the backend, or the payload
// was at fault. Missing fields are filled with deterministic defaults.
type APIError struct {
	Message    string    `json:"message"`
	StatusCode int       `json:"statusCode"`
	ErrorCode  string    `json:"errorCode"`
	Timestamp  time.Time `json:"timestamp"`
	Path       string    `json:"path"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d, code %s, path %s)", e.Message, e.StatusCode, e.ErrorCode, e.Path)
}

func newAPIError(message string, statusCode int, errorCode, path string, now time.Time) *APIError {
	if message == "" {
		message = defaultMessage
	}
	if errorCode == "" {
		errorCode = defaultErrorCode
	}
	if path == "" {
		path = defaultPath
	}
	return &APIError{
		Message:    message,
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Timestamp:  now,
		Path:       path,
	}
}
