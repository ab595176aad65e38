package errs

import (
	"errors"
	"fmt"
	"strings"
)

type HttpError struct {
	Code    int
	Message string
	Data    any
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("code %d: %s, data: %v", e.Code, e.Message, e.Data)
}

// connectionMarkers are matched case-insensitively against transport error text.
var connectionMarkers = []string{
	"connection refused",
	"connection reset",
	"econnrefused",
	"econnreset",
	"fetch failed",
	"no such host",
	"timeout",
	"deadline exceeded",
	"eof",
}

// BackendError is a transport-level failure talking to the external backend.
// Responses with a non-2xx status are not BackendErrors.
type BackendError struct {
	Method string
	URL    string
	Err    error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func (e *BackendError) IsConnection() bool {
	if e.Err == nil {
		return false
	}

	msg := strings.ToLower(e.Err.Error())
	for _, marker := range connectionMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}

// IsConnectionError reports whether err wraps a BackendError caused by connectivity.
func IsConnectionError(err error) bool {
	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		return backendErr.IsConnection()
	}

	return false
}
