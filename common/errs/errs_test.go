package errs

import (
	"context"
	"errors"
	"fmt"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestBackendErrorIsConnection(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "connection refused",
			err:      errors.New("dial tcp 127.0.0.1:8000: connect: connection refused"),
			expected: true,
		},
		{
			name:     "connection reset",
			err:      errors.New("read tcp: connection reset by peer"),
			expected: true,
		},
		{
			name:     "deadline",
			err:      context.DeadlineExceeded,
			expected: true,
		},
		{
			name:     "client timeout",
			err:      errors.New("net/http: request canceled (Client.Timeout exceeded while awaiting headers)"),
			expected: true,
		},
		{
			name:     "unknown host",
			err:      errors.New("dial tcp: lookup backend.invalid: no such host"),
			expected: true,
		},
		{
			name:     "generic failure",
			err:      errors.New("invalid character '<' looking for beginning of value"),
			expected: false,
		},
		{
			name:     "nil cause",
			err:      nil,
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := &BackendError{Method: "GET", URL: "http://backend/api/surveys", Err: tc.err}
			assert.Equal(t, tc.expected, err.IsConnection())
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	wrapped := fmt.Errorf("list surveys: %w", &BackendError{Method: "GET", URL: "/api/surveys", Err: errors.New("ECONNREFUSED")})

	assert.True(t, IsConnectionError(wrapped))
	assert.False(t, IsConnectionError(errors.New("connection refused")))
	assert.ErrorContains(t, wrapped, "backend GET /api/surveys")
}
