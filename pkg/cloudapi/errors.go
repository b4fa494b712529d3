package cloudapi

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	ErrCodeTimeout         = "TIMEOUT"          // context deadline or cancellation
	ErrCodeNetworkError    = "NETWORK_ERROR"    // connection failures
	ErrCodeClientError     = "CLIENT_ERROR"     // 4xx from the platform
	ErrCodeServerError     = "SERVER_ERROR"     // 5xx and anything else non-200
	ErrCodeInvalidResponse = "INVALID_RESPONSE" // 200 without a usable body
	ErrCodeInvalidRequest  = "INVALID_REQUEST"  // rejected before sending
)

var (
	ErrTimeout         = errors.New(ErrCodeTimeout)
	ErrNetwork         = errors.New(ErrCodeNetworkError)
	ErrClientError     = errors.New(ErrCodeClientError)
	ErrServerError     = errors.New(ErrCodeServerError)
	ErrInvalidResponse = errors.New(ErrCodeInvalidResponse)
	ErrInvalidRequest  = errors.New(ErrCodeInvalidRequest)
)

// APIError carries the error payload the Graph API returns with a non-200 status.
type APIError struct {
	StatusCode int
	Code       int
	Subcode    int
	Type       string
	Message    string
	FBTraceID  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("cloud api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("cloud api: status %d: %s (code %d)", e.StatusCode, e.Message, e.Code)
}

func (e *APIError) Unwrap() error {
	return MapStatusToError(e.StatusCode)
}

// Retryable reports whether sending the same request again may succeed.
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

func MapStatusToError(statusCode int) error {
	if statusCode >= 400 && statusCode < 500 {
		return ErrClientError
	}

	return ErrServerError
}

// ErrorCode returns the short code for err, for logging and metric labels.
func ErrorCode(err error) string {
	for _, sentinel := range []error{ErrTimeout, ErrNetwork, ErrInvalidRequest, ErrInvalidResponse, ErrClientError, ErrServerError} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}

	return "UNKNOWN"
}
