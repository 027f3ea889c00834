package models

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Validation errors
	ErrorCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrorCodeMissingField  ErrorCode = "MISSING_FIELD"
	ErrorCodeMalformedJSON ErrorCode = "MALFORMED_JSON"

	// Rate limiting errors
	ErrorCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"

	// Provider errors. These never surface through the public operations;
	// they exist so adapters can report typed failures to the orchestrator.
	ErrorCodeProviderHTTP    ErrorCode = "PROVIDER_HTTP_ERROR"
	ErrorCodeProviderPayload ErrorCode = "PROVIDER_PAYLOAD_ERROR"

	// Internal errors
	ErrorCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// HTTPStatusCode returns the appropriate HTTP status code for each error type
func (e ErrorCode) HTTPStatusCode() int {
	switch e {
	case ErrorCodeInvalidInput, ErrorCodeMissingField, ErrorCodeMalformedJSON:
		return http.StatusBadRequest
	case ErrorCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case ErrorCodeProviderHTTP, ErrorCodeProviderPayload:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// ErrorResponse represents the standardized error response format
type ErrorResponse struct {
	Error         ErrorDetail `json:"error"`
	Timestamp     time.Time   `json:"timestamp"`
	CorrelationID string      `json:"correlation_id,omitempty"`
}

// AppError represents an application error with context
type AppError struct {
	Code    ErrorCode
	Message string
	Details string
	Cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NewAppErrorWithDetails creates a new application error with details
func NewAppErrorWithDetails(code ErrorCode, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// NewAppErrorWithCause creates a new application error with underlying cause
func NewAppErrorWithCause(code ErrorCode, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

// NewInputError creates a caller-input error. This is the only error kind
// the public operations ever return.
func NewInputError(message string) *AppError {
	return NewAppError(ErrorCodeInvalidInput, message)
}

// ProviderHTTPError reports a non-2xx response or transport failure from a
// named provider.
type ProviderHTTPError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderHTTPError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s API error: %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s network error: %s", e.Provider, e.Message)
}

// ProviderPayloadError reports a response body that did not match the
// provider's documented schema.
type ProviderPayloadError struct {
	Provider string
	Cause    error
}

func (e *ProviderPayloadError) Error() string {
	return fmt.Sprintf("%s payload error: %v", e.Provider, e.Cause)
}

func (e *ProviderPayloadError) Unwrap() error {
	return e.Cause
}

// HumanizeError maps any error to a user-facing message. Raw provider
// responses and stack traces never reach the UI; this is the single place
// where status codes become words.
func HumanizeError(err error) string {
	var httpErr *ProviderHTTPError
	if errors.As(err, &httpErr) {
		if httpErr.StatusCode == 0 {
			return "Network error. Please check your connection."
		}
		switch httpErr.StatusCode {
		case 401:
			return "Authentication failed. Please check your API keys."
		case 403:
			return "Access forbidden. You may have exceeded rate limits."
		case 404:
			return "Resource not found."
		case 429:
			return "Rate limit exceeded. Please try again later."
		case 500:
			return "Server error. Please try again later."
		default:
			if httpErr.Message != "" {
				return httpErr.Message
			}
			return "An unexpected error occurred."
		}
	}

	var payloadErr *ProviderPayloadError
	if errors.As(err, &payloadErr) {
		return "Server error. Please try again later."
	}

	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return "An unexpected error occurred."
}

// HandleError converts an error to the standardized HTTP error response.
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewAppErrorWithCause(ErrorCodeInternalError, "Internal server error", err)
	}

	correlationID := c.GetString("correlation_id")

	c.JSON(appErr.Code.HTTPStatusCode(), &ErrorResponse{
		Error: ErrorDetail{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		},
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
	})
}
