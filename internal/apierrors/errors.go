package apierrors

import (
	"fmt"
	"net/http"
)

// Machine-readable error codes returned to API clients.
const (
	CodeNotFound               = "NOT_FOUND"
	CodeBoostNotFound          = "BOOST_NOT_FOUND"
	CodeSuggestionNotFound     = "SUGGESTION_NOT_FOUND"
	CodeCheckoutSessionUnknown = "CHECKOUT_SESSION_UNKNOWN"
	CodeBoostNotPending        = "BOOST_NOT_PENDING"
	CodeSuggestionResolved     = "SUGGESTION_RESOLVED"
	CodeInvalidBudget          = "INVALID_BUDGET"
	CodeInvalidDuration        = "INVALID_DURATION"
	CodeInvalidAssetType       = "INVALID_ASSET_TYPE"
	CodeInvalidRedirect        = "INVALID_REDIRECT_URL"
	CodeMalformedEvent         = "MALFORMED_EVENT"
	CodeInvalidInput           = "INVALID_INPUT"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeForbidden              = "FORBIDDEN"
	CodePaymentProviderError   = "PAYMENT_PROVIDER_ERROR"
	CodeEmailServiceError      = "EMAIL_SERVICE_ERROR"
	CodeInternalError          = "INTERNAL_ERROR"
)

// APIError carries the HTTP status, machine-readable code, and sanitized
// message for one error response. Internal holds the underlying error for
// logging and is never serialized.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"error"`
	Internal   error  `json:"-"`
}

func (e *APIError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Internal
}

// NotFound creates a 404 error
func NotFound(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusNotFound, Code: code, Message: message}
}

// BadRequest creates a 400 error
func BadRequest(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Code: code, Message: message}
}

// Unauthorized creates a 401 error
func Unauthorized(message string) *APIError {
	return &APIError{StatusCode: http.StatusUnauthorized, Code: CodeUnauthorized, Message: message}
}

// Forbidden creates a 403 error
func Forbidden(message string) *APIError {
	return &APIError{StatusCode: http.StatusForbidden, Code: CodeForbidden, Message: message}
}

// Conflict creates a 409 error
func Conflict(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusConflict, Code: code, Message: message}
}

// ServiceUnavailable creates a 503 error that keeps the internal cause for logging
func ServiceUnavailable(code, message string, internal error) *APIError {
	return &APIError{StatusCode: http.StatusServiceUnavailable, Code: code, Message: message, Internal: internal}
}

// InternalError creates a sanitized 500 error - the internal cause is logged, never exposed
func InternalError(internal error) *APIError {
	return &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternalError,
		Message:    "An internal error occurred. Please try again later.",
		Internal:   internal,
	}
}
