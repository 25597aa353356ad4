package apierrors

import (
	"errors"
	"strings"

	analyticsProcessor "boost-server/internal/analytics/processor"
	boostProcessor "boost-server/internal/money/boost/processor"
	"boost-server/internal/store"
	suggestionsProcessor "boost-server/internal/suggestions/processor"
)

// MapError converts domain/processor errors to APIErrors.
// This function centralizes all error mapping logic to ensure consistent
// error responses across the entire API.
//
// If the error is already an APIError, it returns it as-is.
// If the error is a known domain error, it maps it to an appropriate APIError.
// If the error is unknown, it returns a sanitized InternalError (500).
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	// Check if already an APIError
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	// Map boost processor errors
	case errors.Is(err, boostProcessor.ErrBoostNotFound):
		return NotFound(CodeBoostNotFound, "Boost not found")

	case errors.Is(err, boostProcessor.ErrUnknownCheckoutSession):
		return NotFound(CodeCheckoutSessionUnknown, "No boost matches this checkout session")

	case errors.Is(err, boostProcessor.ErrBoostNotPending):
		return Conflict(CodeBoostNotPending, "Boost is not awaiting payment")

	case errors.Is(err, boostProcessor.ErrInvalidBudget):
		return BadRequest(CodeInvalidBudget, "Daily budget must be a positive amount")

	case errors.Is(err, boostProcessor.ErrInvalidDuration):
		return BadRequest(CodeInvalidDuration, "Duration must be a positive number of days")

	case errors.Is(err, boostProcessor.ErrInvalidAssetType):
		return BadRequest(CodeInvalidAssetType, "Asset type must be one of: clip, meme, gif")

	case errors.Is(err, boostProcessor.ErrInvalidRedirect):
		return BadRequest(CodeInvalidRedirect, "Redirect URLs must point at the web app")

	case errors.Is(err, boostProcessor.ErrMalformedGatewayEvent):
		return BadRequest(CodeMalformedEvent, "Gateway event payload could not be parsed")

	case errors.Is(err, boostProcessor.ErrGatewayUnavailable):
		return ServiceUnavailable(
			CodePaymentProviderError,
			"Payment provider is temporarily unavailable. Please try again later.",
			err,
		)

	case errors.Is(err, boostProcessor.ErrUnauthorized):
		return Forbidden("You do not have access to this boost")

	// Map suggestions processor errors
	case errors.Is(err, suggestionsProcessor.ErrSuggestionNotFound):
		return NotFound(CodeSuggestionNotFound, "Suggestion not found")

	case errors.Is(err, suggestionsProcessor.ErrSuggestionResolved):
		return Conflict(CodeSuggestionResolved, "Suggestion has already been resolved")

	case errors.Is(err, suggestionsProcessor.ErrUnauthorized):
		return Forbidden("You do not have access to this suggestion")

	// Map analytics processor errors
	case errors.Is(err, analyticsProcessor.ErrBoostNotFound):
		return NotFound(CodeBoostNotFound, "Boost not found")

	case errors.Is(err, analyticsProcessor.ErrUnauthorized):
		return Forbidden("You do not have access to this boost")

	// Map store errors
	case errors.Is(err, store.ErrNotFound):
		return NotFound(CodeNotFound, "Resource not found")

	// Check for common external service errors by message content
	default:
		return mapExternalServiceError(err)
	}
}

// mapExternalServiceError attempts to identify external service errors
// and map them to appropriate service-specific error responses.
func mapExternalServiceError(err error) *APIError {
	errMsg := strings.ToLower(err.Error())

	// Stripe/payment errors
	if strings.Contains(errMsg, "stripe") || strings.Contains(errMsg, "checkout session") {
		return ServiceUnavailable(
			CodePaymentProviderError,
			"Payment provider is temporarily unavailable. Please try again later.",
			err,
		)
	}

	// Email service errors (Resend)
	if strings.Contains(errMsg, "resend") || strings.Contains(errMsg, "email service") {
		return ServiceUnavailable(
			CodeEmailServiceError,
			"Email service is temporarily unavailable. Please try again later.",
			err,
		)
	}

	// Default: Unknown error - return sanitized 500
	return InternalError(err)
}
