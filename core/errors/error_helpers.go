package errors

import (
	"net/http"

	"github.com/RodolfoBonis/spooliq/core/entities"
)

// BadRequestError creates a 400 Bad Request error
func BadRequestError(message string) *AppError {
	return &AppError{
		Type:    entities.ErrEntity,
		Message: message,
		Fields:  nil,
		Cause:   nil,
	}
}

// UnauthorizedError creates a 401 Unauthorized error
func UnauthorizedError(message string) *AppError {
	return &AppError{
		Type:    entities.ErrUnauthorized,
		Message: message,
		Fields:  nil,
		Cause:   nil,
	}
}

// ForbiddenError creates an ErrUnauthorized error, which maps to 401; no
// error type maps to 403.
func ForbiddenError(message string) *AppError {
	return &AppError{
		Type:    entities.ErrUnauthorized,
		Message: message,
		Fields:  nil,
		Cause:   nil,
	}
}

// NotFound creates a 404 Not Found error
func NotFound(message string) *AppError {
	return &AppError{
		Type:    entities.ErrNotFound,
		Message: message,
		Fields:  nil,
		Cause:   nil,
	}
}

// ConflictError creates a 409 Conflict error
func ConflictError(message string) *AppError {
	return &AppError{
		Type:    entities.ErrConflict,
		Message: message,
		Fields:  nil,
		Cause:   nil,
	}
}

// InternalServerError creates a 500 Internal Server Error
func InternalServerError(message string) *AppError {
	return &AppError{
		Type:    entities.ErrService,
		Message: message,
		Fields:  nil,
		Cause:   nil,
	}
}

// ExternalServiceError creates a 502 Bad Gateway error (for external service failures)
func ExternalServiceError(message string) *AppError {
	return &AppError{
		Type:    entities.ErrUpstreamUnavailable,
		Message: message,
		Fields:  nil,
		Cause:   nil,
	}
}

// PaymentRequiredError creates a 402 Payment Required error
func PaymentRequiredError(message string) *AppError {
	return &AppError{
		Type:    entities.ErrInsufficientBalance,
		Message: message,
		Fields:  nil,
		Cause:   nil,
	}
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == entities.ErrNotFound || appErr.HTTPStatus() == http.StatusNotFound
	}
	return false
}

// ValidationError creates a caller-facing, non-retryable validation error (spec §7).
func ValidationError(message string, ctx ...map[string]interface{}) *AppError {
	return NewAppError(entities.ErrValidation, message, firstOrNil(ctx), nil)
}

// InsufficientBalanceError creates the ledger's debit-rejection error.
func InsufficientBalanceError(message string, ctx ...map[string]interface{}) *AppError {
	return NewAppError(entities.ErrInsufficientBalance, message, firstOrNil(ctx), nil)
}

// UpstreamUnavailableError wraps a tracker/video-probe failure that should be retried then DLQ'd.
func UpstreamUnavailableError(message string, cause error, ctx ...map[string]interface{}) *AppError {
	return NewAppError(entities.ErrUpstreamUnavailable, message, firstOrNil(ctx), cause)
}

// PoisonMessageError marks a malformed bus message for immediate DLQ routing.
func PoisonMessageError(message string, ctx ...map[string]interface{}) *AppError {
	return NewAppError(entities.ErrPoison, message, firstOrNil(ctx), nil)
}

// ConfigurationErr marks a violated fixed-campaign pool invariant (spec §4.6 step 1-2).
func ConfigurationErr(message string, ctx ...map[string]interface{}) *AppError {
	return NewAppError(entities.ErrConfigurationError, message, firstOrNil(ctx), nil)
}

// FatalError wraps an unexpected error destined for the DLQ with an alert.
func FatalError(message string, cause error, ctx ...map[string]interface{}) *AppError {
	return NewAppError(entities.ErrFatal, message, firstOrNil(ctx), cause)
}

func firstOrNil(ctx []map[string]interface{}) map[string]interface{} {
	if len(ctx) > 0 {
		return ctx[0]
	}
	return nil
}

// IsRetryable reports whether err should be retried by a bus consumer before DLQ.
func IsRetryable(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type.Retryable()
	}
	return false
}

