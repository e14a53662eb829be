package api

import (
	"errors"
	"net/http"

	"github.com/yolo-life/yolo-api/internal/api/shared"
	"github.com/yolo-life/yolo-api/internal/domain"
	"github.com/yolo-life/yolo-api/internal/service/auth"
	"github.com/yolo-life/yolo-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrAccountDisabled),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, store.ErrUpdateForbidden):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrUserReferenced):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, store.ErrUnknownColumn),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// MapErrorToCode maps internal errors to the business result code
// carried in the response envelope.
func MapErrorToCode(err error) string {
	switch MapErrorToStatusCode(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return shared.CodeUnauthorized
	case http.StatusNotFound:
		return shared.CodeNotFound
	case http.StatusConflict:
		return shared.CodeConflict
	case http.StatusBadRequest:
		return shared.CodeValidation
	default:
		return shared.CodeInternal
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, auth.ErrAccountDisabled):
		return "Account is disabled"

	case errors.Is(err, auth.ErrMissingToken):
		return "Authorization required"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	// Authorization errors
	case errors.Is(err, store.ErrUpdateForbidden):
		return "Not enough permissions"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrFileNotFound):
		return "File not found"

	case errors.Is(err, store.ErrNotFound):
		return "Record not found"

	// Conflict errors
	case errors.Is(err, store.ErrUsernameExists):
		return "Username already exists"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrMobileExists):
		return "Mobile number already exists"

	case errors.Is(err, store.ErrUserReferenced):
		return "User still has records"

	case errors.Is(err, store.ErrDuplicate):
		return "Duplicate entry"

	// Bad request errors surface the concrete validation failure; the
	// domain sentinels carry no internal detail.
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, store.ErrUnknownColumn),
		errors.Is(err, domain.ErrValidation):
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}

// RespondServiceError translates an error from a store or service call
// into the matching error envelope.
func RespondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondError(w, r,
		MapErrorToStatusCode(err),
		MapErrorToCode(err),
		GetSafeErrorMessage(err))
}
