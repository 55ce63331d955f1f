// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"

	"github.com/taskvault/taskvault/internal/shared"
)

// Stable error codes exposed to clients.
const (
	CodeAuthRequired     = "AUTH_REQUIRED"
	CodeAuthInvalid      = "AUTH_INVALID"
	CodeTodoNotFound     = "TODO_NOT_FOUND"
	CodeUserNotFound     = "USER_NOT_FOUND"
	CodeUserExists       = "USER_EXISTS"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInternal         = "INTERNAL"
)

// RespondError maps domain errors to the structured error envelope.
// Credential failures collapse to AUTH_INVALID so the response never reveals
// whether a username exists.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrAuthRequired):
		Error(w, http.StatusUnauthorized, CodeAuthRequired, "Authentication required")
	case errors.Is(err, shared.ErrAuthInvalid), errors.Is(err, shared.ErrInvalidCredentials):
		Error(w, http.StatusUnauthorized, CodeAuthInvalid, "Could not validate user")
	case errors.Is(err, shared.ErrTodoNotFound):
		Error(w, http.StatusNotFound, CodeTodoNotFound, "Todo not found")
	case errors.Is(err, shared.ErrUserNotFound):
		Error(w, http.StatusNotFound, CodeUserNotFound, "User not found")
	case errors.Is(err, shared.ErrDuplicate):
		Error(w, http.StatusConflict, CodeUserExists, "User already exists")
	default:
		Error(w, http.StatusInternalServerError, CodeInternal, "Internal server error")
	}
}

// RespondValidation reports a request payload that failed schema validation.
func RespondValidation(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnprocessableEntity, CodeValidationFailed, message)
}
