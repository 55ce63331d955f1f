package shared

import "errors"

var (
	// ErrAuthRequired indicates no credential was presented.
	ErrAuthRequired = errors.New("authentication required")
	// ErrAuthInvalid indicates a credential was presented but is unusable.
	ErrAuthInvalid = errors.New("could not validate user")
	// ErrInvalidCredentials indicates login failure. It surfaces as
	// ErrAuthInvalid at the API boundary.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTodoNotFound indicates the todo is absent or not owned by the caller.
	ErrTodoNotFound = errors.New("todo not found")
	// ErrUserNotFound indicates the user record is absent.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicate indicates a unique constraint violation.
	ErrDuplicate = errors.New("duplicate entry")
)
