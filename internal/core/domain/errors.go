package domain

import "errors"

var (
	// ErrValidation marks a request payload that is missing or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrConflict marks a uniqueness violation on email.
	ErrConflict = errors.New("conflict")

	// ErrNotFound is returned by stores and services when a referenced record is absent.
	ErrNotFound = errors.New("not found")
)

// Error is a user-correctable failure carrying the message shown to the caller.
// Kind is one of the sentinels above, so errors.Is works against it.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NewValidationError(message string) *Error {
	return &Error{Kind: ErrValidation, Message: message}
}

func NewConflictError(message string) *Error {
	return &Error{Kind: ErrConflict, Message: message}
}

func NewNotFoundError(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}
