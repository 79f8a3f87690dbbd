package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
	ErrInvalidInput = errors.New("invalid input")
)

// Error carries a user-facing message together with one of the sentinel kinds above.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// NewError returns an *Error of the given kind.
func NewError(kind error, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Validation, Unauthorized, Conflict and InvalidInput are shorthands for NewError.
func Validation(msg string) *Error   { return NewError(ErrBadRequest, msg) }
func Unauthorized(msg string) *Error { return NewError(ErrUnauthorized, msg) }
func Conflict(msg string) *Error     { return NewError(ErrConflict, msg) }
func InvalidInput(msg string) *Error { return NewError(ErrInvalidInput, msg) }
