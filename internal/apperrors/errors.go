package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the authenticated actor lacks ownership or role
// for the requested operation.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates a missing or invalid authentication credential.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidState indicates an operation that is not permitted in the
// resource's current lifecycle state (e.g. deleting a non-draft invoice or
// mutating an invoiced expense).
var ErrInvalidState = errors.New("operation not permitted in current state")

// ErrNoBillableExpenses indicates invoice generation was requested with an
// empty expense selection.
var ErrNoBillableExpenses = errors.New("no billable expenses for client")

// AppError wraps an underlying error with an HTTP-ish status code and a
// human readable message for the response envelope.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
