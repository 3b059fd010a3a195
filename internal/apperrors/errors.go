package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUnrecognizedFile indicates an uploaded file whose path or name does not match any known import role.
var ErrUnrecognizedFile = errors.New("unrecognized import file")

// ErrMissingApartmentsFile indicates an HOA group without the required apartments roster.
var ErrMissingApartmentsFile = errors.New("missing apartments file")

// ErrEmptyRoster indicates an apartments file that produced no usable apartment records.
var ErrEmptyRoster = errors.New("apartments file contains no apartment records")

// AppError carries an HTTP-ish status code and a human readable message alongside the cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError wraps err with a code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
