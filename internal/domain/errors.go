package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services and repositories.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)

// validationError carries a user-facing message and matches ErrInvalidInput
// under errors.Is, so controllers can map it to 400 without losing the text.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError returns an ErrInvalidInput-compatible error whose
// Error() is exactly the formatted message.
func NewValidationError(format string, args ...any) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}

// forbiddenError carries a user-facing message and matches ErrForbidden.
type forbiddenError struct {
	msg string
}

func (e *forbiddenError) Error() string { return e.msg }

func (e *forbiddenError) Is(target error) bool { return target == ErrForbidden }

// NewForbiddenError returns an ErrForbidden-compatible error whose
// Error() is exactly the formatted message.
func NewForbiddenError(format string, args ...any) error {
	return &forbiddenError{msg: fmt.Sprintf(format, args...)}
}

// notFoundError carries a user-facing message and matches ErrNotFound.
type notFoundError struct {
	msg string
}

func (e *notFoundError) Error() string { return e.msg }

func (e *notFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFoundError returns an ErrNotFound-compatible error whose
// Error() is exactly the formatted message.
func NewNotFoundError(format string, args ...any) error {
	return &notFoundError{msg: fmt.Sprintf(format, args...)}
}
