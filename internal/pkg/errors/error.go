package xerrors

import (
	"errors"
	"fmt"
)

// Common reusable application errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict with existing records")
)

// Invalid returns an ErrInvalidInput carrying a human readable message.
// The message is what clients see, so it is returned verbatim by Error().
func Invalid(message string) error {
	return &detailed{kind: ErrInvalidInput, message: message}
}

// NotFound returns an ErrNotFound carrying a human readable message.
func NotFound(message string) error {
	return &detailed{kind: ErrNotFound, message: message}
}

// Conflict wraps a store constraint failure as ErrConflict, keeping the
// driver message.
func Conflict(err error) error {
	if err == nil {
		return nil
	}
	return &detailed{kind: ErrConflict, message: err.Error(), cause: err}
}

type detailed struct {
	kind    error
	message string
	cause   error
}

func (e *detailed) Error() string { return e.message }

func (e *detailed) Is(target error) bool { return target == e.kind }

func (e *detailed) Unwrap() error { return e.cause }

// Wrap adds context to an error (similar to fmt.Errorf("%w")).
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
