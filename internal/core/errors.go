package core

import (
	"errors"
	"fmt"
)

// ValidationError is returned when user input is rejected. It unwraps to
// one of the package sentinels and carries a message fit for display.
type ValidationError struct {
	Field   string
	Err     error
	Message string
}

func NewValidationError(field string, err error, message string) *ValidationError {
	return &ValidationError{Field: field, Err: err, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// PersistWarning reports a failed storage write. The in-memory state that
// triggered the write is still valid, so callers may continue.
type PersistWarning struct {
	Key string
	Err error
}

func (w *PersistWarning) Error() string {
	return fmt.Sprintf("save %q failed, storage may be full: %v", w.Key, w.Err)
}

func (w *PersistWarning) Unwrap() []error {
	return []error{ErrPersistenceWrite, w.Err}
}

// IsWarning reports whether err only signals a failed write.
func IsWarning(err error) bool {
	return err != nil && errors.Is(err, ErrPersistenceWrite)
}

// IsValidation reports whether err is a rejected user input.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
