package typemap

import (
	"errors"
	"fmt"
)

// ErrValidation is the error class of semantic rejections by validators.
// A pattern will treat a value failing validation as not matching.
//
// ErrInvalidName is returned if a type map is registered with a name which
// could not be referenced from an expression.
//
// ErrCapturingFragment is returned if a fragment does not compile or contains
// a capturing group.
var (
	ErrValidation        = errors.New("value failed validation")
	ErrInvalidName       = errors.New("invalid type map name")
	ErrCapturingFragment = errors.New("invalid type map fragment")
)

// ValidationError is returned by validators to reject a value.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Value  string // the rejected value
	Reason string // optional explanation
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%v: %q", ErrValidation, e.Value)
	}
	return fmt.Sprintf("%v: %q: %s", ErrValidation, e.Value, e.Reason)
}

// Is lets ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Reject creates a validation error for value. The reason is formatted
// as with fmt.Sprintf and may be empty.
func Reject(value string, format string, args ...interface{}) error {
	return &ValidationError{Value: value, Reason: fmt.Sprintf(format, args...)}
}

// IsValidationFailure is a shortcut for errors.Is(err, ErrValidation).
func IsValidationFailure(err error) bool {
	return errors.Is(err, ErrValidation)
}
