package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInputMissing marks a calculation whose upstream totals are zero or absent
	ErrInputMissing = errors.New("input missing")
	// ErrValidation marks structurally invalid input
	ErrValidation = errors.New("validation error")
)

// CalculationError is a precondition failure reported before any output is written
type CalculationError struct {
	Operation string
	Message   string
	Kind      error // ErrInputMissing or ErrValidation
	Cause     error
}

func (e *CalculationError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *CalculationError) Unwrap() error {
	return e.Cause
}

// Is matches the error kind so callers can use errors.Is(err, ErrInputMissing)
func (e *CalculationError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// NewInputMissing builds an InputMissing failure
func NewInputMissing(operation, format string, args ...any) *CalculationError {
	return &CalculationError{Operation: operation, Message: fmt.Sprintf(format, args...), Kind: ErrInputMissing}
}

// NewValidationError builds a ValidationError failure
func NewValidationError(operation, format string, args ...any) *CalculationError {
	return &CalculationError{Operation: operation, Message: fmt.Sprintf(format, args...), Kind: ErrValidation}
}

// IsInputMissing reports whether err is an InputMissing failure
func IsInputMissing(err error) bool { return errors.Is(err, ErrInputMissing) }

// IsValidation reports whether err is a ValidationError failure
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
