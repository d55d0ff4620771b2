package service

import (
	"errors"
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrExternalService is returned when an external service call fails.
	ErrExternalService = errors.New("external service error")
	// ErrInvalidTransition is returned when a note cannot move to the requested status.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrUnauthorized is returned when Bluesky rejects the credentials.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Is makes every ValidationError match ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// fromValidation converts an ozzo-validation result into a ValidationError
// for the first failing field in name order.
func fromValidation(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	fields := make([]string, 0, len(fieldErrs))
	for f := range fieldErrs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	first := fields[0]
	msg := fieldErrs[first].Error()
	// Nested struct errors carry their own field names.
	var nested validation.Errors
	if errors.As(fieldErrs[first], &nested) {
		if inner, ok := fromValidation(nested).(*ValidationError); ok {
			return &ValidationError{Field: first + "." + inner.Field, Message: inner.Message}
		}
	}
	return &ValidationError{Field: first, Message: msg}
}
