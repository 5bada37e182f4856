package errors

import stdErrors "errors"

// ValidationError reports a user input that violates a step constraint.
// The wizard stays on the offending step; input is never silently clamped.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err is a ValidationError (even when wrapped).
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return stdErrors.As(err, &valErr)
}
