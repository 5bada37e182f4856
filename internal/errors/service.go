// Package errors defines the typed error values shared across the
// storefront core. None of them are fatal: service errors surface as
// dismissible notifications, validation errors keep the wizard on the
// offending step, and auth errors redirect to login.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ServiceError represents a failed remote call (network error or an
// unexpected HTTP status). The core never retries these automatically.
type ServiceError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s failed (HTTP %d): %s", e.Operation, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// NewServiceError creates a ServiceError for a remote operation.
func NewServiceError(operation string, statusCode int, message string) *ServiceError {
	return &ServiceError{
		Operation:  operation,
		StatusCode: statusCode,
		Message:    message,
	}
}

// IsServiceError reports whether err is a ServiceError (even when wrapped).
func IsServiceError(err error) bool {
	var svcErr *ServiceError
	return stdErrors.As(err, &svcErr)
}
