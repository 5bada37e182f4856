package errors

import (
	stdErrors "errors"
	"fmt"
)

// ConsistencyError reports a persisted-mirror write failure during a
// favorites mutation. The in-process change has already been rolled back
// when this error is returned; the two representations never diverge.
type ConsistencyError struct {
	BookID string
	Err    error
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("favorites mirror write for %s failed, in-memory change rolled back: %v", e.BookID, e.Err)
}

func (e *ConsistencyError) Unwrap() error {
	return e.Err
}

// NewConsistencyError creates a ConsistencyError for the given book.
func NewConsistencyError(bookID string, err error) *ConsistencyError {
	return &ConsistencyError{BookID: bookID, Err: err}
}

// IsConsistencyError reports whether err is a ConsistencyError (even when wrapped).
func IsConsistencyError(err error) bool {
	var conErr *ConsistencyError
	return stdErrors.As(err, &conErr)
}
