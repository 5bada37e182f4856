package errors

import stdErrors "errors"

// ErrAuthRequired signals that an action needing a resolved user identity
// was attempted without one. It is a control-flow signal, not a failure:
// callers redirect to the login flow instead of surfacing it inline.
var ErrAuthRequired = stdErrors.New("authentication required")

// IsAuthRequired reports whether err is the authentication signal.
func IsAuthRequired(err error) bool {
	return stdErrors.Is(err, ErrAuthRequired)
}
