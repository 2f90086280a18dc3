package ankiconnect

import (
	"errors"
	"fmt"
)

// ErrUnreachable means the application could not be reached at all. Callers treat it as fatal for a run.
var ErrUnreachable = errors.New("anki is unreachable")

// APIError is an error payload returned by the application for one action.
type APIError struct {
	Action  string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("anki action %s failed: %s", e.Action, e.Message)
}

// IsUnreachable reports whether err is a connectivity failure.
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}
