package lower

import "fmt"

// ConflictError reports two different defining expressions for the same
// signal (spec.md §4.5): always a bug in the upstream IR or in the
// translator itself, never a recoverable condition.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func errConflict(name string) error {
	return &ConflictError{Message: fmt.Sprintf("conflicting re-assignment of signal %q", name)}
}
