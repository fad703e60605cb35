package circuit

import "fmt"

// InvariantError reports a structural invariant violation in the signal
// table: re-declaring a mutable cell, or reading/incrementing an unknown
// one (spec.md §7). It always indicates malformed input to the
// translator, never a recoverable condition.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string { return e.Message }

func errCellAlreadyDeclared(cell string) error {
	return &InvariantError{Message: fmt.Sprintf("mutable cell %q already declared", cell)}
}

func errUnknownCell(cell string) error {
	return &InvariantError{Message: fmt.Sprintf("read of unknown mutable cell %q", cell)}
}
