// Package circuit holds the arithmetic-circuit data model of spec.md §3:
// signals, references, operands, expressions, constraints, component
// instantiations and templates, plus the signal table that owns
// declarations and mutable-cell (stack slot) versioning.
//
// Everything in this package is a plain value or a small stateful table;
// there is no control flow here — that lives in pkg/cfg and pkg/predicate,
// and the per-instruction emission logic lives in pkg/lower.
package circuit

// Role identifies the one of three roles a Signal may have.
type Role int

// The three signal roles (spec.md §3).
const (
	RolePrivate Role = iota
	RoleInput
	RoleOutput
)

// String renders a Role for diagnostics.
func (r Role) String() string {
	switch r {
	case RoleInput:
		return "input"
	case RoleOutput:
		return "output"
	default:
		return "private"
	}
}

// Signal is a declared circuit wire.
type Signal struct {
	Name string
	Role Role
}
