package circuit

import (
	"fmt"
	"strings"
)

// outputCellFinalSuffix is appended to the output cell's name to form the
// name of the reserved, once-declared output signal (spec.md §4.2, §8).
const outputCellFinalSuffix = "final"

// Table owns the mapping from symbolic names to declared signals, and the
// mutable-cell versioning layer that turns stack slots into a sequence of
// single-assignment signals (spec.md §4.2). A fresh Table is created per
// function translation.
type Table struct {
	declared map[string]Signal
	order    []string
	versions map[string]uint
}

// NewTable constructs an empty signal table.
func NewTable() *Table {
	return &Table{
		declared: make(map[string]Signal),
		versions: make(map[string]uint),
	}
}

// declare registers name under role if not already present, preserving
// first-declaration order. Re-declaring an already-present name under any
// role is a no-op (the name keeps its original role); see GetReference for
// the idempotent private-declaration case this supports.
func (t *Table) declare(name string, role Role) Signal {
	if s, ok := t.declared[name]; ok {
		return s
	}

	s := Signal{Name: name, Role: role}
	t.declared[name] = s
	t.order = append(t.order, name)

	return s
}

// GetReference returns a reference to name, declaring it as a private
// signal first if it is not already declared. Idempotent (spec.md §4.2).
func (t *Table) GetReference(name string) Reference {
	t.declare(name, RolePrivate)
	return NewSignalRef(name)
}

// DeclareInput declares name as an input signal and returns a reference to
// it. Used for function parameters; callers must filter out the "self"
// parameter before calling this (spec.md §4.2).
func (t *Table) DeclareInput(name string) Reference {
	t.declare(name, RoleInput)
	return NewSignalRef(name)
}

// mutableVersionName returns the signal name for a mutable cell at a given
// version: "{cell}_m{version}" (spec.md "Mutable cell"). The reserved
// output cell's own name already ends in "_" (OutputSignalName); trimming
// that trailing underscore first keeps its version names single- rather
// than double-underscored (spec.md §8: "OUTPUT_m0", not "OUTPUT__m0").
func mutableVersionName(cell string, version uint) string {
	cell = strings.TrimSuffix(cell, "_")
	return fmt.Sprintf("%s_m%d", cell, version)
}

// DeclareMutableCell initializes cell's version counter to 0 and declares
// its version-0 signal. It is an error to declare the same cell twice
// (spec.md §4.2, §7).
func (t *Table) DeclareMutableCell(cell string) (Reference, error) {
	if _, ok := t.versions[cell]; ok {
		return nil, errCellAlreadyDeclared(cell)
	}

	t.versions[cell] = 0

	return t.GetReference(mutableVersionName(cell, 0)), nil
}

// IncrementMutable advances cell's version to k+1 and returns a reference
// to the new version's signal. It is an error to increment a cell that was
// never declared.
func (t *Table) IncrementMutable(cell string) (Reference, error) {
	v, ok := t.versions[cell]
	if !ok {
		return nil, errUnknownCell(cell)
	}

	v++
	t.versions[cell] = v

	return t.GetReference(mutableVersionName(cell, v)), nil
}

// ReadMutable returns an operand for cell's current version. It is an
// error to read a cell that was never declared.
func (t *Table) ReadMutable(cell string) (Operand, error) {
	v, ok := t.versions[cell]
	if !ok {
		return nil, errUnknownCell(cell)
	}

	return t.GetReference(mutableVersionName(cell, v)), nil
}

// OutputSignalName returns the fixed reserved mutable-cell name used for a
// function's return value (spec.md §4.2).
func (t *Table) OutputSignalName() string {
	return "OUTPUT_"
}

// OutputFinalReference declares the reserved output signal (the cell's
// name with outputCellFinalSuffix appended) as an output signal and
// returns its reference. Idempotent, like GetReference: if the name is
// already declared, it keeps the role it was first declared with.
func (t *Table) OutputFinalReference() Reference {
	name := t.OutputSignalName() + outputCellFinalSuffix
	t.declare(name, RoleOutput)

	return NewSignalRef(name)
}

// Declarations returns all declared signals in first-declaration order.
// Order is deterministic given a deterministic emission order, but is
// otherwise not meaningful (spec.md §4.2 calls it "arbitrary but
// deterministic").
func (t *Table) Declarations() []Signal {
	out := make([]Signal, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.declared[name])
	}

	return out
}
