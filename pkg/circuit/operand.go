package circuit

import "math/big"

// Operand is either a Reference or an integer-literal Constant
// (spec.md §3). It is also the building block of Expr.
type Operand interface {
	// Spelling returns the operand's textual spelling, used both for
	// surface-syntax rendering and to derive deterministic names for
	// materialized predicate signals (spec.md §4.4).
	Spelling() string
	// Equal reports whether two operands denote the same wire/value.
	Equal(Operand) bool

	isOperand()
}

// Reference is an Operand that names a wire: either a direct signal
// reference, or a field reference into an instantiated sub-component
// (spec.md §3).
type Reference interface {
	Operand

	isReference()
}

// SignalRef is a direct reference to a declared signal.
type SignalRef struct {
	Name string
}

// NewSignalRef constructs a direct signal reference. It does not declare
// the signal; use Table.GetReference (or the mutable-cell operations) to
// both declare and obtain a reference.
func NewSignalRef(name string) SignalRef { return SignalRef{Name: name} }

// Spelling implements Operand.
func (r SignalRef) Spelling() string { return r.Name }

// Equal implements Operand.
func (r SignalRef) Equal(other Operand) bool {
	o, ok := other.(SignalRef)
	return ok && o.Name == r.Name
}

func (SignalRef) isOperand()   {}
func (SignalRef) isReference() {}

// FieldRef is a reference into a gadget-specific pin of an instantiated
// sub-component, e.g. "e_EQ.out".
type FieldRef struct {
	Component string
	Field     string
}

// NewFieldRef constructs a field reference.
func NewFieldRef(component, field string) FieldRef {
	return FieldRef{Component: component, Field: field}
}

// Spelling implements Operand.
func (r FieldRef) Spelling() string { return r.Component + "." + r.Field }

// Equal implements Operand.
func (r FieldRef) Equal(other Operand) bool {
	o, ok := other.(FieldRef)
	return ok && o.Component == r.Component && o.Field == r.Field
}

func (FieldRef) isOperand()   {}
func (FieldRef) isReference() {}

// Constant is an integer-literal Operand. Value is always held as a
// non-negative field-canonical residue (see pkg/ir's constant
// conversion); Constant itself does not perform field reduction.
type Constant struct {
	Value big.Int
}

// NewConstant constructs a constant operand from a big.Int. The value is
// copied.
func NewConstant(v *big.Int) Constant {
	var c Constant
	c.Value.Set(v)

	return c
}

// Spelling implements Operand.
func (c Constant) Spelling() string { return c.Value.String() }

// Equal implements Operand.
func (c Constant) Equal(other Operand) bool {
	o, ok := other.(Constant)
	return ok && o.Value.Cmp(&c.Value) == 0
}

func (Constant) isOperand() {}
