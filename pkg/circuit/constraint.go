package circuit

// Constraint forces the wire Left equal to the value of Right
// (spec.md §3), rendered by the surface syntax as "<left> <== <right>;".
type Constraint struct {
	Left  Reference
	Right Expr
}

// ComponentInstantiation introduces a sub-component under LocalName,
// exposing "LocalName.pin" field references (spec.md §3).
type ComponentInstantiation struct {
	LocalName string
	Gadget    string
}

// Field returns a field reference into this instantiation's pin.
func (c ComponentInstantiation) Field(pin string) FieldRef {
	return NewFieldRef(c.LocalName, pin)
}
