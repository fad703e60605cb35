package circuit

// Instruction is one line of a Template's body: a signal declaration, a
// constraint, or a component instantiation (spec.md §3).
type Instruction interface {
	isInstruction()
}

// SignalDeclInstr declares a signal.
type SignalDeclInstr struct {
	Signal Signal
}

func (SignalDeclInstr) isInstruction() {}

// ConstraintInstr emits a constraint.
type ConstraintInstr struct {
	Constraint Constraint
}

func (ConstraintInstr) isInstruction() {}

// ComponentInstr instantiates a sub-component.
type ComponentInstr struct {
	Instantiation ComponentInstantiation
}

func (ComponentInstr) isInstruction() {}

// Template is a name plus an ordered instruction sequence (spec.md §3).
// Once returned by the assembler (pkg/template) it is treated as
// immutable by the rest of the pipeline.
type Template struct {
	Name         string
	Instructions []Instruction
}

// ComponentInstantiations returns, in order, every component instantiation
// appearing in this template. Used by the include resolver (pkg/gadget).
func (t *Template) ComponentInstantiations() []ComponentInstantiation {
	var out []ComponentInstantiation

	for _, instr := range t.Instructions {
		if ci, ok := instr.(ComponentInstr); ok {
			out = append(out, ci.Instantiation)
		}
	}

	return out
}
