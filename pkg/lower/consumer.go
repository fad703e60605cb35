package lower

import (
	"github.com/sirupsen/logrus"

	"github.com/consensys/zkir2circom/pkg/circuit"
)

// DedupConsumer accumulates a template's instructions (signal
// declarations, constraints, component instantiations) in emission order.
// It drops an exact-duplicate re-assignment of a signal's defining
// expression and hard-errors on a conflicting one (spec.md §4.5,
// REDESIGN FLAGS — the original has no such check at all). It implements
// predicate.Emitter so the path-predicate materializer writes its helper
// signals through the same machinery as ordinary instruction lowering.
//
// Grounded on pkg/asm/compiler/emitter.go's instruction buffer, restated
// with the dedup/conflict rule spec.md §4.5 adds on top.
type DedupConsumer struct {
	table *circuit.Table
	log   *logrus.Logger

	declaredInstr map[string]bool
	defined       map[string]circuit.Expr
	instructions  []circuit.Instruction
}

// NewDedupConsumer constructs a consumer backed by table for signal
// declaration and versioning. Debug logging is a no-op until a caller
// sets the log field (Translate does, per its Config.Verbose).
func NewDedupConsumer(table *circuit.Table) *DedupConsumer {
	return &DedupConsumer{
		table:         table,
		log:           logrus.New(),
		declaredInstr: make(map[string]bool),
		defined:       make(map[string]circuit.Expr),
	}
}

func (c *DedupConsumer) recordDecl(name string, role circuit.Role) {
	if c.declaredInstr[name] {
		return
	}

	c.declaredInstr[name] = true
	c.instructions = append(c.instructions, circuit.SignalDeclInstr{Signal: circuit.Signal{Name: name, Role: role}})
}

// Declare registers name as a private signal in the table and, the first
// time it is seen, appends its declaration instruction. Implements
// predicate.Emitter.
func (c *DedupConsumer) Declare(name string) circuit.Reference {
	ref := c.table.GetReference(name)
	c.recordDecl(name, circuit.RolePrivate)

	return ref
}

// DeclareInput registers name as an input signal and appends its
// declaration instruction (used once per function parameter).
func (c *DedupConsumer) DeclareInput(name string) circuit.Reference {
	ref := c.table.DeclareInput(name)
	c.recordDecl(name, circuit.RoleInput)

	return ref
}

// DeclareOutput declares the function's reserved output signal and
// appends its declaration instruction.
func (c *DedupConsumer) DeclareOutput() circuit.Reference {
	ref := c.table.OutputFinalReference()
	c.recordDecl(ref.Spelling(), circuit.RoleOutput)

	return ref
}

// OutputCellName returns the reserved mutable cell name backing the
// function's return value.
func (c *DedupConsumer) OutputCellName() string {
	return c.table.OutputSignalName()
}

// DeclareMutableCell initializes cell's version counter and appends its
// version-0 declaration instruction.
func (c *DedupConsumer) DeclareMutableCell(cell string) (circuit.Reference, error) {
	ref, err := c.table.DeclareMutableCell(cell)
	if err != nil {
		return nil, err
	}

	c.recordDecl(ref.Spelling(), circuit.RolePrivate)

	return ref, nil
}

// IncrementMutable advances cell's version and appends the new version's
// declaration instruction.
func (c *DedupConsumer) IncrementMutable(cell string) (circuit.Reference, error) {
	ref, err := c.table.IncrementMutable(cell)
	if err != nil {
		return nil, err
	}

	c.recordDecl(ref.Spelling(), circuit.RolePrivate)

	return ref, nil
}

// ReadMutable returns an operand for cell's current version. Reading never
// declares anything new.
func (c *DedupConsumer) ReadMutable(cell string) (circuit.Operand, error) {
	return c.table.ReadMutable(cell)
}

// Emit implements predicate.Emitter over Constrain.
func (c *DedupConsumer) Emit(left circuit.Reference, right circuit.Expr) error {
	return c.Constrain(left, right)
}

// Constrain records left = right as a defining constraint. An exact
// duplicate (same left, structurally equal right) is dropped silently; a
// re-assignment of left to a structurally different right is a hard error
// (spec.md §4.5).
func (c *DedupConsumer) Constrain(left circuit.Reference, right circuit.Expr) error {
	name := left.Spelling()

	if existing, ok := c.defined[name]; ok {
		if existing.Equal(right) {
			c.log.WithField("signal", name).Debug("dropped duplicate constraint")
			return nil
		}

		c.log.WithField("signal", name).Debug("conflicting constraint")

		return errConflict(name)
	}

	c.defined[name] = right
	c.instructions = append(c.instructions, circuit.ConstraintInstr{
		Constraint: circuit.Constraint{Left: left, Right: right},
	})

	return nil
}

// Component appends a component instantiation instruction. Instantiations
// are never deduplicated: every call appends one, even for a repeated
// local name (lowerIcmpEq derives the local name from the instruction's
// destination).
func (c *DedupConsumer) Component(inst circuit.ComponentInstantiation) {
	c.instructions = append(c.instructions, circuit.ComponentInstr{Instantiation: inst})
}

// Instructions returns the accumulated instruction stream in emission
// order.
func (c *DedupConsumer) Instructions() []circuit.Instruction {
	return c.instructions
}
