// Package template assembles a named instruction stream, as produced by
// pkg/lower's dedup consumer, into an immutable circuit.Template
// (spec.md §4.7).
//
// Grounded on original_source's mod.rs (`ir_to_circom`), which gathers a
// function's `signals_instructions()` ahead of the body before emitting
// the template, and on the teacher's pkg/ir/picus/program.go
// Program/Module record shape for the Go idiom of a plain immutable
// struct as the hand-off point to a downstream serializer.
package template

import "github.com/consensys/zkir2circom/pkg/circuit"

// Assemble composes a named template from instrs, the natural-order
// instruction stream a translation emits. Signal declarations are moved
// ahead of the constraint/component-instantiation stream; within each of
// those two groups, relative order is preserved (spec.md §4.6, §5).
func Assemble(name string, instrs []circuit.Instruction) *circuit.Template {
	decls := make([]circuit.Instruction, 0, len(instrs))
	rest := make([]circuit.Instruction, 0, len(instrs))

	for _, instr := range instrs {
		if _, ok := instr.(circuit.SignalDeclInstr); ok {
			decls = append(decls, instr)
		} else {
			rest = append(rest, instr)
		}
	}

	return &circuit.Template{Name: name, Instructions: append(decls, rest...)}
}
