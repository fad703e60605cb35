// Package render serializes an assembled circuit.Template into the
// surface syntax spec.md §6 defines: a pragma line, include directives,
// one or more templates, and a main-component line. Rendering is an
// external-collaborator concern per spec.md §1 ("the final textual
// serialization/pretty-printing of the emitted circuit" is explicitly out
// of the core's scope) — this package exists only so the CLI front end
// (SPEC_FULL.md §2) has something to hand its output to; the core
// translator (pkg/lower) never imports it.
//
// Grounded on pkg/ir/picus/print.go's io.WriterTo pattern (fmt.Fprintf
// straight to an io.Writer, byte count threaded through every call) and,
// for per-node text, original_source's circom_codegen.rs (the surface
// syntax this package reproduces byte-for-byte per spec.md §6).
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/consensys/zkir2circom/pkg/circuit"
	"github.com/consensys/zkir2circom/pkg/template"
)

// pragmaLine is the fixed circuit-language version pragma spec.md §6
// requires on every emitted module.
const pragmaLine = "pragma circom 2.2.2;"

// WriteTo writes mod to w in the surface syntax of spec.md §6 (pragma,
// includes, templates, main component), returning the number of bytes
// written. A plain function rather than a method on template.Module, so
// the core data type stays free of any rendering concern (spec.md §1).
func WriteTo(w io.Writer, mod *template.Module) (int64, error) {
	var total int64

	n, err := fmt.Fprintf(w, "%s\n\n", pragmaLine)
	total += int64(n)

	if err != nil {
		return total, err
	}

	for _, inc := range mod.Includes {
		n, err := fmt.Fprintf(w, "include %q;\n", inc)
		total += int64(n)

		if err != nil {
			return total, err
		}
	}

	if len(mod.Includes) > 0 {
		n, err := io.WriteString(w, "\n")
		total += int64(n)

		if err != nil {
			return total, err
		}
	}

	for _, tmpl := range mod.Templates {
		wn, err := writeTemplate(w, tmpl)
		total += wn

		if err != nil {
			return total, err
		}

		n, err := io.WriteString(w, "\n")
		total += int64(n)

		if err != nil {
			return total, err
		}
	}

	n, err = fmt.Fprintf(w, "component main = %s();\n", ToPascalCase(mod.MainTemplate))
	total += int64(n)

	return total, err
}

// String renders mod and returns the result, per the teacher's
// WriteTo-backed String convenience (pkg/ir/picus/print.go).
func String(mod *template.Module) string {
	var b strings.Builder
	_, _ = WriteTo(&b, mod)

	return b.String()
}

func writeTemplate(w io.Writer, tmpl *circuit.Template) (int64, error) {
	var total int64

	n, err := fmt.Fprintf(w, "template %s {\n", ToPascalCase(tmpl.Name))
	total += int64(n)

	if err != nil {
		return total, err
	}

	for _, instr := range tmpl.Instructions {
		n, err := fmt.Fprintf(w, "  %s\n", renderInstruction(instr))
		total += int64(n)

		if err != nil {
			return total, err
		}
	}

	n, err = io.WriteString(w, "}\n")
	total += int64(n)

	return total, err
}

func renderInstruction(instr circuit.Instruction) string {
	switch v := instr.(type) {
	case circuit.SignalDeclInstr:
		return renderSignalDecl(v.Signal)
	case circuit.ConstraintInstr:
		return fmt.Sprintf("%s <== %s;", v.Constraint.Left.Spelling(), renderExpr(v.Constraint.Right))
	case circuit.ComponentInstr:
		return fmt.Sprintf("component %s = %s();", v.Instantiation.LocalName, v.Instantiation.Gadget)
	default:
		panic(fmt.Sprintf("render: unknown instruction type %T", instr))
	}
}

func renderSignalDecl(s circuit.Signal) string {
	switch s.Role {
	case circuit.RoleInput:
		return fmt.Sprintf("signal input %s;", s.Name)
	case circuit.RoleOutput:
		return fmt.Sprintf("signal output %s;", s.Name)
	default:
		return fmt.Sprintf("signal %s;", s.Name)
	}
}

func renderExpr(e circuit.Expr) string {
	switch v := e.(type) {
	case circuit.OperandExpr:
		return v.Operand.Spelling()
	case circuit.BinaryExpr:
		return fmt.Sprintf("%s %s %s", v.Left.Spelling(), v.Op.Symbol(), v.Right.Spelling())
	case circuit.ConditionalExpr:
		return fmt.Sprintf("(%s - %s) * %s + %s", v.True.Spelling(), v.False.Spelling(), v.Cond.Spelling(), v.False.Spelling())
	case circuit.OrExpr:
		return fmt.Sprintf("(%s + %s) - (%s * %s)", v.A.Spelling(), v.B.Spelling(), v.A.Spelling(), v.B.Spelling())
	default:
		panic(fmt.Sprintf("render: unknown expression type %T", e))
	}
}

// ToPascalCase splits s on underscores and upper-cases each word's first
// rune, joining with no separator — the PascalCase template and
// main-component naming of SPEC_FULL.md §4. Grounded on original_source's
// circom_codegen.rs::to_pascal_case, restated with Go's rune handling.
func ToPascalCase(s string) string {
	words := strings.Split(s, "_")

	var b strings.Builder

	for _, word := range words {
		if word == "" {
			continue
		}

		r := []rune(word)
		b.WriteString(strings.ToUpper(string(r[0])))
		b.WriteString(string(r[1:]))
	}

	return b.String()
}
