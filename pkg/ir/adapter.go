package ir

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

	"github.com/consensys/zkir2circom/pkg/circuit"
)

// UnsupportedError reports an upstream IR construct this translator does
// not handle: an unknown instruction or terminator kind, or an operand
// that is neither a local nor an integer constant (spec.md §4.1, §7). The
// message carries a printable form of the offending node.
type UnsupportedError struct {
	Message string
}

func (e *UnsupportedError) Error() string { return e.Message }

func errUnsupportedOperand(op Operand) error {
	return &UnsupportedError{Message: fmt.Sprintf("unsupported operand kind %d (value: %+v)", op.Kind, op)}
}

// ConvertOperand adapts a raw IR operand into the circuit operand model
// (spec.md §4.1): a local becomes a signal reference under its normalized
// name; an integer constant is reduced to its canonical field residue
// (SPEC_FULL.md §3) and becomes a Constant operand. This never touches a
// signal table: reading an operand does not by itself declare anything,
// only producing (or versioning) a value does — see pkg/circuit.Table and
// pkg/lower.
func ConvertOperand(op Operand) (circuit.Operand, error) {
	switch op.Kind {
	case OperandLocal:
		return circuit.NewSignalRef(NormalizeName(op.Local)), nil
	case OperandConst:
		return circuit.NewConstant(fieldCanonical(op.Const)), nil
	default:
		return nil, errUnsupportedOperand(op)
	}
}

// fieldCanonical reduces a signed 64-bit value modulo the bls12-377
// scalar field, returning its canonical non-negative residue. The IR is
// assumed (spec.md §1) to have been prepared to use wrapping/unchecked
// arithmetic, so a negative literal here represents a field-wrapped value
// rather than a true negative number; printing it as "-3" would be wrong
// in a prime field, so every literal is routed through this reduction
// before it reaches the rest of the pipeline (SPEC_FULL.md §3).
func fieldCanonical(v int64) *big.Int {
	var (
		elem fr.Element
		out  big.Int
	)

	elem.SetInt64(v)
	elem.BigInt(&out)

	return &out
}
