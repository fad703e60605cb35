package predicate

import (
	"math/big"
	"testing"

	"github.com/consensys/zkir2circom/pkg/circuit"
)

// fakeEmitter records declarations and constraints in emission order, for
// assertions on what the materializer produced.
type fakeEmitter struct {
	declared []string
	defs     map[string]circuit.Expr
}

func newFakeEmitter() *fakeEmitter {
	return &fakeEmitter{defs: make(map[string]circuit.Expr)}
}

func (f *fakeEmitter) Declare(name string) circuit.Reference {
	if _, ok := f.defs[name]; !ok {
		f.declared = append(f.declared, name)
	}

	return circuit.NewSignalRef(name)
}

func (f *fakeEmitter) Emit(left circuit.Reference, right circuit.Expr) error {
	f.defs[left.Spelling()] = right
	return nil
}

func TestMaterializeSingleTrueLeafIsOperandItself(t *testing.T) {
	emitter := newFakeEmitter()
	mat := NewMaterializer(emitter)

	c := circuit.NewSignalRef("c")
	pred := Predicate{Disjuncts: []Simple{{{Operand: c, Polarity: true}}}}

	gate, err := mat.Materialize(pred)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	if !gate.Equal(c) {
		t.Errorf("a single true-polarity leaf should materialize to the operand itself, got %v", gate)
	}

	if len(emitter.declared) != 0 {
		t.Errorf("expected no helper signals for a bare true leaf, got %v", emitter.declared)
	}
}

func TestMaterializeFalseLeafNegates(t *testing.T) {
	emitter := newFakeEmitter()
	mat := NewMaterializer(emitter)

	c := circuit.NewSignalRef("c")
	pred := Predicate{Disjuncts: []Simple{{{Operand: c, Polarity: false}}}}

	gate, err := mat.Materialize(pred)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	if gate.Spelling() != "cF" {
		t.Errorf("gate spelling = %q, want %q", gate.Spelling(), "cF")
	}

	expr, ok := emitter.defs["cF"]
	if !ok {
		t.Fatal("expected a definition for cF")
	}

	want := circuit.BinaryExpr{Op: circuit.OpSub, Left: circuit.NewConstant(big.NewInt(1)), Right: c}
	if !expr.Equal(want) {
		t.Errorf("cF defined as %+v, want %+v", expr, want)
	}
}

func TestMaterializeNegationIsCached(t *testing.T) {
	emitter := newFakeEmitter()
	mat := NewMaterializer(emitter)

	c := circuit.NewSignalRef("c")
	leaf := Simple{{Operand: c, Polarity: false}}

	pred := Predicate{Disjuncts: []Simple{leaf, leaf}}

	if _, err := mat.Materialize(Predicate{Disjuncts: []Simple{leaf}}); err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	declaredAfterFirst := len(emitter.declared)

	if _, err := mat.Materialize(pred); err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	if len(emitter.declared) != declaredAfterFirst {
		t.Errorf("expected no new declarations from re-materializing a cached negation, got %v", emitter.declared)
	}
}

func TestMaterializeChainFoldsPairwise(t *testing.T) {
	emitter := newFakeEmitter()
	mat := NewMaterializer(emitter)

	a := circuit.NewSignalRef("a")
	b := circuit.NewSignalRef("b")

	chain := Simple{{Operand: a, Polarity: true}, {Operand: b, Polarity: true}}
	pred := Predicate{Disjuncts: []Simple{chain}}

	gate, err := mat.Materialize(pred)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	if gate.Spelling() != "ab" {
		t.Errorf("gate spelling = %q, want %q", gate.Spelling(), "ab")
	}

	expr, ok := emitter.defs["ab"]
	if !ok {
		t.Fatal("expected a definition for the chain product 'ab'")
	}

	want := circuit.BinaryExpr{Op: circuit.OpMul, Left: a, Right: b}
	if !expr.Equal(want) {
		t.Errorf("ab defined as %+v, want %+v", expr, want)
	}
}

func TestMaterializeOrFoldsTwoDisjuncts(t *testing.T) {
	emitter := newFakeEmitter()
	mat := NewMaterializer(emitter)

	p1 := circuit.NewSignalRef("p1")
	p2 := circuit.NewSignalRef("p2")

	pred := Predicate{Disjuncts: []Simple{
		{{Operand: p1, Polarity: true}},
		{{Operand: p2, Polarity: true}},
	}}

	gate, err := mat.Materialize(pred)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	if gate.Spelling() != "p1Up2" {
		t.Errorf("gate spelling = %q, want %q", gate.Spelling(), "p1Up2")
	}

	expr, ok := emitter.defs["p1Up2"]
	if !ok {
		t.Fatal("expected a definition for the OR-fold 'p1Up2'")
	}

	want := circuit.OrExpr{A: p1, B: p2}
	if !expr.Equal(want) {
		t.Errorf("p1Up2 defined as %+v, want %+v", expr, want)
	}
}
