package predicate

import (
	"math/big"
	"strings"

	"github.com/consensys/zkir2circom/pkg/circuit"
)

// Emitter is the sink a Materializer writes freshly declared helper
// signals and their defining constraints to. pkg/lower implements this
// over its dedup-consumer-backed constraint stream, keeping pkg/predicate
// free of any dependency on pkg/lower (DESIGN.md).
type Emitter interface {
	// Declare registers name as a private signal and returns a reference
	// to it. Idempotent: declaring the same name twice returns the same
	// reference without error.
	Declare(name string) circuit.Reference
	// Emit records left = right as a defining constraint for a signal
	// Declare just produced. The dedup consumer behind this never sees a
	// genuine conflict for materializer-produced names (each is declared
	// at most once per distinct cache key), but it still reports one
	// should the invariant ever be violated.
	Emit(left circuit.Reference, right circuit.Expr) error
}

// Materializer lazily and memoizedly turns Predicate values into a single
// circuit operand usable as a 0/1 indicator (spec.md §4.4). Three
// independent caches mirror the three kinds of helper signal the naming
// convention produces: negated leaves ("xF"), simple chains built by
// concatenating leaf spellings, and OR-folds joined with "U".
type Materializer struct {
	emit Emitter

	negated map[string]circuit.Operand
	chains  map[string]circuit.Operand
	orFolds map[string]circuit.Operand
}

// NewMaterializer constructs a Materializer writing helper signals and
// constraints through emit.
func NewMaterializer(emit Emitter) *Materializer {
	return &Materializer{
		emit:    emit,
		negated: make(map[string]circuit.Operand),
		chains:  make(map[string]circuit.Operand),
		orFolds: make(map[string]circuit.Operand),
	}
}

// Materialize reduces pred to a single 0/1-valued circuit operand. Callers
// must not call this on the empty (always-true) predicate — there is no
// signal for "always"; check Predicate.IsEmpty first and skip gating
// entirely in that case (spec.md §4.4).
func (m *Materializer) Materialize(pred Predicate) (circuit.Operand, error) {
	acc, err := m.simple(pred.Disjuncts[0])
	if err != nil {
		return nil, err
	}

	for _, d := range pred.Disjuncts[1:] {
		next, err := m.simple(d)
		if err != nil {
			return nil, err
		}

		acc, err = m.orFold(acc, next)
		if err != nil {
			return nil, err
		}
	}

	return acc, nil
}

// leaf materializes a single chain node: the operand itself when the
// branch's true arm was taken (it is already a 0/1 value), or a cached
// "xF" = 1 - x negation signal when the false arm was taken.
func (m *Materializer) leaf(n Node) (circuit.Operand, error) {
	if n.Polarity {
		return n.Operand, nil
	}

	key := n.Operand.Spelling()

	if cached, ok := m.negated[key]; ok {
		return cached, nil
	}

	name := key + "F"
	ref := m.emit.Declare(name)

	if err := m.emit.Emit(ref, circuit.BinaryExpr{
		Op:    circuit.OpSub,
		Left:  circuit.NewConstant(big.NewInt(1)),
		Right: n.Operand,
	}); err != nil {
		return nil, err
	}

	m.negated[key] = ref

	return ref, nil
}

// simple materializes a chain of AND-ed branch decisions by folding leaf
// signals pairwise left to right, naming each partial product after the
// concatenation of the leaf spellings consumed so far (spec.md §4.4). This
// lets two predicates that share a prefix (common in a deeply nested
// if-chain) reuse the same partial-product signal instead of
// re-multiplying it.
func (m *Materializer) simple(chain Simple) (circuit.Operand, error) {
	acc, err := m.leaf(chain[0])
	if err != nil {
		return nil, err
	}

	var prefix strings.Builder
	prefix.WriteString(chain[0].Operand.Spelling())

	if !chain[0].Polarity {
		prefix.WriteString("F")
	}

	for _, n := range chain[1:] {
		l, err := m.leaf(n)
		if err != nil {
			return nil, err
		}

		prefix.WriteString(n.Operand.Spelling())
		if !n.Polarity {
			prefix.WriteString("F")
		}

		key := prefix.String()

		if cached, ok := m.chains[key]; ok {
			acc = cached
			continue
		}

		ref := m.emit.Declare(key)
		if err := m.emit.Emit(ref, circuit.BinaryExpr{Op: circuit.OpMul, Left: acc, Right: l}); err != nil {
			return nil, err
		}

		m.chains[key] = ref
		acc = ref
	}

	return acc, nil
}

// orFold combines two already-materialized operands with the a∨b →
// (a+b)−a·b identity (circuit.OrExpr), naming the result by joining the
// two operands' spellings with "U". Folding an operand with itself returns
// it unchanged, since a∨a is a.
func (m *Materializer) orFold(a, b circuit.Operand) (circuit.Operand, error) {
	if a.Equal(b) {
		return a, nil
	}

	key := a.Spelling() + "U" + b.Spelling()

	if cached, ok := m.orFolds[key]; ok {
		return cached, nil
	}

	ref := m.emit.Declare(key)
	if err := m.emit.Emit(ref, circuit.OrExpr{A: a, B: b}); err != nil {
		return nil, err
	}

	m.orFolds[key] = ref

	return ref, nil
}
