// Package predicate computes, for each CFG block, the symbolic path
// predicate under which it executes (spec.md §4.4), and lazily,
// memoizedly materializes predicates into circuit signals.
//
// Grounded on pkg/asm/compiler/branch_table.go's Branch/branchConjunct
// (And/Or over a sorted set of conjuncts) — the teacher's own path-
// condition compiler for its register machine — restated with the
// deterministic naming conventions spec.md §4.4 requires for a circuit
// signal table rather than a polynomial column.
package predicate

import (
	"strings"

	"github.com/consensys/zkir2circom/pkg/cfg"
	"github.com/consensys/zkir2circom/pkg/circuit"
)

// Node is one link in a simple predicate's chain: an edge operand and the
// polarity (true/false arm) that was taken.
type Node struct {
	Operand  circuit.Operand
	Polarity bool
}

// Simple is an ordered chain of branch decisions along a single path.
type Simple []Node

// Equal reports whether two simple predicates are structurally identical.
func (s Simple) Equal(other Simple) bool {
	if len(s) != len(other) {
		return false
	}

	for i := range s {
		if s[i].Polarity != other[i].Polarity || !s[i].Operand.Equal(other[i].Operand) {
			return false
		}
	}

	return true
}

// key returns the deterministic concatenated name spec.md §4.4 assigns to
// a simple predicate's materialized signal: the operand spelling plus ""
// or "F" per node polarity, concatenated across the chain.
func (s Simple) key() string {
	var b strings.Builder

	for _, n := range s {
		b.WriteString(n.Operand.Spelling())

		if !n.Polarity {
			b.WriteString("F")
		}
	}

	return b.String()
}

// Predicate is a block's path predicate: a disjunction (OR) of simple
// predicates. A Predicate with no disjuncts is the empty predicate — the
// block always executes (spec.md §3, §4.4).
type Predicate struct {
	Disjuncts []Simple
}

// Empty constructs the always-true predicate.
func Empty() Predicate { return Predicate{} }

// IsEmpty reports whether p is the always-true predicate.
func (p Predicate) IsEmpty() bool { return len(p.Disjuncts) == 0 }

// Equal reports whether two predicates are structurally identical
// (same disjuncts, same order).
func (p Predicate) Equal(other Predicate) bool {
	if len(p.Disjuncts) != len(other.Disjuncts) {
		return false
	}

	for i := range p.Disjuncts {
		if !p.Disjuncts[i].Equal(other.Disjuncts[i]) {
			return false
		}
	}

	return true
}

// key returns a canonical string identifying this predicate's structure.
// The Materializer does not use it: it caches per negated leaf, chain
// prefix and OR-fold name instead.
func (p Predicate) key() string {
	if p.IsEmpty() {
		return ""
	}

	keys := make([]string, len(p.Disjuncts))
	for i, d := range p.Disjuncts {
		keys[i] = d.key()
	}

	return strings.Join(keys, "|")
}

// or combines two predicates such that the result holds whenever either
// holds. An empty (always-true) operand absorbs the other, since
// "true OR anything" is true. Exact-duplicate disjuncts are dropped so
// that merging the same path twice (e.g. a diamond CFG with two Merge
// edges from blocks sharing a predicate) does not grow the disjunct list
// without bound.
func or(a, b Predicate) Predicate {
	if a.IsEmpty() || b.IsEmpty() {
		return Empty()
	}

	out := Predicate{Disjuncts: append([]Simple{}, a.Disjuncts...)}

	for _, d := range b.Disjuncts {
		if !containsSimple(out.Disjuncts, d) {
			out.Disjuncts = append(out.Disjuncts, d)
		}
	}

	return out
}

func containsSimple(disjuncts []Simple, d Simple) bool {
	for _, e := range disjuncts {
		if e.Equal(d) {
			return true
		}
	}

	return false
}

// edgeResult derives the predicate an edge contributes to its child block,
// given its parent's predicate (spec.md §4.4):
//   - Merge inherits the parent's predicate unchanged.
//   - TrueBranch/FalseBranch appends a polarity-tagged leaf node to every
//     one of the parent's disjuncts (or starts a fresh one-node chain if
//     the parent was unconditional).
func edgeResult(parent Predicate, edge cfg.ParentEdge) Predicate {
	if edge.Kind == cfg.Merge {
		return parent
	}

	leaf := Node{Operand: edge.Operand, Polarity: edge.Kind == cfg.TrueBranch}

	if parent.IsEmpty() {
		return Predicate{Disjuncts: []Simple{{leaf}}}
	}

	disjuncts := make([]Simple, len(parent.Disjuncts))
	for i, d := range parent.Disjuncts {
		nd := make(Simple, len(d)+1)
		copy(nd, d)
		nd[len(d)] = leaf
		disjuncts[i] = nd
	}

	return Predicate{Disjuncts: disjuncts}
}

// FromEdges derives a block's predicate from its parents' predicates and
// incoming edge kinds (spec.md §4.4). parentOf resolves an already-
// computed parent predicate by block name; callers must process blocks in
// topological order so every parent's predicate is available by the time
// its children are visited.
func FromEdges(parentOf func(name string) Predicate, edges []cfg.ParentEdge) Predicate {
	if len(edges) == 0 {
		return Empty()
	}

	result := edgeResult(parentOf(edges[0].Parent), edges[0])

	for _, e := range edges[1:] {
		result = or(result, edgeResult(parentOf(e.Parent), e))
	}

	return result
}
