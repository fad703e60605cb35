package predicate

import (
	"testing"

	"github.com/consensys/zkir2circom/pkg/cfg"
	"github.com/consensys/zkir2circom/pkg/circuit"
)

func TestFromEdgesNoEdgesIsEmpty(t *testing.T) {
	pred := FromEdges(func(string) Predicate { return Empty() }, nil)
	if !pred.IsEmpty() {
		t.Errorf("expected the empty predicate for a block with no incoming edges, got %+v", pred)
	}
}

func TestFromEdgesMergeInheritsParent(t *testing.T) {
	f := circuit.NewSignalRef("f")
	parent := Predicate{Disjuncts: []Simple{{{Operand: f, Polarity: true}}}}

	pred := FromEdges(func(string) Predicate { return parent }, []cfg.ParentEdge{
		{Parent: "p", Kind: cfg.Merge},
	})

	if !pred.Equal(parent) {
		t.Errorf("Merge edge should inherit the parent predicate unchanged, got %+v", pred)
	}
}

func TestFromEdgesTrueBranchAppendsLeaf(t *testing.T) {
	c := circuit.NewSignalRef("c")

	pred := FromEdges(func(string) Predicate { return Empty() }, []cfg.ParentEdge{
		{Parent: "entry", Kind: cfg.TrueBranch, Operand: c},
	})

	want := Predicate{Disjuncts: []Simple{{{Operand: c, Polarity: true}}}}
	if !pred.Equal(want) {
		t.Errorf("got %+v, want %+v", pred, want)
	}
}

func TestFromEdgesFalseBranchAppendsNegatedLeaf(t *testing.T) {
	c := circuit.NewSignalRef("c")

	pred := FromEdges(func(string) Predicate { return Empty() }, []cfg.ParentEdge{
		{Parent: "entry", Kind: cfg.FalseBranch, Operand: c},
	})

	want := Predicate{Disjuncts: []Simple{{{Operand: c, Polarity: false}}}}
	if !pred.Equal(want) {
		t.Errorf("got %+v, want %+v", pred, want)
	}
}

func TestFromEdgesMergesTwoPredicates(t *testing.T) {
	p1 := circuit.NewSignalRef("p1")
	p2 := circuit.NewSignalRef("p2")

	parents := map[string]Predicate{
		"a": {Disjuncts: []Simple{{{Operand: p1, Polarity: true}}}},
		"b": {Disjuncts: []Simple{{{Operand: p2, Polarity: true}}}},
	}

	pred := FromEdges(func(name string) Predicate { return parents[name] }, []cfg.ParentEdge{
		{Parent: "a", Kind: cfg.Merge},
		{Parent: "b", Kind: cfg.Merge},
	})

	if len(pred.Disjuncts) != 2 {
		t.Fatalf("expected 2 disjuncts after merging two distinct paths, got %d", len(pred.Disjuncts))
	}
}

func TestFromEdgesDropsDuplicateDisjuncts(t *testing.T) {
	p1 := circuit.NewSignalRef("p1")

	shared := Predicate{Disjuncts: []Simple{{{Operand: p1, Polarity: true}}}}
	parents := map[string]Predicate{"a": shared, "b": shared}

	pred := FromEdges(func(name string) Predicate { return parents[name] }, []cfg.ParentEdge{
		{Parent: "a", Kind: cfg.Merge},
		{Parent: "b", Kind: cfg.Merge},
	})

	if len(pred.Disjuncts) != 1 {
		t.Errorf("expected duplicate disjuncts to collapse to 1, got %d", len(pred.Disjuncts))
	}
}

func TestOrWithEmptyAbsorbs(t *testing.T) {
	p1 := circuit.NewSignalRef("p1")
	nonEmpty := Predicate{Disjuncts: []Simple{{{Operand: p1, Polarity: true}}}}

	pred := FromEdges(func(name string) Predicate {
		if name == "a" {
			return Empty()
		}

		return nonEmpty
	}, []cfg.ParentEdge{
		{Parent: "a", Kind: cfg.Merge},
		{Parent: "b", Kind: cfg.Merge},
	})

	if !pred.IsEmpty() {
		t.Errorf("expected OR-ing with the always-true predicate to absorb, got %+v", pred)
	}
}
