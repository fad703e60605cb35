// Package cfg builds the control-flow graph of an ir.Function: topological
// block order and, for each block, its incoming edges annotated with kind
// (spec.md §4.3). The CFG is required to be acyclic; a cycle is a hard
// failure.
//
// Grounded on original_source's control_flow.rs (compute_cfg /
// topological_sort / parents), restated in the teacher's idiom of
// name-keyed children/parents maps (pkg/asm/compiler/function.go) so that
// topological sort only ever moves block names around (DESIGN.md).
package cfg

import (
	"fmt"

	"github.com/consensys/zkir2circom/pkg/circuit"
	"github.com/consensys/zkir2circom/pkg/ir"
)

// EdgeKind identifies how a parent block reaches a child block
// (spec.md §4.3).
type EdgeKind int

// The three edge kinds.
const (
	// TrueBranch: the parent's conditional branch took the true arm.
	TrueBranch EdgeKind = iota
	// FalseBranch: the parent's conditional branch took the false arm.
	FalseBranch
	// Merge: the parent reached the child via an unconditional branch.
	Merge
)

// ParentEdge is one incoming edge of a block.
type ParentEdge struct {
	Parent  string
	Kind    EdgeKind
	Operand circuit.Operand // zero value (nil) for Merge
}

// CycleError reports that the block set contains a cycle (spec.md §4.3,
// §7): either no block had in-degree zero to seed the topological sort,
// or the sort finished short of the full block count.
type CycleError struct {
	Message string
}

func (e *CycleError) Error() string { return e.Message }

// Graph is the result of building a function's CFG: blocks in topological
// order, and a parents table keyed by block name.
type Graph struct {
	Sorted  []ir.Block
	Parents map[string][]ParentEdge
}

// childInfo classifies a block's terminator for successor-walking
// purposes.
type childInfo struct {
	kind     ir.TermKind
	one      string // Jump target
	cond     circuit.Operand
	trueDst  string
	falseDst string
}

// Build constructs the CFG for a function's blocks. Only return,
// unconditional-branch and conditional-branch terminators are supported
// (spec.md §4.3); the adapter is assumed to have already rejected any
// other terminator kind when constructing the ir.Block values (the Term
// field's Kind is one of the three TermKind constants by construction).
func Build(blocks []ir.Block) (*Graph, error) {
	index := make(map[string]ir.Block, len(blocks))
	children := make(map[string]childInfo, len(blocks))
	order := make([]string, 0, len(blocks))

	for _, b := range blocks {
		index[b.Name] = b
		order = append(order, b.Name)

		switch b.Term.Kind {
		case ir.TermReturn:
			children[b.Name] = childInfo{kind: ir.TermReturn}
		case ir.TermJump:
			children[b.Name] = childInfo{kind: ir.TermJump, one: b.Term.Target}
		case ir.TermCondBranch:
			cond, err := ir.ConvertOperand(b.Term.Cond)
			if err != nil {
				return nil, err
			}

			children[b.Name] = childInfo{
				kind:     ir.TermCondBranch,
				cond:     cond,
				trueDst:  b.Term.TrueTarget,
				falseDst: b.Term.FalseTarget,
			}
		default:
			return nil, &ir.UnsupportedError{Message: fmt.Sprintf("block %q has unsupported terminator", b.Name)}
		}
	}

	parents := buildParents(order, children)
	sorted, err := topoSort(order, children)

	if err != nil {
		return nil, err
	}

	sortedBlocks := make([]ir.Block, 0, len(sorted))
	for _, name := range sorted {
		sortedBlocks = append(sortedBlocks, index[name])
	}

	return &Graph{Sorted: sortedBlocks, Parents: parents}, nil
}

// buildParents walks blocks in the function's declared order (not map
// iteration order, which Go randomizes) so that each child's incoming-edge
// list is itself deterministic — required for CFG determinism
// (spec.md §8).
func buildParents(order []string, children map[string]childInfo) map[string][]ParentEdge {
	parents := make(map[string][]ParentEdge)

	for _, name := range order {
		c := children[name]

		switch c.kind {
		case ir.TermReturn:
			// no successors
		case ir.TermJump:
			parents[c.one] = append(parents[c.one], ParentEdge{Parent: name, Kind: Merge})
		case ir.TermCondBranch:
			parents[c.trueDst] = append(parents[c.trueDst], ParentEdge{Parent: name, Kind: TrueBranch, Operand: c.cond})
			parents[c.falseDst] = append(parents[c.falseDst], ParentEdge{Parent: name, Kind: FalseBranch, Operand: c.cond})
		}
	}

	return parents
}

// topoSort runs Kahn's algorithm over the block set, using order (the
// function's declared block order) to seed the initial queue
// deterministically and to break ties as successors are discovered
// (spec.md §4.3).
func topoSort(order []string, children map[string]childInfo) ([]string, error) {
	inDegree := make(map[string]int, len(order))
	for _, name := range order {
		inDegree[name] = 0
	}

	for _, c := range children {
		switch c.kind {
		case ir.TermJump:
			if _, ok := inDegree[c.one]; ok {
				inDegree[c.one]++
			}
		case ir.TermCondBranch:
			if _, ok := inDegree[c.trueDst]; ok {
				inDegree[c.trueDst]++
			}

			if _, ok := inDegree[c.falseDst]; ok {
				inDegree[c.falseDst]++
			}
		}
	}

	var queue []string
	for _, name := range order {
		if inDegree[name] == 0 {
			queue = append(queue, name)
		}
	}

	if len(queue) == 0 && len(order) != 0 {
		return nil, &CycleError{Message: "cyclic CFG: no block has in-degree zero"}
	}

	sorted := make([]string, 0, len(order))

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		sorted = append(sorted, node)

		var next []string

		switch c := children[node]; c.kind {
		case ir.TermJump:
			next = []string{c.one}
		case ir.TermCondBranch:
			next = []string{c.trueDst, c.falseDst}
		}

		for _, child := range next {
			if _, ok := inDegree[child]; !ok {
				continue
			}

			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	if len(sorted) != len(order) {
		return nil, &CycleError{Message: "cyclic CFG: topological sort did not cover all blocks"}
	}

	return sorted, nil
}
