// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/consensys/zkir2circom/pkg/ir"
)

// irModule is the on-disk shape an IR file is read from: a flat list of
// functions, each mirroring ir.Function's field names directly so the
// JSON has no translation layer of its own to maintain. Loading IR from
// disk is the CLI's concern, not the core translator's (pkg/ir's doc
// comment) — grounded on the teacher's cmd/main.go, which reads a bin
// file the same way: os.ReadFile followed by encoding/json.Unmarshal into
// a plain struct, no custom decoder.
type irModule struct {
	Functions []irFunction `json:"functions"`
}

type irFunction struct {
	Name   string     `json:"name"`
	Params []irParam  `json:"params"`
	Blocks []irBlock  `json:"blocks"`
}

type irParam struct {
	Name string `json:"name"`
}

type irBlock struct {
	Name   string          `json:"name"`
	Instrs []irInstruction `json:"instrs"`
	Term   irTerminator    `json:"term"`
}

type irInstruction struct {
	Dest     string      `json:"dest"`
	Op       string      `json:"op"`
	Name     string      `json:"name"`
	Operands []irOperand `json:"operands"`
}

// irTerminator mirrors ir.Terminator's exported shape. Kind is one of
// "return", "jump", "cond_branch".
type irTerminator struct {
	Kind        string     `json:"kind"`
	HasValue    bool       `json:"has_value"`
	Value       irOperand  `json:"value"`
	Target      string     `json:"target"`
	Cond        irOperand  `json:"cond"`
	TrueTarget  string     `json:"true_target"`
	FalseTarget string     `json:"false_target"`
}

// irOperand mirrors ir.Operand. Kind is "local" or "const"; exactly one of
// Local/Const is meaningful depending on Kind.
type irOperand struct {
	Kind  string `json:"kind"`
	Local string `json:"local"`
	Const int64  `json:"const"`
}

// LoadModule reads and decodes an IR module from filename.
func LoadModule(filename string) (*irModule, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}

	var mod irModule
	if err := json.Unmarshal(data, &mod); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}

	return &mod, nil
}

// FindFunction returns the single function in mod whose name contains
// substr, per spec.md §6's CLI collaborator contract: zero or more than
// one match is an error.
func FindFunction(mod *irModule, substr string) (*irFunction, error) {
	var matches []*irFunction

	for i := range mod.Functions {
		if strings.Contains(mod.Functions[i].Name, substr) {
			matches = append(matches, &mod.Functions[i])
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no function matching %q found", substr)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}

		return nil, fmt.Errorf("more than one function matching %q found: %s", substr, strings.Join(names, ", "))
	}
}

func convertOperand(op irOperand) (ir.Operand, error) {
	switch op.Kind {
	case "local":
		return ir.Local(op.Local), nil
	case "const":
		return ir.ConstInt(op.Const), nil
	default:
		return ir.Operand{}, fmt.Errorf("unknown operand kind %q", op.Kind)
	}
}

func convertTerminator(t irTerminator) (ir.Terminator, error) {
	switch t.Kind {
	case "return":
		if !t.HasValue {
			return ir.ReturnVoid(), nil
		}

		v, err := convertOperand(t.Value)
		if err != nil {
			return ir.Terminator{}, err
		}

		return ir.Return(v), nil
	case "jump":
		return ir.Jump(t.Target), nil
	case "cond_branch":
		cond, err := convertOperand(t.Cond)
		if err != nil {
			return ir.Terminator{}, err
		}

		return ir.CondBranch(cond, t.TrueTarget, t.FalseTarget), nil
	default:
		return ir.Terminator{}, fmt.Errorf("unknown terminator kind %q", t.Kind)
	}
}

// ToFunction converts fn, the on-disk JSON shape, into the ir.Function the
// translator consumes.
func ToFunction(fn *irFunction) (ir.Function, error) {
	out := ir.Function{Name: fn.Name}

	for _, p := range fn.Params {
		out.Params = append(out.Params, ir.Param{Name: p.Name})
	}

	for _, b := range fn.Blocks {
		block := ir.Block{Name: b.Name}

		for _, instr := range b.Instrs {
			operands := make([]ir.Operand, 0, len(instr.Operands))

			for _, o := range instr.Operands {
				converted, err := convertOperand(o)
				if err != nil {
					return ir.Function{}, fmt.Errorf("block %q: instruction %q: %w", b.Name, instr.Dest, err)
				}

				operands = append(operands, converted)
			}

			block.Instrs = append(block.Instrs, ir.Instruction{
				Dest:     instr.Dest,
				Op:       ir.Op(instr.Op),
				Name:     instr.Name,
				Operands: operands,
			})
		}

		term, err := convertTerminator(b.Term)
		if err != nil {
			return ir.Function{}, fmt.Errorf("block %q: terminator: %w", b.Name, err)
		}

		block.Term = term
		out.Blocks = append(out.Blocks, block)
	}

	return out, nil
}
