package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/zkir2circom/pkg/ir"
)

const sampleModuleJSON = `{
  "functions": [
    {
      "name": "pure_mul",
      "params": [{"name": "%x"}],
      "blocks": [
        {
          "name": "entry",
          "instrs": [
            {"dest": "%r", "op": "mul", "operands": [{"kind": "local", "local": "%x"}, {"kind": "local", "local": "%x"}]}
          ],
          "term": {"kind": "return", "has_value": true, "value": {"kind": "local", "local": "%r"}}
        }
      ]
    },
    {
      "name": "pure_add",
      "params": [{"name": "%x"}],
      "blocks": [
        {
          "name": "entry",
          "instrs": [],
          "term": {"kind": "return", "has_value": true, "value": {"kind": "const", "const": 19}}
        }
      ]
    }
  ]
}`

func writeSampleModule(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "module.json")
	if err := os.WriteFile(path, []byte(sampleModuleJSON), 0644); err != nil {
		t.Fatalf("writing sample module: %v", err)
	}

	return path
}

func TestLoadModuleRoundTrips(t *testing.T) {
	path := writeSampleModule(t)

	mod, err := LoadModule(path)
	if err != nil {
		t.Fatalf("LoadModule: %v", err)
	}

	if len(mod.Functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(mod.Functions))
	}

	if mod.Functions[0].Name != "pure_mul" {
		t.Errorf("Functions[0].Name = %q, want %q", mod.Functions[0].Name, "pure_mul")
	}
}

func TestLoadModuleMissingFile(t *testing.T) {
	_, err := LoadModule(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err == nil {
		t.Fatal("expected an error reading a missing file")
	}
}

func TestFindFunctionExactlyOneMatch(t *testing.T) {
	path := writeSampleModule(t)

	mod, err := LoadModule(path)
	if err != nil {
		t.Fatalf("LoadModule: %v", err)
	}

	fn, err := FindFunction(mod, "pure_mul")
	if err != nil {
		t.Fatalf("FindFunction: %v", err)
	}

	if fn.Name != "pure_mul" {
		t.Errorf("Name = %q, want %q", fn.Name, "pure_mul")
	}
}

func TestFindFunctionNoMatch(t *testing.T) {
	path := writeSampleModule(t)

	mod, err := LoadModule(path)
	if err != nil {
		t.Fatalf("LoadModule: %v", err)
	}

	if _, err := FindFunction(mod, "nonexistent"); err == nil {
		t.Fatal("expected an error when no function matches")
	}
}

func TestFindFunctionAmbiguousMatch(t *testing.T) {
	path := writeSampleModule(t)

	mod, err := LoadModule(path)
	if err != nil {
		t.Fatalf("LoadModule: %v", err)
	}

	// "pure_" matches both pure_mul and pure_add.
	if _, err := FindFunction(mod, "pure_"); err == nil {
		t.Fatal("expected an error when more than one function matches")
	}
}

func TestToFunctionConvertsBlocksAndOperands(t *testing.T) {
	path := writeSampleModule(t)

	mod, err := LoadModule(path)
	if err != nil {
		t.Fatalf("LoadModule: %v", err)
	}

	match, err := FindFunction(mod, "pure_mul")
	if err != nil {
		t.Fatalf("FindFunction: %v", err)
	}

	fn, err := ToFunction(match)
	if err != nil {
		t.Fatalf("ToFunction: %v", err)
	}

	if fn.Name != "pure_mul" {
		t.Errorf("Name = %q, want %q", fn.Name, "pure_mul")
	}

	if len(fn.Params) != 1 || fn.Params[0].Name != "%x" {
		t.Fatalf("unexpected params: %+v", fn.Params)
	}

	if len(fn.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(fn.Blocks))
	}

	block := fn.Blocks[0]
	if len(block.Instrs) != 1 || block.Instrs[0].Op != ir.OpMul {
		t.Fatalf("unexpected instructions: %+v", block.Instrs)
	}

	if block.Term.Kind != ir.TermReturn || !block.Term.HasValue {
		t.Fatalf("unexpected terminator: %+v", block.Term)
	}
}

func TestToFunctionRejectsUnknownOperandKind(t *testing.T) {
	fn := &irFunction{
		Name: "bad",
		Blocks: []irBlock{
			{
				Name: "entry",
				Instrs: []irInstruction{
					{Dest: "%r", Op: "mul", Operands: []irOperand{{Kind: "mystery"}}},
				},
				Term: irTerminator{Kind: "return", HasValue: false},
			},
		},
	}

	if _, err := ToFunction(fn); err == nil {
		t.Fatal("expected an error converting an unknown operand kind")
	}
}

func TestToFunctionRejectsUnknownTerminatorKind(t *testing.T) {
	fn := &irFunction{
		Name: "bad",
		Blocks: []irBlock{
			{Name: "entry", Term: irTerminator{Kind: "mystery"}},
		},
	}

	if _, err := ToFunction(fn); err == nil {
		t.Fatal("expected an error converting an unknown terminator kind")
	}
}
