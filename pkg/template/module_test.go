package template

import (
	"testing"

	"github.com/consensys/zkir2circom/pkg/circuit"
)

func TestNewModuleResolvesIncludesFromComponents(t *testing.T) {
	tmpl := &circuit.Template{
		Name: "f",
		Instructions: []circuit.Instruction{
			circuit.ComponentInstr{Instantiation: circuit.ComponentInstantiation{LocalName: "e_EQ", Gadget: "IsEqual"}},
		},
	}

	table := map[string]string{"IsEqual": "circomlib/circuits/comparators.circom"}

	mod := NewModule(tmpl, table)

	if mod.MainTemplate != "f" {
		t.Errorf("MainTemplate = %q, want %q", mod.MainTemplate, "f")
	}

	if len(mod.Templates) != 1 || mod.Templates[0] != tmpl {
		t.Fatalf("expected the module to wrap exactly the given template")
	}

	if len(mod.Includes) != 1 || mod.Includes[0] != "circomlib/circuits/comparators.circom" {
		t.Errorf("Includes = %v, want one entry for IsEqual", mod.Includes)
	}
}

func TestNewModuleNoComponentsNoIncludes(t *testing.T) {
	tmpl := &circuit.Template{Name: "f"}

	mod := NewModule(tmpl, map[string]string{"IsEqual": "circomlib/circuits/comparators.circom"})

	if len(mod.Includes) != 0 {
		t.Errorf("expected no includes for a template with no component instantiations, got %v", mod.Includes)
	}
}
