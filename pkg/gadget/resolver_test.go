package gadget

import (
	"reflect"
	"testing"

	"github.com/consensys/zkir2circom/pkg/circuit"
)

func TestResolveDedupesAndPreservesFirstUseOrder(t *testing.T) {
	insts := []circuit.ComponentInstantiation{
		{LocalName: "a_EQ", Gadget: "IsEqual"},
		{LocalName: "b_LT", Gadget: "LessThan"},
		{LocalName: "c_EQ", Gadget: "IsEqual"},
	}

	table := map[string]string{
		"IsEqual":  "circomlib/circuits/comparators.circom",
		"LessThan": "circomlib/circuits/comparators.circom",
	}

	got := Resolve(insts, table)
	want := []string{"circomlib/circuits/comparators.circom", "circomlib/circuits/comparators.circom"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve() = %v, want %v", got, want)
	}
}

func TestResolveSkipsUnknownGadget(t *testing.T) {
	insts := []circuit.ComponentInstantiation{{LocalName: "x_FOO", Gadget: "Unknown"}}

	got := Resolve(insts, DefaultTable())
	if len(got) != 0 {
		t.Errorf("expected no includes for an unknown gadget, got %v", got)
	}
}

func TestDefaultTableHasIsEqual(t *testing.T) {
	table := DefaultTable()
	if _, ok := table["IsEqual"]; !ok {
		t.Error("expected DefaultTable to include an IsEqual entry")
	}
}
