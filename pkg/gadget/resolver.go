// Package gadget resolves the include directives a translated template
// needs from the set of gadgets its component instantiations reference
// (spec.md §4.8).
//
// Grounded on the teacher's `stdlib`/`no-stdlib` gadget-lookup idiom in
// pkg/cmd/picus.go (a caller-supplied name → path table, unknown names
// silently skipped rather than treated as an error) — the nearest analogue
// in the corpus to "optionally pull in a library of named sub-circuits".
package gadget

import "github.com/consensys/zkir2circom/pkg/circuit"

// Resolve walks insts (a template's component instantiations) and looks
// up each distinct gadget name in table, returning the include paths in
// first-use order. A gadget with no entry in table is silently omitted —
// the downstream serializer, not this resolver, is responsible for
// failing if a required include ends up missing (spec.md §4.8).
func Resolve(insts []circuit.ComponentInstantiation, table map[string]string) []string {
	seen := make(map[string]bool, len(insts))

	var includes []string

	for _, inst := range insts {
		if seen[inst.Gadget] {
			continue
		}

		seen[inst.Gadget] = true

		if path, ok := table[inst.Gadget]; ok {
			includes = append(includes, path)
		}
	}

	return includes
}

// DefaultTable is the gadget_name → include_path mapping known at the
// time this translator was written (spec.md §6). The CLI front end may
// extend or replace it.
func DefaultTable() map[string]string {
	return map[string]string{
		"IsEqual": "circomlib/circuits/comparators.circom",
	}
}
