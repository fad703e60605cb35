package template

import (
	"github.com/consensys/zkir2circom/pkg/circuit"
	"github.com/consensys/zkir2circom/pkg/gadget"
)

// Module is the complete hand-off unit between the core translator and an
// external serializer (spec.md §1, §6): a function's assembled template
// plus the include directives its gadgets require and the name of the
// template that should be instantiated as `main` (SPEC_FULL.md §2.1).
// Building one is still the core's concern — rendering it to text is not
// (pkg/render).
type Module struct {
	Templates    []*circuit.Template
	Includes     []string
	MainTemplate string
}

// NewModule wraps a single translated template as a one-template Module,
// resolving its gadget instantiations against table via pkg/gadget
// (spec.md §4.8). table is normally lower.Config's Gadgets field.
func NewModule(tmpl *circuit.Template, table map[string]string) *Module {
	return &Module{
		Templates:    []*circuit.Template{tmpl},
		Includes:     gadget.Resolve(tmpl.ComponentInstantiations(), table),
		MainTemplate: tmpl.Name,
	}
}
