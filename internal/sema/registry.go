package sema

import (
	"fmt"

	"stepcheck/internal/ast"
	"stepcheck/internal/diag"
)

// register builds the instance registry. The first declaration of a name
// wins; every later one is reported at its own statement.
func (c *checker) register() map[uint64]*ast.Instance {
	reg := make(map[uint64]*ast.Instance, c.doc.InstanceCount())
	for inst := range c.doc.Instances() {
		first, seen := reg[inst.ID]
		if !seen {
			reg[inst.ID] = inst
			continue
		}
		c.result.Duplicates++
		c.add(diag.ReportSemantic(nil, diag.SemaDuplicateInstance, inst.Span,
			fmt.Sprintf("Duplicate instance name #%d", inst.ID)).
			WithArg("name", inst.ID).
			WithNote(first.Span, "first declared here"))
	}
	return reg
}
