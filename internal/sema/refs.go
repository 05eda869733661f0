package sema

import (
	"fmt"

	"stepcheck/internal/ast"
	"stepcheck/internal/diag"
)

// checkReferences reports every #N parameter whose target is not declared
// anywhere in the document. Forward references are fine.
func (c *checker) checkReferences(reg map[uint64]*ast.Instance) {
	for inst := range c.doc.Instances() {
		for _, params := range inst.ParamLists() {
			for _, p := range params {
				c.doc.Walk(p, func(_ ast.ValueID, v *ast.Value) {
					if v.Kind != ast.ValueRef {
						return
					}
					if _, ok := reg[v.Ref]; ok {
						return
					}
					c.result.Unresolved++
					c.add(diag.ReportSemantic(nil, diag.SemaUnresolvedReference, v.Span,
						fmt.Sprintf("Unresolved instance reference #%d", v.Ref)).
						WithArg("name", v.Ref))
				})
			}
		}
	}
}
