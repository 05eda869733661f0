package sema

import (
	"sort"

	"stepcheck/internal/ast"
	"stepcheck/internal/diag"
)

// Options configure a semantic pass over a document.
type Options struct {
	Reporter diag.Reporter
	// CheckReferences reports #N parameters that name no instance.
	CheckReferences bool
	// CheckHeader verifies parameter counts of the standard header entities.
	CheckHeader bool
	// OnlyHeader: the document has no data sections; implies CheckHeader.
	OnlyHeader bool
}

// Result summarises one pass.
type Result struct {
	Instances  int // distinct instance names
	Duplicates int
	Unresolved int
	BadHeader  int
}

// Issues returns how many diagnostics the pass produced.
func (r Result) Issues() int {
	return r.Duplicates + r.Unresolved + r.BadHeader
}

// Check validates a successfully parsed document without modifying it.
// Diagnostics are reported in document order.
func Check(doc *ast.Document, opts Options) Result {
	var res Result
	if doc == nil {
		return res
	}
	c := checker{doc: doc, result: &res}

	if opts.CheckHeader || opts.OnlyHeader {
		c.checkHeader()
	}
	if !opts.OnlyHeader {
		reg := c.register()
		res.Instances = len(reg)
		if opts.CheckReferences {
			c.checkReferences(reg)
		}
	}

	sort.SliceStable(c.found, func(i, j int) bool {
		return c.found[i].Primary.Start < c.found[j].Primary.Start
	})
	if opts.Reporter != nil {
		for _, d := range c.found {
			opts.Reporter.Report(d)
		}
	}
	return res
}

type checker struct {
	doc    *ast.Document
	result *Result
	found  []diag.Diagnostic
}

func (c *checker) add(b *diag.ReportBuilder) {
	c.found = append(c.found, b.Diagnostic())
}
