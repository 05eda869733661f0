package driver

import (
	"stepcheck/internal/ast"
	"stepcheck/internal/diag"
	"stepcheck/internal/observ"
	"stepcheck/internal/sema"
	"stepcheck/internal/source"
)

// Result is the outcome of validating one file.
type Result struct {
	FileSet *source.FileSet
	File    *source.File
	// Doc is nil after a syntax error and when the result came from the cache.
	Doc    *ast.Document
	Bag    *diag.Bag
	Sema   sema.Result
	Timing *observ.Report
	Cached bool
}

// Valid reports whether the file produced no diagnostics.
func (r *Result) Valid() bool {
	return r != nil && r.Bag != nil && r.Bag.Len() == 0
}

// Diagnostics returns the collected diagnostics in discovery order.
func (r *Result) Diagnostics() []diag.Diagnostic {
	if r == nil || r.Bag == nil {
		return nil
	}
	return r.Bag.Items()
}

// SyntaxFailed reports whether parsing stopped at a syntax error.
func (r *Result) SyntaxFailed() bool {
	return r != nil && r.Bag != nil && r.Bag.HasSyntax()
}
