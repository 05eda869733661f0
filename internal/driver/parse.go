package driver

import (
	"context"
	"fmt"

	"stepcheck/internal/diag"
	"stepcheck/internal/lexer"
	"stepcheck/internal/parser"
	"stepcheck/internal/source"
	"stepcheck/internal/trace"
)

// Parse loads path and builds its document without the semantic pass.
// Result.Doc stays nil when the file has a syntax error.
func Parse(ctx context.Context, path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	file := fs.Get(fileID)

	ctx, span := trace.Start(ctx, trace.ScopeFile, "parse")
	defer span.End("")

	bag := diag.NewBag(opts.MaxDiagnostics)
	res := &Result{FileSet: fs, File: file, Bag: bag}
	runPhase(ctx, nil, opts.Observer, file.Path, PhaseLexParse, func() string {
		pr := parser.ParseFile(lexer.New(file, lexer.Options{}), parser.Options{
			MaxDepth:   opts.MaxDepth,
			OnlyHeader: opts.OnlyHeader,
			Reporter:   markerReporter{ctx: ctx, next: diag.BagReporter{Bag: bag}, file: file},
		})
		if !pr.OK {
			return "syntax error"
		}
		res.Doc = pr.Doc
		return fmt.Sprintf("%d instances", pr.Doc.InstanceCount())
	})
	return res, nil
}
