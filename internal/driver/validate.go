package driver

import (
	"context"
	"fmt"
	"time"

	"stepcheck/internal/diag"
	"stepcheck/internal/lexer"
	"stepcheck/internal/observ"
	"stepcheck/internal/parser"
	"stepcheck/internal/sema"
	"stepcheck/internal/source"
	"stepcheck/internal/trace"
)

// checkSize подменяется в тестах: настоящий буфер на 4 GiB не выделить.
var checkSize = source.CheckSize

// Validate checks in-memory content. name is only used in reports.
// Malformed input never fails: every problem ends up in Result.Bag.
// Content over 4 GiB yields a single IO diagnostic.
func Validate(ctx context.Context, name string, content []byte, opts Options) *Result {
	fs := source.NewFileSet()
	if err := checkSize(int64(len(content))); err != nil {
		return loadFailure(fs, fs.AddVirtual(name, nil), err, opts)
	}
	id := fs.AddVirtual(name, content)
	return validateLoaded(ctx, fs, id, opts)
}

// ValidateFile loads path and validates it. The error is reserved for I/O.
func ValidateFile(ctx context.Context, path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return validateLoaded(ctx, fs, id, opts), nil
}

// validateLoaded runs lex+parse and, when the document parsed, sema on a
// file already stored in fs. Safe to call concurrently for different ids.
func validateLoaded(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) *Result {
	file := fs.Get(id)
	ctx, span := trace.Start(ctx, trace.ScopeFile, "file")
	span.WithFile(file.Path)

	res := &Result{
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}

	key := cacheKey(file, opts)
	if opts.Cache != nil {
		if payload, ok := opts.Cache.lookup(key); ok {
			payload.restore(res, id)
			res.Cached = true
			trace.Point(ctx, trace.ScopeFile, "cache", "hit")
			finishFile(ctx, span, res, "cached")
			return res
		}
	}

	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}

	rep := diag.BagReporter{Bag: res.Bag}
	runPhase(ctx, timer, opts.Observer, file.Path, PhaseLexParse, func() string {
		pr := parser.ParseFile(lexer.New(file, lexer.Options{}), parser.Options{
			MaxDepth:   opts.MaxDepth,
			OnlyHeader: opts.OnlyHeader,
			Reporter:   markerReporter{ctx: ctx, next: rep, file: file},
		})
		res.Doc = pr.Doc
		if !pr.OK {
			res.Doc = nil
			return "syntax error"
		}
		n := pr.Doc.InstanceCount()
		span.WithInstances(n)
		return fmt.Sprintf("%d instances", n)
	})

	if res.Doc != nil {
		runPhase(ctx, timer, opts.Observer, file.Path, PhaseSema, func() string {
			res.Sema = sema.Check(res.Doc, sema.Options{
				Reporter:        rep,
				CheckReferences: opts.CheckReferences,
				CheckHeader:     opts.CheckHeader,
				OnlyHeader:      opts.OnlyHeader,
			})
			return fmt.Sprintf("%d issues", res.Sema.Issues())
		})
	}

	if timer != nil {
		report := timer.Report()
		res.Timing = &report
	}

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, newPayload(res)); err != nil {
			trace.Point(ctx, trace.ScopeFile, "cache", "write failed: "+err.Error())
		}
	}

	finishFile(ctx, span, res, verdict(res))
	return res
}

// finishFile closes the file span and counts the file for the heartbeat.
func finishFile(ctx context.Context, span *trace.Span, res *Result, detail string) {
	instances := 0
	if res.Doc != nil {
		instances = res.Doc.InstanceCount()
	}
	span.WithDiagnostics(res.Bag.Len()).End(detail)
	trace.ProgressFrom(ctx).FileDone(instances, res.Bag.Len())
}

// runPhase wraps one pass with a trace span, the timer and the observer.
func runPhase(ctx context.Context, timer *observ.Timer, obs PhaseObserver, path, name string, fn func() string) {
	_, span := trace.Start(ctx, trace.ScopePass, name)
	idx := -1
	if timer != nil {
		idx = timer.Begin(name)
	}
	obs.notify(PhaseEvent{File: path, Name: name, Status: PhaseStart})
	start := time.Now()

	note := fn()

	if timer != nil {
		timer.End(idx, note)
	}
	obs.notify(PhaseEvent{File: path, Name: name, Status: PhaseEnd, Elapsed: time.Since(start)})
	span.End(note)
}

func verdict(res *Result) string {
	if res.Valid() {
		return "valid"
	}
	return "invalid"
}
