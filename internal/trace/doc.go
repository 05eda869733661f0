// Package trace records what the validator is doing: one span per driver
// run, per file and per pass (lex+parse, sema).
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	stepcheck validate --trace=- --trace-level=detail model.ifc
//
// # Architecture
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer, dumped when a worker crashes
//   - MultiTracer: combines multiple tracers
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Only crash dumps
//   - LevelPhase: Driver and file boundaries
//   - LevelDetail: Passes inside every file
//   - LevelDebug: Everything
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "sema")
//	defer span.End("")
package trace
