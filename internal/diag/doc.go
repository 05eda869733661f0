// Package diag defines the diagnostic model shared by the lexer, parser and
// semantic validator.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Kind – Syntax (fatal, parsing stops), Semantic (collected) or IO.
//   - Severity – always Error; restored verbatim from the cache.
//   - Code – compact numeric identifier (see codes.go) with a stable string form.
//   - Message – the human text, e.g. "Unexpected comma (',')".
//   - Primary – the source.Span the report points at.
//   - Expected – terminal names legal at the failure point (Syntax only).
//   - Found – class and text of the offending token (Syntax only).
//   - Notes – optional secondary spans, e.g. "first declared here".
//
// # Emitting diagnostics
//
// Phases report through a Reporter. ReportBuilder collects the optional
// parts (expected set, found token, notes) before Emit. BagReporter stores
// into a Bag, which enforces the per-file limit and keeps discovery order.
//
// Package diag does no formatting beyond the one-line short form; the
// multi-line report layout lives in internal/diagfmt.
package diag
