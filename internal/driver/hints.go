package driver

import (
	"context"
	"slices"

	"stepcheck/internal/dialect"
	"stepcheck/internal/diag"
	"stepcheck/internal/source"
	"stepcheck/internal/token"
	"stepcheck/internal/trace"
)

// markerReporter adds a note to a syntax error raised at the file marker
// when the content looks like another encoding of the model.
type markerReporter struct {
	ctx  context.Context
	next diag.Reporter
	file *source.File
}

func (r markerReporter) Report(d diag.Diagnostic) {
	if d.Kind == diag.KindSyntax && slices.Equal(d.Expected, []string{token.KwISO}) {
		c := dialect.Detect(r.file)
		trace.Point(r.ctx, trace.ScopeFile, "dialect", dialect.Describe(c))
		if c.Eligible() {
			d = d.WithNote(d.Primary, dialect.RenderHint(c))
		}
	}
	r.next.Report(d)
}
