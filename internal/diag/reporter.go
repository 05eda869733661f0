package diag

import "stepcheck/internal/source"

// Reporter: минимальный контракт получения диагностик от фаз.
type Reporter interface {
	Report(d Diagnostic)
}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, kind Kind, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag:     New(kind, code, primary, msg),
	}
}

// ReportSyntax is a shortcut for fatal grammar diagnostics.
func ReportSyntax(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, KindSyntax, code, primary, msg)
}

// ReportSemantic is a shortcut for collected document diagnostics.
func ReportSemantic(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, KindSemantic, code, primary, msg)
}

// WithExpected sets the terminal names legal at the failure point.
func (b *ReportBuilder) WithExpected(names []string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Expected = names
	return b
}

// WithFound records the offending token class and text.
func (b *ReportBuilder) WithFound(found Found) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Found = &found
	return b
}

// WithArg attaches a named fact to the diagnostic.
func (b *ReportBuilder) WithArg(key string, value any) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Args = append(b.diag.Args, Arg{Key: key, Value: value})
	return b
}

// WithNote appends a note to diagnostic.
func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithNote(sp, msg)
	return b
}

// Emit sends diagnostic to underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag)
	}
	b.emitted = true
}

// Diagnostic returns accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}
