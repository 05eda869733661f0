package diagfmt

import (
	"encoding/json"
	"io"

	"stepcheck/internal/diag"
	"stepcheck/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line"`
	StartCol  uint32 `json:"start_col"`
	EndLine   uint32 `json:"end_line"`
	EndCol    uint32 `json:"end_col"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON is one error in the flat shape consumers of the validator
// already parse: type, lineno, column, found_type, found_value, expected,
// line, message. Header and name errors add their own fields.
type DiagnosticJSON struct {
	Type       string   `json:"type"`
	Code       string   `json:"code"`
	Lineno     uint32   `json:"lineno,omitempty"`
	Column     uint32   `json:"column,omitempty"`
	FoundType  string   `json:"found_type,omitempty"`
	FoundValue *string  `json:"found_value,omitempty"`
	Expected   []string `json:"expected,omitempty"`
	Line       *string  `json:"line,omitempty"`
	Message    string   `json:"message"`

	Name               *uint64 `json:"name,omitempty"`
	Field              string  `json:"field,omitempty"`
	ExpectedFieldCount *int    `json:"expected_field_count,omitempty"`
	ActualFieldCount   *int    `json:"actual_field_count,omitempty"`

	Location *LocationJSON `json:"location,omitempty"`
	Notes    []NoteJSON    `json:"notes,omitempty"`
}

// FileReportJSON is the JSON report of one validated file.
type FileReportJSON struct {
	File   string           `json:"file"`
	Valid  bool             `json:"valid"`
	Count  int              `json:"count"`
	Errors []DiagnosticJSON `json:"errors"`
}

// makeLocation создаёт LocationJSON из Span
func makeLocation(span source.Span, fs *source.FileSet, pathMode PathMode) LocationJSON {
	f := fileOf(fs, span)
	if f == nil {
		return LocationJSON{StartByte: span.Start, EndByte: span.End}
	}
	startPos, endPos := f.LineCol(span.Start), f.LineCol(span.End)
	return LocationJSON{
		File:      formatPath(f, fs, pathMode),
		StartByte: span.Start,
		EndByte:   span.End,
		StartLine: startPos.Line,
		StartCol:  startPos.Col,
		EndLine:   endPos.Line,
		EndCol:    endPos.Col,
	}
}

// errorType classifies a diagnostic with the names of the original report.
func errorType(d *diag.Diagnostic) string {
	switch d.Code {
	case diag.SemaDuplicateInstance:
		return "duplicate_name"
	case diag.SemaHeaderFieldCount:
		return "invalid_header_field"
	case diag.SemaUnresolvedReference:
		return "unresolved_reference"
	case diag.SynNestingTooDeep:
		return "nesting_too_deep"
	}
	switch d.Kind {
	case diag.KindIO:
		return "io_error"
	case diag.KindSyntax:
		if d.Found != nil && d.Found.Char {
			return "unexpected_character"
		}
		return "unexpected_token"
	}
	return "semantic_error"
}

// BuildDiagnostic converts one diagnostic; message carries the rendered
// block, like the text report would print it.
func BuildDiagnostic(d diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticJSON {
	out := DiagnosticJSON{
		Type:    errorType(&d),
		Code:    d.Code.ID(),
		Message: FormatDiagnostic(d, fs, PrettyOpts{PathMode: opts.PathMode}),
	}
	if len(out.Message) > 0 && out.Message[len(out.Message)-1] == '\n' {
		out.Message = out.Message[:len(out.Message)-1]
	}

	if f := fileOf(fs, d.Primary); f != nil && d.Kind != diag.KindIO {
		pos := f.LineCol(d.Primary.Start)
		out.Lineno = pos.Line
		if d.Kind == diag.KindSyntax {
			out.Column = pos.Col
		}
		line := f.GetLine(pos.Line)
		out.Line = &line
		loc := makeLocation(d.Primary, fs, opts.PathMode)
		out.Location = &loc
	}

	if d.Found != nil {
		out.FoundType = d.Found.Type
		value := d.Found.Value
		out.FoundValue = &value
	}
	if len(d.Expected) > 0 {
		out.Expected = append([]string(nil), d.Expected...)
	}

	for _, a := range d.Args {
		switch v := a.Value.(type) {
		case uint64:
			if a.Key == "name" {
				name := v
				out.Name = &name
			}
		case string:
			if a.Key == "field" {
				out.Field = v
			}
		case int:
			n := v
			switch a.Key {
			case "expected_field_count":
				out.ExpectedFieldCount = &n
			case "actual_field_count":
				out.ActualFieldCount = &n
			}
		}
	}

	if opts.IncludeNotes && len(d.Notes) > 0 {
		out.Notes = make([]NoteJSON, len(d.Notes))
		for j, note := range d.Notes {
			out.Notes[j] = NoteJSON{
				Message:  note.Msg,
				Location: makeLocation(note.Span, fs, opts.PathMode),
			}
		}
	}
	return out
}

// BuildFileReport формирует структуру JSON-вывода без сериализации.
func BuildFileReport(path string, diags []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) FileReportJSON {
	n := len(diags)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	report := FileReportJSON{
		File:   path,
		Valid:  len(diags) == 0,
		Count:  len(diags),
		Errors: make([]DiagnosticJSON, 0, n),
	}
	for i := range n {
		report.Errors = append(report.Errors, BuildDiagnostic(diags[i], fs, opts))
	}
	return report
}

// JSON writes the report of a single file.
func JSON(w io.Writer, path string, diags []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) error {
	return encodeJSON(w, BuildFileReport(path, diags, fs, opts))
}

// JSONReports writes an array of file reports (directory runs).
func JSONReports(w io.Writer, reports []FileReportJSON) error {
	if reports == nil {
		reports = []FileReportJSON{}
	}
	return encodeJSON(w, reports)
}

func encodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}
