package diag

import (
	"stepcheck/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Found describes the token a syntax diagnostic stopped at.
type Found struct {
	Type  string // "comma", "hex", "upper", "int", ...
	Value string // the text quoted in the message
	Char  bool   // rejected by the lexer, not by the grammar
}

type Diagnostic struct {
	Kind     Kind
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Expected []string // sorted, unique
	Found    *Found
	Notes    []Note
	Args     []Arg
}

// Arg is a named fact about the diagnostic (instance name, header field,
// counts) exported by the JSON report.
type Arg struct {
	Key   string
	Value any
}

// Arg returns the value stored under key.
func (d Diagnostic) Arg(key string) (any, bool) {
	for _, a := range d.Args {
		if a.Key == key {
			return a.Value, true
		}
	}
	return nil, false
}

func New(kind Kind, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Kind:     kind,
		Severity: SevError,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// Equal reports whether two diagnostics carry the same observable content.
func (d Diagnostic) Equal(o Diagnostic) bool {
	if d.Kind != o.Kind || d.Severity != o.Severity || d.Code != o.Code ||
		d.Message != o.Message || d.Primary != o.Primary ||
		len(d.Expected) != len(o.Expected) || len(d.Notes) != len(o.Notes) ||
		len(d.Args) != len(o.Args) {
		return false
	}
	for i := range d.Expected {
		if d.Expected[i] != o.Expected[i] {
			return false
		}
	}
	for i := range d.Notes {
		if d.Notes[i] != o.Notes[i] {
			return false
		}
	}
	for i := range d.Args {
		if d.Args[i] != o.Args[i] {
			return false
		}
	}
	if (d.Found == nil) != (o.Found == nil) {
		return false
	}
	return d.Found == nil || *d.Found == *o.Found
}
