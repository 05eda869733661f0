package diagfmt

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"stepcheck/internal/diag"
	"stepcheck/internal/source"
)

// ValidText is the whole report of a file without diagnostics.
const ValidText = "Valid"

// gutterWidth is the width of "00012 | ".
const gutterWidth = 8

type palette struct {
	header *color.Color
	msg    *color.Color
	expect *color.Color
	gutter *color.Color
	caret  *color.Color
	note   *color.Color
	path   *color.Color
	valid  *color.Color
}

func newColor(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func newPalette(enabled bool) palette {
	return palette{
		header: newColor(enabled, color.Bold),
		msg:    newColor(enabled, color.FgRed, color.Bold),
		expect: newColor(enabled, color.FgCyan),
		gutter: newColor(enabled, color.FgBlue),
		caret:  newColor(enabled, color.FgRed, color.Bold),
		note:   newColor(enabled, color.FgYellow),
		path:   newColor(enabled, color.Underline),
		valid:  newColor(enabled, color.FgGreen, color.Bold),
	}
}

// Report renders diagnostics of one file in the validator's layout:
//
//	On line 9 column 26:
//	Unexpected comma (',')
//	Expecting one of DBLQUOTE DOT HASH INT LPAR NONE QUOTE REAL STAR UPPER
//	00009 | #1=IFCPERSON($,$,'',,$,$,$,$);
//	                                 ^
//
// With no diagnostics the report is "Valid". More than one diagnostic gets a
// "<n> validation error(s) collected:" header and blank lines between blocks.
func Report(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) error {
	_, err := io.WriteString(w, FormatReport(diags, fs, opts))
	return err
}

// FormatReport is Report into a string; the result ends with a newline.
func FormatReport(diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) string {
	pal := newPalette(opts.Color)
	var sb strings.Builder

	if opts.ShowPath && len(diags) > 0 && fs != nil {
		if f := fileOf(fs, diags[0].Primary); f != nil {
			sb.WriteString(pal.path.Sprint(formatPath(f, fs, opts.PathMode)))
			sb.WriteString(":\n")
		}
	}

	switch len(diags) {
	case 0:
		sb.WriteString(pal.valid.Sprint(ValidText))
		sb.WriteByte('\n')
		return sb.String()
	case 1:
	default:
		fmt.Fprintf(&sb, "%d validation error(s) collected:\n", len(diags))
	}

	for i := range diags {
		if i > 0 {
			sb.WriteByte('\n')
		}
		writeBlock(&sb, &diags[i], fs, pal, opts)
	}
	return sb.String()
}

// FormatDiagnostic renders a single block without the collection header.
func FormatDiagnostic(d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) string {
	var sb strings.Builder
	writeBlock(&sb, &d, fs, newPalette(opts.Color), opts)
	return sb.String()
}

func fileOf(fs *source.FileSet, sp source.Span) *source.File {
	if fs == nil || int(sp.File) >= fs.Len() {
		return nil
	}
	return fs.Get(sp.File)
}

func writeBlock(sb *strings.Builder, d *diag.Diagnostic, fs *source.FileSet, pal palette, opts PrettyOpts) {
	f := fileOf(fs, d.Primary)
	if f == nil || d.Kind == diag.KindIO {
		sb.WriteString(pal.msg.Sprint(d.Message))
		sb.WriteByte('\n')
		return
	}

	start := f.LineCol(d.Primary.Start)
	if d.Kind == diag.KindSyntax {
		sb.WriteString(pal.header.Sprintf("On line %d column %d:", start.Line, start.Col))
	} else {
		sb.WriteString(pal.header.Sprintf("On line %d:", start.Line))
	}
	sb.WriteByte('\n')
	sb.WriteString(pal.msg.Sprint(d.Message))
	sb.WriteByte('\n')

	if d.Kind == diag.KindSyntax && len(d.Expected) > 0 {
		sb.WriteString(pal.expect.Sprint(expecting(d.Expected)))
		sb.WriteByte('\n')
	}

	// печатаем только первую строку span-а
	sb.WriteString(pal.gutter.Sprintf("%05d | ", start.Line))
	sb.WriteString(f.GetLine(start.Line))
	sb.WriteByte('\n')

	sb.WriteString(strings.Repeat(" ", gutterWidth+int(start.Col)-1))
	sb.WriteString(pal.caret.Sprint(strings.Repeat("^", caretWidth(f, d, start))))
	sb.WriteByte('\n')

	if opts.ShowNotes {
		for _, note := range d.Notes {
			nf := fileOf(fs, note.Span)
			if nf == nil {
				continue
			}
			pos := nf.LineCol(note.Span.Start)
			sb.WriteString(pal.note.Sprintf("note: %s (%s:%d:%d)",
				note.Msg, formatPath(nf, fs, opts.PathMode), pos.Line, pos.Col))
			sb.WriteByte('\n')
		}
	}
}

func expecting(names []string) string {
	if len(names) == 1 {
		return "Expecting " + names[0]
	}
	return "Expecting one of " + strings.Join(names, " ")
}

// caretWidth: syntax errors point at one character. Semantic spans are
// underlined up to their end or the end of the first line, whichever is
// closer.
func caretWidth(f *source.File, d *diag.Diagnostic, start source.LineCol) int {
	if d.Kind == diag.KindSyntax || d.Primary.Len() == 0 {
		return 1
	}
	span := utf8.RuneCount(f.Slice(d.Primary))
	rest := f.LineWidth(start.Line) - int(start.Col) + 1
	return max(1, min(span, rest))
}
