package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"stepcheck/internal/ast"
	"stepcheck/internal/source"
)

// ValueOutput is the JSON form of one parameter.
type ValueOutput struct {
	Kind  string        `json:"kind"`
	Text  string        `json:"text,omitempty"`
	Ref   uint64        `json:"ref,omitempty"`
	Items []ValueOutput `json:"items,omitempty"`
}

// RecordOutput is TYPE(params).
type RecordOutput struct {
	Type   string        `json:"type"`
	Params []ValueOutput `json:"params"`
}

// InstanceOutput is the JSON form of one data instance.
type InstanceOutput struct {
	ID     uint64         `json:"id"`
	Line   uint32         `json:"line,omitempty"`
	Type   string         `json:"type"`
	Params []ValueOutput  `json:"params"`
	Parts  []RecordOutput `json:"parts,omitempty"`
}

// DocumentOutput is what the parse command prints in JSON mode.
type DocumentOutput struct {
	Schema    string           `json:"schema,omitempty"`
	Header    []RecordOutput   `json:"header"`
	Instances []InstanceOutput `json:"instances,omitempty"`
}

// FormatValue renders a parameter the way it would be written in a file.
func FormatValue(doc *ast.Document, id ast.ValueID) string {
	var sb strings.Builder
	writeValue(&sb, doc, id)
	return sb.String()
}

func writeValue(sb *strings.Builder, doc *ast.Document, id ast.ValueID) {
	v := doc.Values.Get(id)
	if v == nil {
		sb.WriteString("?")
		return
	}
	switch v.Kind {
	case ast.ValueString:
		sb.WriteString("'" + strings.ReplaceAll(v.Text, "'", "''") + "'")
	case ast.ValueInteger, ast.ValueReal:
		sb.WriteString(v.Text)
	case ast.ValueEnum:
		sb.WriteString("." + v.Text + ".")
	case ast.ValueBinary:
		sb.WriteString(`"` + v.Text + `"`)
	case ast.ValueRef:
		sb.WriteString("#" + strconv.FormatUint(v.Ref, 10))
	case ast.ValueOmitted:
		sb.WriteString("$")
	case ast.ValueRedeclared:
		sb.WriteString("*")
	case ast.ValueTyped:
		sb.WriteString(v.Text)
		sb.WriteByte('(')
		if inner := doc.Values.Inner(id); inner != ast.NoValueID {
			writeValue(sb, doc, inner)
		}
		sb.WriteByte(')')
	case ast.ValueList:
		writeParams(sb, doc, v.Items)
	}
}

func writeParams(sb *strings.Builder, doc *ast.Document, params []ast.ValueID) {
	sb.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeValue(sb, doc, p)
	}
	sb.WriteByte(')')
}

// FormatRecord renders TYPE(params).
func FormatRecord(doc *ast.Document, rec *ast.Record) string {
	var sb strings.Builder
	sb.WriteString(rec.Type)
	writeParams(&sb, doc, rec.Params)
	return sb.String()
}

// FormatInstance renders #ID=... as one line.
func FormatInstance(doc *ast.Document, inst *ast.Instance) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#%d=", inst.ID)
	if inst.Complex() {
		sb.WriteByte('(')
		for i := range inst.Parts {
			sb.WriteString(FormatRecord(doc, &inst.Parts[i]))
		}
		sb.WriteByte(')')
	} else {
		sb.WriteString(inst.Type)
		writeParams(&sb, doc, inst.Params)
	}
	sb.WriteByte(';')
	return sb.String()
}

// FormatDocumentPretty prints the header and the given instances as a tree.
// A nil instances slice prints every instance of the document.
func FormatDocumentPretty(w io.Writer, doc *ast.Document, instances []*ast.Instance, fs *source.FileSet) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}
	header := "Document"
	if f := fileOf(fs, doc.Span); f != nil {
		header = formatPath(f, fs, PathModeAuto)
	}
	if _, err := fmt.Fprintf(w, "%s (%s)\n", header, formatSpan(doc.Span, fs)); err != nil {
		return err
	}

	if instances == nil {
		for inst := range doc.Instances() {
			instances = append(instances, inst)
		}
	}

	hdr := doc.Header()
	fmt.Fprintln(w, "├─ HEADER")
	if hdr != nil {
		for i := range hdr.Entities {
			branch := "├─"
			if i == len(hdr.Entities)-1 {
				branch = "└─"
			}
			fmt.Fprintf(w, "│  %s %s\n", branch, FormatRecord(doc, &hdr.Entities[i]))
		}
	}

	fmt.Fprintf(w, "└─ DATA (%d instances)\n", len(instances))
	for i, inst := range instances {
		branch := "├─"
		if i == len(instances)-1 {
			branch = "└─"
		}
		fmt.Fprintf(w, "   %s %s (%s)\n", branch, FormatInstance(doc, inst), formatSpan(inst.Span, fs))
	}
	return nil
}

// FormatDocumentJSON prints the header and the given instances as JSON.
func FormatDocumentJSON(w io.Writer, doc *ast.Document, instances []*ast.Instance, fs *source.FileSet) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}
	out := DocumentOutput{Header: []RecordOutput{}}
	if schema, err := doc.SchemaIdentifier(); err == nil {
		out.Schema = schema
	}
	if hdr := doc.Header(); hdr != nil {
		for i := range hdr.Entities {
			out.Header = append(out.Header, recordOutput(doc, &hdr.Entities[i]))
		}
	}
	if instances == nil {
		for inst := range doc.Instances() {
			instances = append(instances, inst)
		}
	}
	f := fileOf(fs, doc.Span)
	for _, inst := range instances {
		item := InstanceOutput{
			ID:     inst.ID,
			Type:   inst.Type,
			Params: valueOutputs(doc, inst.Params),
		}
		if f != nil {
			item.Line = f.LineCol(inst.Span.Start).Line
		}
		for i := range inst.Parts {
			item.Parts = append(item.Parts, recordOutput(doc, &inst.Parts[i]))
		}
		out.Instances = append(out.Instances, item)
	}
	return encodeJSON(w, out)
}

func recordOutput(doc *ast.Document, rec *ast.Record) RecordOutput {
	return RecordOutput{Type: rec.Type, Params: valueOutputs(doc, rec.Params)}
}

func valueOutputs(doc *ast.Document, ids []ast.ValueID) []ValueOutput {
	out := make([]ValueOutput, 0, len(ids))
	for _, id := range ids {
		out = append(out, valueOutput(doc, id))
	}
	return out
}

func valueOutput(doc *ast.Document, id ast.ValueID) ValueOutput {
	v := doc.Values.Get(id)
	if v == nil {
		return ValueOutput{Kind: "?"}
	}
	out := ValueOutput{Kind: v.Kind.String(), Text: v.Text, Ref: v.Ref}
	if len(v.Items) > 0 {
		out.Items = valueOutputs(doc, v.Items)
	}
	return out
}

// formatSpan formats a source.Span into a string.
// If fs is non-nil, it resolves the span to start and end positions and returns "startLine:startCol-endLine:endCol".
// If fs is nil, it returns "span(start-end)".
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fileOf(fs, span) != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
