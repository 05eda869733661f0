package dialect

import (
	"bytes"

	"stepcheck/internal/source"
)

// sniffWindow bounds how much of the file detection looks at.
const sniffWindow = 4096

type magic struct {
	prefix []byte
	kind   Kind
	score  int
	reason string
}

var magics = []magic{
	{[]byte("PK\x03\x04"), Zip, 10, "zip local file header"},
	{[]byte("\x1f\x8b"), Gzip, 10, "gzip member header"},
	{[]byte("\xfe\xff"), UTF16, 10, "UTF-16 big-endian byte order mark"},
	{[]byte("\xff\xfe"), UTF16, 10, "UTF-16 little-endian byte order mark"},
	{[]byte("<?xml"), XML, 6, "XML declaration"},
}

// ObservePrefix records evidence from the first bytes of the file. Content
// is the raw text as stored in the FileSet.
func ObservePrefix(e *Evidence, f *source.File) {
	if e == nil || f == nil {
		return
	}
	head := window(f.Content)

	for _, m := range magics {
		if bytes.HasPrefix(head, m.prefix) {
			e.Add(Hint{Kind: m.kind, Score: m.score, Reason: m.reason, Span: span(f, 0, len(m.prefix))})
		}
	}

	// каждый второй байт NUL: UTF-16 без BOM
	if zeros := countAlternateNUL(head); zeros >= 8 && zeros*4 >= len(head) {
		e.Add(Hint{Kind: UTF16, Score: 6, Reason: "NUL byte after every character", Span: span(f, 0, len(head))})
	}

	trimmed := bytes.TrimLeft(head, " \t\r\n")
	if len(trimmed) == 0 {
		return
	}
	off := len(head) - len(trimmed)
	switch trimmed[0] {
	case '<':
		e.Add(Hint{Kind: XML, Score: 2, Reason: "leading '<'", Span: span(f, off, off+1)})
	case '{':
		e.Add(Hint{Kind: JSON, Score: 3, Reason: "leading '{'", Span: span(f, off, off+1)})
	case '[':
		e.Add(Hint{Kind: JSON, Score: 1, Reason: "leading '['", Span: span(f, off, off+1)})
	}
}

func window(content []byte) []byte {
	if len(content) > sniffWindow {
		return content[:sniffWindow]
	}
	return content
}

func countAlternateNUL(b []byte) int {
	n := 0
	for i := 1; i < len(b); i += 2 {
		if b[i] == 0 || b[i-1] == 0 {
			n++
		}
	}
	return n
}

func span(f *source.File, start, end int) source.Span {
	return source.Span{File: f.ID, Start: uint32(start), End: uint32(end)} // #nosec G115 -- bounded by sniffWindow
}
