package lexer

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// codePages maps the letter of a \P?\ directive to its ISO 8859 part.
var codePages = map[byte]*charmap.Charmap{
	'A': charmap.ISO8859_1,
	'B': charmap.ISO8859_2,
	'C': charmap.ISO8859_3,
	'D': charmap.ISO8859_4,
	'E': charmap.ISO8859_5,
	'F': charmap.ISO8859_6,
	'G': charmap.ISO8859_7,
	'H': charmap.ISO8859_8,
	'I': charmap.ISO8859_9,
}

type stringDecoder struct {
	buf  strings.Builder
	page *charmap.Charmap // active page for \S\
}

func newStringDecoder() *stringDecoder {
	return &stringDecoder{page: charmap.ISO8859_1}
}

// scanEscape consumes one escape sequence at the cursor and appends its
// decoded text. It returns a non-empty detail when the sequence is invalid;
// the cursor is then unspecified.
func (lx *Lexer) scanEscape(d *stringDecoder) string {
	c := &lx.cursor
	switch {
	case c.EatPrefix(`\\`):
		d.buf.WriteByte('\\')
		return ""

	case c.EatPrefix(`\X2\`):
		raw, detail := lx.scanHexRun(4)
		if detail != "" {
			return detail
		}
		out, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Bytes(raw)
		if err != nil {
			return "invalid UTF-16 in \\X2\\ escape"
		}
		d.buf.Write(out)
		return ""

	case c.EatPrefix(`\X4\`):
		raw, detail := lx.scanHexRun(8)
		if detail != "" {
			return detail
		}
		out, err := utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM).NewDecoder().Bytes(raw)
		if err != nil {
			return "invalid UTF-32 in \\X4\\ escape"
		}
		d.buf.Write(out)
		return ""

	case c.EatPrefix(`\X\`):
		hi, lo := c.PeekAt(0), c.PeekAt(1)
		if !isHex(hi) || !isHex(lo) {
			return "\\X\\ must be followed by two hex digits"
		}
		c.Bump()
		c.Bump()
		d.buf.WriteRune(charmap.ISO8859_1.DecodeByte(hexVal(hi)<<4 | hexVal(lo)))
		return ""

	case c.EatPrefix(`\S\`):
		ch := c.Peek()
		if ch < 0x20 || ch > 0x7E {
			return "\\S\\ must be followed by a printable ASCII character"
		}
		c.Bump()
		if ch == '\'' && !c.Eat('\'') {
			return "apostrophe after \\S\\ must be doubled"
		}
		d.buf.WriteRune(d.page.DecodeByte(ch + 0x80))
		return ""

	case c.HasPrefix(`\P`) && c.PeekAt(3) == '\\':
		page, ok := codePages[c.PeekAt(2)]
		if !ok {
			return "code page must be one of A..I"
		}
		c.Off += 4
		d.page = page
		return ""
	}
	return "unknown escape sequence"
}

// scanHexRun reads groups of width hex digits up to the closing \X0\.
func (lx *Lexer) scanHexRun(width int) ([]byte, string) {
	c := &lx.cursor
	var raw []byte
	for {
		if c.EatPrefix(`\X0\`) {
			return raw, ""
		}
		for i := 0; i < width; i += 2 {
			hi, lo := c.PeekAt(0), c.PeekAt(1)
			if !isHex(hi) || !isHex(lo) {
				return nil, "extended escape is not closed by \\X0\\"
			}
			c.Bump()
			c.Bump()
			raw = append(raw, hexVal(hi)<<4|hexVal(lo))
		}
	}
}
