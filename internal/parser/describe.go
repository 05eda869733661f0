package parser

import (
	"fmt"
	"unicode/utf8"

	"stepcheck/internal/diag"
	"stepcheck/internal/source"
	"stepcheck/internal/token"
)

// describe names an unexpected token the way the report shows it:
// keywords and quoted literals by their first character, numbers and
// instance names by their full text, punctuation by its own name.
// The returned span is what the caret points at.
func describe(tok token.Token) (diag.Found, source.Span) {
	first := func() (string, source.Span) {
		_, size := utf8.DecodeRuneInString(tok.Text)
		return tok.Text[:size], tok.Span.Head(uint32(size)) // #nosec G115 -- rune size
	}

	switch tok.Kind {
	case token.Upper:
		ch, sp := first()
		class := "upper"
		switch {
		case ch >= "A" && ch <= "F":
			class = "hex"
		case ch == "!":
			class = "special"
		}
		return diag.Found{Type: class, Value: ch}, sp
	case token.StringLit:
		ch, sp := first()
		return diag.Found{Type: "quote", Value: ch}, sp
	case token.EnumLit:
		ch, sp := first()
		return diag.Found{Type: "dot", Value: ch}, sp
	case token.BinaryLit:
		ch, sp := first()
		return diag.Found{Type: "dblquote", Value: ch}, sp
	case token.Ref:
		return diag.Found{Type: "hash", Value: tok.Text}, tok.Span
	case token.IntLit:
		return diag.Found{Type: "int", Value: tok.Text}, tok.Span
	case token.RealLit:
		return diag.Found{Type: "real", Value: tok.Text}, tok.Span
	case token.LParen:
		return diag.Found{Type: "lpar", Value: tok.Text}, tok.Span
	case token.RParen:
		return diag.Found{Type: "rpar", Value: tok.Text}, tok.Span
	case token.Comma:
		return diag.Found{Type: "comma", Value: tok.Text}, tok.Span
	case token.Semicolon:
		return diag.Found{Type: "semicolon", Value: tok.Text}, tok.Span
	case token.Equal:
		return diag.Found{Type: "equal", Value: tok.Text}, tok.Span
	case token.Dollar:
		return diag.Found{Type: "none", Value: tok.Text}, tok.Span
	case token.Star:
		return diag.Found{Type: "star", Value: tok.Text}, tok.Span
	}
	return diag.Found{Type: "$end"}, tok.Span
}

func unexpectedMessage(f diag.Found) string {
	if f.Type == "$end" {
		return "Unexpected end of file"
	}
	return fmt.Sprintf("Unexpected %s ('%s')", f.Type, f.Value)
}
