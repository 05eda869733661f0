package token

import (
	"stepcheck/internal/source"
)

// Token represents a single STEP token with its location.
type Token struct {
	Kind  Kind
	Span  source.Span
	Text  string // raw source text
	Value string // decoded payload, see package doc
	ID    uint64 // instance number for Ref
	Fault Fault  // why an Invalid token was produced
	Err   string // lexer detail for Invalid tokens
}

// IsLiteral reports whether the token is a numeric, string, binary or enum literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, RealLit, StringLit, BinaryLit, EnumLit:
		return true
	default:
		return false
	}
}

// IsPunct reports whether the token is punctuation or a value marker.
func (t Token) IsPunct() bool {
	switch t.Kind {
	case LParen, RParen, Comma, Semicolon, Equal, Dollar, Star:
		return true
	default:
		return false
	}
}

// Is reports whether the token is the Upper keyword kw.
func (t Token) Is(kw string) bool {
	return t.Kind == Upper && t.Text == kw
}
