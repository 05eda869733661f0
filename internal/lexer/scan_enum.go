package lexer

import (
	"stepcheck/internal/token"
)

// scanEnum: '.' [A-Z][A-Z0-9_]* '.'
func (lx *Lexer) scanEnum() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '.'
	if !isUpper(lx.cursor.Peek()) {
		return lx.invalidAt(start, token.FaultUnknownChar, "enumeration must start with an uppercase letter")
	}
	for isKeywordByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if !lx.cursor.Eat('.') {
		return lx.invalidAt(start, token.FaultUnknownChar, "enumeration is missing its closing '.'")
	}
	tok := lx.emit(token.EnumLit, start)
	tok.Value = tok.Text[1 : len(tok.Text)-1]
	return tok
}

// scanBinary: '"' [0-3] [0-9A-F]* '"'
// Первая цифра: число неиспользуемых бит в старшем полубайте.
func (lx *Lexer) scanBinary() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '"'
	if b := lx.cursor.Peek(); b < '0' || b > '3' {
		return lx.invalidAt(start, token.FaultBadBinary, "binary must start with a digit 0-3")
	}
	lx.cursor.Bump()
	for isUpperHex(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if !lx.cursor.Eat('"') {
		return lx.invalidAt(start, token.FaultBadBinary, "binary literal is not closed by '\"'")
	}
	tok := lx.emit(token.BinaryLit, start)
	tok.Value = tok.Text[1 : len(tok.Text)-1]
	return tok
}
