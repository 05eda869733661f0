package lexer

import (
	"fmt"

	"stepcheck/internal/token"
)

// scanString читает '...' c удвоенными апострофами и escape-последовательностями.
// Text хранит исходный литерал, Value хранит декодированное содержимое.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '
	dec := newStringDecoder()

	for {
		if lx.cursor.EOF() {
			return lx.invalidAt(start, token.FaultUnterminatedString, "string literal is never closed")
		}
		b := lx.cursor.Peek()
		switch {
		case b == '\'':
			if lx.cursor.PeekAt(1) == '\'' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				dec.buf.WriteByte('\'')
				continue
			}
			lx.cursor.Bump()
			tok := lx.emit(token.StringLit, start)
			tok.Value = dec.buf.String()
			return tok

		case b == '\n' || b == '\r':
			// переносы строк внутри литерала не входят в значение
			lx.cursor.Bump()

		case b == '\\':
			at := lx.cursor.Mark()
			if detail := lx.scanEscape(dec); detail != "" {
				return lx.invalidInString(at, token.FaultBadEscape, detail)
			}

		case b < 0x20 || b >= 0x7F:
			at := lx.cursor.Mark()
			r, _ := lx.cursor.PeekRune()
			return lx.invalidInString(at, token.FaultBadStringChar,
				fmt.Sprintf("character %U must be written as an escape sequence", r))

		default:
			dec.buf.WriteByte(b)
			lx.cursor.Bump()
		}
	}
}

// invalidInString reports the character at m and then skips the rest of the
// literal, so a tokenize run does not re-read string contents as tokens.
func (lx *Lexer) invalidInString(m Mark, fault token.Fault, detail string) token.Token {
	tok := lx.invalidAt(m, fault, detail)
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '\'' {
			if lx.cursor.PeekAt(1) == '\'' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				continue
			}
			lx.cursor.Bump()
			break
		}
		lx.cursor.Bump()
	}
	return tok
}
