package lexer

import (
	"stepcheck/internal/token"
)

// scanKeyword читает [A-Z][A-Z0-9_]* или пользовательское !NAME.
// ISO-10303-21 и END-ISO-10303-21 содержат дефисы, поэтому проверяются целиком.
func (lx *Lexer) scanKeyword() token.Token {
	start := lx.cursor.Mark()
	for _, marker := range [...]string{token.KwEndISO, token.KwISO} {
		if lx.cursor.HasPrefix(marker) && !isKeywordByte(lx.cursor.PeekAt(uint32(len(marker)))) {
			lx.cursor.EatPrefix(marker)
			tok := lx.emit(token.Upper, start)
			tok.Value = tok.Text
			return tok
		}
	}

	lx.cursor.Eat('!')
	for isKeywordByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Upper, start)
	tok.Value = tok.Text
	return tok
}
