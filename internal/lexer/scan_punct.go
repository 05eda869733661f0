package lexer

import (
	"stepcheck/internal/token"
)

var punct = [256]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	',': token.Comma,
	';': token.Semicolon,
	'=': token.Equal,
	'$': token.Dollar,
	'*': token.Star,
}

// scanPunct читает односимвольные токены; всё прочее становится Invalid.
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()
	if k := punct[ch]; k != token.Invalid {
		lx.cursor.Bump()
		return lx.emit(k, start)
	}
	return lx.invalidAt(start, token.FaultUnknownChar, "")
}
