package lexer

import (
	"strconv"

	"stepcheck/internal/token"
)

// scanRef читает имя экземпляра #digits.
func (lx *Lexer) scanRef() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '#'
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Ref, start)
	id, err := strconv.ParseUint(tok.Text[1:], 10, 64)
	if err != nil {
		return lx.invalidAt(start, token.FaultBadNumber, "instance name out of range: "+tok.Text)
	}
	tok.ID = id
	tok.Value = tok.Text[1:]
	return tok
}

// scanNumber: [+-]?digits ( '.' digits* ( 'E' [+-]? digits )? )?
// Экспонента берётся только целиком; иначе 'E' останется следующему токену.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	if b := lx.cursor.Peek(); b == '+' || b == '-' {
		lx.cursor.Bump()
	}
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if !lx.cursor.Eat('.') {
		tok := lx.emit(token.IntLit, start)
		tok.Value = tok.Text
		return tok
	}
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == 'E' {
		var n uint32 = 1
		if s := lx.cursor.PeekAt(1); s == '+' || s == '-' {
			n = 2
		}
		if isDec(lx.cursor.PeekAt(n)) {
			lx.cursor.Off += n
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}
	tok := lx.emit(token.RealLit, start)
	tok.Value = tok.Text
	return tok
}
