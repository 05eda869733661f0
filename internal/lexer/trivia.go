package lexer

import (
	"stepcheck/internal/token"
)

// skipTrivia пропускает пробелы и комментарии /* ... */ (без вложенности).
// Незакрытый комментарий превращается в Invalid токен на '/'.
func (lx *Lexer) skipTrivia() (token.Token, bool) {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isSpace(b) {
			lx.cursor.Bump()
			continue
		}
		if b == '/' && lx.cursor.PeekAt(1) == '*' {
			start := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.cursor.Bump()
			closed := false
			for !lx.cursor.EOF() {
				if lx.cursor.EatPrefix("*/") {
					closed = true
					break
				}
				lx.cursor.Bump()
			}
			if !closed {
				return lx.invalidAt(start, token.FaultUnterminatedComment, "comment is never closed"), false
			}
			continue
		}
		break
	}
	return token.Token{}, true
}
