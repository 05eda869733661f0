package lexer

import (
	"stepcheck/internal/source"
	"stepcheck/internal/token"
)

// Lexer produces tokens on demand; nothing past the last requested token
// is scanned.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File {
	return lx.file
}

// Next возвращает следующий значимый токен.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	if bad, ok := lx.skipTrivia(); !ok {
		lx.report(bad)
		return bad
	}

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isUpper(ch):
		tok = lx.scanKeyword()
	case ch == '!' && isUpper(lx.cursor.PeekAt(1)):
		tok = lx.scanKeyword()
	case ch == '#' && isDec(lx.cursor.PeekAt(1)):
		tok = lx.scanRef()
	case isDec(ch), (ch == '+' || ch == '-') && isDec(lx.cursor.PeekAt(1)):
		tok = lx.scanNumber()
	case ch == '.':
		tok = lx.scanEnum()
	case ch == '\'':
		tok = lx.scanString()
	case ch == '"':
		tok = lx.scanBinary()
	default:
		tok = lx.scanPunct()
	}

	if tok.Kind == token.Invalid {
		lx.report(tok)
	}
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// All drains the lexer, EOF included.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		t := lx.Next()
		out = append(out, t)
		if t.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) emit(k token.Kind, m Mark) token.Token {
	sp := lx.cursor.SpanFrom(m)
	return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
}

// invalidAt builds a one-character Invalid token at m and leaves the cursor
// right after that character, so scanning can resume.
func (lx *Lexer) invalidAt(m Mark, fault token.Fault, detail string) token.Token {
	lx.cursor.Reset(m)
	lx.cursor.BumpRune()
	sp := lx.cursor.SpanFrom(m)
	return token.Token{
		Kind:  token.Invalid,
		Span:  sp,
		Text:  lx.text(sp),
		Fault: fault,
		Err:   detail,
	}
}
