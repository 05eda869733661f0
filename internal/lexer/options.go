package lexer

import (
	"fmt"

	"stepcheck/internal/diag"
	"stepcheck/internal/token"
)

type Options struct {
	// Reporter receives one diagnostic per Invalid token. The parser leaves
	// it nil and reports the first Invalid token itself; the tokenize
	// command sets it to collect every lexical problem.
	Reporter diag.Reporter
}

func (lx *Lexer) report(tok token.Token) {
	if lx.opts.Reporter == nil {
		return
	}
	lx.opts.Reporter.Report(Diagnose(tok))
}

var faultCodes = map[token.Fault]diag.Code{
	token.FaultUnknownChar:         diag.LexUnknownChar,
	token.FaultUnterminatedString:  diag.LexUnterminatedString,
	token.FaultUnterminatedComment: diag.LexUnterminatedComment,
	token.FaultBadNumber:           diag.LexBadNumber,
	token.FaultBadEscape:           diag.LexBadEscape,
	token.FaultBadBinary:           diag.LexBadBinary,
	token.FaultBadStringChar:       diag.LexBadStringChar,
}

// FaultCode maps a lexer fault to its diagnostic code.
func FaultCode(f token.Fault) diag.Code {
	if c, ok := faultCodes[f]; ok {
		return c
	}
	return diag.LexInfo
}

// Diagnose turns an Invalid token into a syntax diagnostic. The lexer's
// detail, when present, becomes a note on the same span.
func Diagnose(tok token.Token) diag.Diagnostic {
	d := diag.New(diag.KindSyntax, FaultCode(tok.Fault), tok.Span,
		fmt.Sprintf("Unexpected character ('%s')", tok.Text))
	d.Found = &diag.Found{Type: "character", Value: tok.Text, Char: true}
	if tok.Err != "" {
		d = d.WithNote(tok.Span, tok.Err)
	}
	return d
}
