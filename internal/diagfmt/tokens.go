package diagfmt

import (
	"fmt"
	"io"

	"stepcheck/internal/source"
	"stepcheck/internal/token"
)

type TokenOutput struct {
	Kind    string      `json:"kind"`
	Grammar string      `json:"grammar"`
	Text    string      `json:"text,omitempty"`
	Value   *string     `json:"value,omitempty"`
	ID      uint64      `json:"id,omitempty"`
	Span    source.Span `json:"span"`
	Fault   string      `json:"fault,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%3d: %-10s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		if tok.Kind == token.StringLit && tok.Value != tok.Text {
			fmt.Fprintf(w, " => %q", tok.Value)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)
		if tok.Kind == token.Invalid {
			fmt.Fprintf(w, " [%s", tok.Fault)
			if tok.Err != "" {
				fmt.Fprintf(w, ": %s", tok.Err)
			}
			fmt.Fprint(w, "]")
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))

	for _, tok := range tokens {
		out := TokenOutput{
			Kind:    tok.Kind.String(),
			Grammar: tok.Kind.GrammarName(),
			Text:    tok.Text,
			ID:      tok.ID,
			Span:    tok.Span,
			Error:   tok.Err,
		}
		if tok.IsLiteral() && tok.Kind != token.IntLit && tok.Kind != token.RealLit && tok.Kind != token.Ref {
			value := tok.Value
			out.Value = &value
		}
		if tok.Kind == token.Invalid {
			out.Fault = tok.Fault.String()
		}
		output = append(output, out)

		if tok.Kind == token.EOF {
			break
		}
	}

	return encodeJSON(w, output)
}
