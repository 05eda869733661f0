// Package token defines the lexical token kinds of ISO 10303-21 exchange files.
// Invariants:
//   - Token.Text is the raw source text covered by Token.Span, escapes included.
//   - Token.Value holds the decoded payload (string contents, enum name,
//     binary digits, numeric text); it is empty for punctuation.
//   - Section keywords (HEADER, DATA, ENDSEC, ISO-10303-21, END-ISO-10303-21)
//     are plain Upper tokens. The parser recognises them by position.
package token
