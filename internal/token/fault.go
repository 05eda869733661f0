package token

// Fault explains why the lexer produced an Invalid token.
type Fault uint8

const (
	FaultNone Fault = iota
	// FaultUnknownChar: a character that starts no token.
	FaultUnknownChar
	// FaultUnterminatedString: a quote with no closing quote before EOF.
	FaultUnterminatedString
	// FaultUnterminatedComment: "/*" without "*/".
	FaultUnterminatedComment
	// FaultBadNumber: an instance name or number that does not fit.
	FaultBadNumber
	// FaultBadEscape: a backslash that starts no known escape.
	FaultBadEscape
	// FaultBadBinary: a malformed "..." binary literal.
	FaultBadBinary
	// FaultBadStringChar: a raw control or non-ASCII character inside a string.
	FaultBadStringChar
)

func (f Fault) String() string {
	switch f {
	case FaultNone:
		return "none"
	case FaultUnknownChar:
		return "unknown character"
	case FaultUnterminatedString:
		return "unterminated string"
	case FaultUnterminatedComment:
		return "unterminated comment"
	case FaultBadNumber:
		return "bad number"
	case FaultBadEscape:
		return "bad escape"
	case FaultBadBinary:
		return "bad binary"
	case FaultBadStringChar:
		return "bad string character"
	}
	return "unknown"
}
