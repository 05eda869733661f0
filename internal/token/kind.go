package token

// Kind represents the category of a STEP token.
type Kind uint8

const (
	// Invalid indicates a character or run the lexer could not accept.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Upper is an uppercase keyword: entity or type name, section keyword,
	// or a user-defined keyword written as !NAME.
	Upper
	// Ref is an entity instance name such as #12.
	Ref

	// IntLit represents an integer literal.
	IntLit
	// RealLit represents a real literal; it always has a decimal point.
	RealLit
	// StringLit represents a quoted string literal.
	StringLit
	// BinaryLit represents a "0A1F" style binary literal.
	BinaryLit
	// EnumLit represents a dotted enumeration such as .T. or .UNSET.
	EnumLit

	LParen    // (
	RParen    // )
	Comma     // ,
	Semicolon // ;
	Equal     // =
	Dollar    // $
	Star      // *
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Upper:     "Upper",
	Ref:       "Ref",
	IntLit:    "IntLit",
	RealLit:   "RealLit",
	StringLit: "StringLit",
	BinaryLit: "BinaryLit",
	EnumLit:   "EnumLit",
	LParen:    "LParen",
	RParen:    "RParen",
	Comma:     "Comma",
	Semicolon: "Semicolon",
	Equal:     "Equal",
	Dollar:    "Dollar",
	Star:      "Star",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// grammarNames are the terminal names shown in "Expecting ..." lines.
// String, binary and enum literals are named after their opening character.
var grammarNames = [...]string{
	Invalid:   "INVALID",
	EOF:       "$END",
	Upper:     "UPPER",
	Ref:       "HASH",
	IntLit:    "INT",
	RealLit:   "REAL",
	StringLit: "QUOTE",
	BinaryLit: "DBLQUOTE",
	EnumLit:   "DOT",
	LParen:    "LPAR",
	RParen:    "RPAR",
	Comma:     "COMMA",
	Semicolon: "SEMICOLON",
	Equal:     "EQUAL",
	Dollar:    "NONE",
	Star:      "STAR",
}

// GrammarName returns the terminal name of k.
func (k Kind) GrammarName() string {
	if int(k) < len(grammarNames) {
		return grammarNames[k]
	}
	return "?"
}

// IsValueStart reports whether k can begin a parameter value.
func (k Kind) IsValueStart() bool {
	switch k {
	case StringLit, BinaryLit, EnumLit, IntLit, RealLit, Ref, Dollar, Star, Upper, LParen:
		return true
	default:
		return false
	}
}
