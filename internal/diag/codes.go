package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                Code = 1000
	LexUnknownChar         Code = 1001
	LexUnterminatedString  Code = 1002
	LexUnterminatedComment Code = 1003
	LexBadNumber           Code = 1004
	LexBadEscape           Code = 1005
	LexBadBinary           Code = 1006
	LexBadStringChar       Code = 1007

	// Парсерные
	SynInfo            Code = 2000
	SynUnexpectedToken Code = 2001
	SynUnexpectedEOF   Code = 2002
	SynNestingTooDeep  Code = 2003

	// Семантические
	SemaInfo                Code = 3000
	SemaDuplicateInstance   Code = 3001
	SemaUnresolvedReference Code = 3002
	SemaHeaderFieldCount    Code = 3003

	// Ввод-вывод
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	LexInfo:                 "Lexical information",
	LexUnknownChar:          "Unknown character",
	LexUnterminatedString:   "Unterminated string literal",
	LexUnterminatedComment:  "Unterminated comment",
	LexBadNumber:            "Malformed number",
	LexBadEscape:            "Malformed string escape",
	LexBadBinary:            "Malformed binary literal",
	LexBadStringChar:        "Character not allowed in string",
	SynInfo:                 "Syntax information",
	SynUnexpectedToken:      "Unexpected token",
	SynUnexpectedEOF:        "Unexpected end of file",
	SynNestingTooDeep:       "Parameter nesting too deep",
	SemaInfo:                "Semantic information",
	SemaDuplicateInstance:   "Duplicate instance name",
	SemaUnresolvedReference: "Unresolved instance reference",
	SemaHeaderFieldCount:    "Invalid header field",
	IOInfo:                  "I/O information",
	IOLoadFileError:         "Could not load file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
