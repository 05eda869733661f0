package diag

// Kind separates fatal grammar failures from collected document checks.
type Kind uint8

const (
	// KindSyntax is a lexical or grammar violation. Parsing stops at the first one.
	KindSyntax Kind = iota
	// KindSemantic is a post-parse invariant violation. All of them are collected.
	KindSemantic
	// KindIO is an environment failure attached to a file (unreadable, missing).
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindSemantic:
		return "semantic"
	case KindIO:
		return "io"
	}
	return "unknown"
}
