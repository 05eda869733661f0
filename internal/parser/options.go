package parser

import (
	"stepcheck/internal/diag"
)

// DefaultMaxDepth bounds nested parameter lists and typed values.
const DefaultMaxDepth = 1024

type Options struct {
	// MaxDepth limits nesting of "(...)"; 0 means DefaultMaxDepth.
	MaxDepth int
	// OnlyHeader stops after the HEADER section's ENDSEC;.
	OnlyHeader bool
	Reporter   diag.Reporter
}

func (o *Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}
