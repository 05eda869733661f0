package fuzztests

import (
	"testing"

	"stepcheck/internal/diag"
	"stepcheck/internal/lexer"
	"stepcheck/internal/source"
	"stepcheck/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.ifc", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

		// токены идут подряд, не пересекаются и не выходят за файл
		var prevEnd uint32
		contentLen := uint32(len(file.Content)) // #nosec G115 -- clamped above
		for {
			tok := lx.Next()
			if tok.Span.Start < prevEnd || tok.Span.End < tok.Span.Start || tok.Span.End > contentLen {
				t.Fatalf("bad span %v after %d (len %d) for %s", tok.Span, prevEnd, contentLen, tok.Kind)
			}
			if tok.Kind == token.EOF {
				break
			}
			if tok.Span.Empty() {
				t.Fatalf("empty %s token at %d would loop", tok.Kind, tok.Span.Start)
			}
			prevEnd = tok.Span.End
		}
	})
}
