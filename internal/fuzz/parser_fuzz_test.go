package fuzztests

import (
	"context"
	"testing"
	"time"

	"stepcheck/internal/diag"
	"stepcheck/internal/driver"
	"stepcheck/internal/lexer"
	"stepcheck/internal/parser"
	"stepcheck/internal/source"
	"stepcheck/internal/testkit"
)

// parseTimeout is the maximum time allowed for validating a single input.
// If it takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

// FuzzParserSingleError: a rejected input yields exactly one syntax
// diagnostic, an accepted one a document with consistent spans.
func FuzzParserSingleError(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.ifc", input))

		bag := diag.NewBag(0)
		res := parser.ParseFile(lexer.New(file, lexer.Options{}), parser.Options{
			Reporter: diag.BagReporter{Bag: bag},
		})
		if !res.OK {
			if bag.Len() != 1 || bag.Items()[0].Kind != diag.KindSyntax {
				t.Fatalf("rejected input produced %d diagnostics: %+v", bag.Len(), bag.Items())
			}
			return
		}
		if bag.Len() != 0 {
			t.Fatalf("accepted input produced diagnostics: %+v", bag.Items())
		}
		if err := testkit.CheckSpanInvariants(res.Doc, file); err != nil {
			t.Fatal(err)
		}
	})
}

// FuzzValidateNoHang runs the whole pipeline with every check enabled,
// twice, and expects the same diagnostics within the timeout.
func FuzzValidateNoHang(f *testing.F) {
	addCorpusSeeds(f)
	opts := driver.Options{CheckReferences: true, CheckHeader: true}

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan [2][]diag.Diagnostic, 1)
		go func() {
			a := driver.Validate(ctx, "fuzz.ifc", input, opts).Diagnostics()
			b := driver.Validate(ctx, "fuzz.ifc", input, opts).Diagnostics()
			done <- [2][]diag.Diagnostic{a, b}
		}()

		select {
		case got := <-done:
			a, b := got[0], got[1]
			if len(a) != len(b) {
				t.Fatalf("non-deterministic: %d vs %d diagnostics", len(a), len(b))
			}
			for i := range a {
				if !a[i].Equal(b[i]) {
					t.Fatalf("diagnostic %d differs:\n%+v\n%+v", i, a[i], b[i])
				}
			}
		case <-ctx.Done():
			t.Fatalf("validation hang detected: took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
