// Package grammar хранит грамматику файла обмена в EBNF и проверяет её
// согласованность. Парсер написан вручную; этот текст служит ему
// справочником и выводится командой `stepcheck grammar`.
package grammar

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/ebnf"
)

// Start is the production every exchange file must match.
const Start = "File"

const filename = "step.ebnf"

//go:embed step.ebnf
var source string

// Source returns the grammar text.
func Source() string {
	return source
}

// Load parses the embedded grammar.
func Load() (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, strings.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return g, nil
}

// Verify checks that every production is defined and reachable from Start.
func Verify() error {
	g, err := Load()
	if err != nil {
		return err
	}
	if err := ebnf.Verify(g, Start); err != nil {
		return fmt.Errorf("verify %s: %w", filename, err)
	}
	return nil
}

// Production summarises one rule of the grammar.
type Production struct {
	Name    string
	Lexical bool
}

// Productions lists rules in name order, syntactic ones first.
func Productions(g ebnf.Grammar) []Production {
	out := make([]Production, 0, len(g))
	for name := range g {
		out = append(out, Production{Name: name, Lexical: isLexical(name)})
	}
	slices.SortFunc(out, func(a, b Production) int {
		if a.Lexical != b.Lexical {
			if a.Lexical {
				return 1
			}
			return -1
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

func isLexical(name string) bool {
	return name != "" && name[0] >= 'a' && name[0] <= 'z'
}
