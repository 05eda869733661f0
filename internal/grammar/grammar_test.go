package grammar

import (
	"strings"
	"testing"
)

func TestEmbeddedGrammarVerifies(t *testing.T) {
	if err := Verify(); err != nil {
		t.Fatal(err)
	}
}

func TestProductions(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	prods := Productions(g)
	if prods[0].Name != "ComplexRecord" || prods[0].Lexical {
		t.Errorf("first production = %+v", prods[0])
	}
	last := prods[len(prods)-1]
	if last.Name != "upper" || !last.Lexical {
		t.Errorf("last production = %+v", last)
	}
	for _, name := range []string{"File", "Header", "Data", "Instance", "Value", "string", "binary"} {
		if g[name] == nil {
			t.Errorf("missing production %s", name)
		}
	}
}

func TestSourceMentionsMarkers(t *testing.T) {
	for _, want := range []string{`"ISO-10303-21"`, `"END-ISO-10303-21"`, `"ENDSEC"`} {
		if !strings.Contains(Source(), want) {
			t.Errorf("grammar text lacks %s", want)
		}
	}
}
