package testkit_test

import (
	"strings"
	"testing"

	"stepcheck/internal/ast"
	"stepcheck/internal/lexer"
	"stepcheck/internal/parser"
	"stepcheck/internal/source"
	"stepcheck/internal/testkit"
)

func parse(t *testing.T, input string) (*ast.Document, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t.ifc", []byte(input)))
	res := parser.ParseFile(lexer.New(f, lexer.Options{}), parser.Options{})
	if !res.OK {
		t.Fatalf("parse failed for %q", input)
	}
	return res.Doc, f
}

func TestSpanInvariantsHold(t *testing.T) {
	inputs := []string{
		"ISO-10303-21;HEADER;ENDSEC;DATA;ENDSEC;END-ISO-10303-21;",
		"ISO-10303-21;\nHEADER;\nFILE_SCHEMA(('IFC4'));\nENDSEC;\nDATA;\n#1=A('x',(1,2.5,(.T.)),$,*,#2);\n#2=(B()C(\"0F\",D(3)));\nENDSEC;\nDATA;\n#3=E();\nENDSEC;\nEND-ISO-10303-21;\n",
	}
	for _, in := range inputs {
		doc, f := parse(t, in)
		if err := testkit.CheckSpanInvariants(doc, f); err != nil {
			t.Errorf("%q: %v", in, err)
		}
	}
}

func TestSpanInvariantsDetectBrokenSpans(t *testing.T) {
	doc, f := parse(t, "ISO-10303-21;HEADER;ENDSEC;DATA;#1=A(1);ENDSEC;END-ISO-10303-21;")

	inst := &doc.Sections[1].Instances[0]
	saved := inst.Span
	inst.Span.End = inst.Span.Start
	err := testkit.CheckSpanInvariants(doc, f)
	if err == nil || !strings.Contains(err.Error(), "empty instance #1 span") {
		t.Errorf("empty span: %v", err)
	}
	inst.Span = saved

	doc.Values.Get(inst.Params[0]).Span.End = doc.Span.End + 5
	if err := testkit.CheckSpanInvariants(doc, f); err == nil {
		t.Error("value outside its instance was accepted")
	}

	if err := testkit.CheckSpanInvariants(nil, f); err == nil {
		t.Error("nil document accepted")
	}
}
