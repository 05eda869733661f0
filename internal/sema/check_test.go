package sema

import (
	"strings"
	"testing"

	"stepcheck/internal/diag"
	"stepcheck/internal/lexer"
	"stepcheck/internal/parser"
	"stepcheck/internal/source"
)

func checkString(t *testing.T, input string, opts Options) (Result, []diag.Diagnostic, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("sema.ifc", []byte(input)))
	pbag := diag.NewBag(10)
	res := parser.ParseFile(lexer.New(f, lexer.Options{}), parser.Options{
		Reporter:   diag.BagReporter{Bag: pbag},
		OnlyHeader: opts.OnlyHeader,
	})
	if !res.OK {
		t.Fatalf("parse failed: %v", pbag.Items())
	}
	bag := diag.NewBag(100)
	opts.Reporter = diag.BagReporter{Bag: bag}
	return Check(res.Doc, opts), bag.Items(), f
}

const goodHeader = `ISO-10303-21;
HEADER;
FILE_DESCRIPTION(('ViewDefinition [CoordinationView]'),'2;1');
FILE_NAME('a.ifc','2024-01-01T00:00:00',(''),(''),'','','');
FILE_SCHEMA(('IFC4'));
ENDSEC;
`

func TestDuplicateInstanceNames(t *testing.T) {
	input := goodHeader + `DATA;
#19=IFCPERSON($,$,'',$,$,$,$,$);
#20=IFCORGANIZATION($,'x',$,$,$);
#19=IFCPERSON($,$,'b',$,$,$,$,$);
#19=IFCWALL($);
ENDSEC;
END-ISO-10303-21;
`
	res, diags, f := checkString(t, input, Options{})
	if res.Duplicates != 2 || len(diags) != 2 {
		t.Fatalf("duplicates = %d, diags = %v", res.Duplicates, diags)
	}
	if res.Instances != 2 {
		t.Errorf("registry size = %d", res.Instances)
	}
	want := []string{
		"#19=IFCPERSON($,$,'b',$,$,$,$,$);",
		"#19=IFCWALL($);",
	}
	for i, d := range diags {
		if d.Kind != diag.KindSemantic || d.Message != "Duplicate instance name #19" {
			t.Errorf("diag %d = %+v", i, d)
		}
		if got := string(f.Slice(d.Primary)); got != want[i] {
			t.Errorf("diag %d span = %q, want %q", i, got, want[i])
		}
		if len(d.Notes) != 1 || !strings.HasPrefix(string(f.Slice(d.Notes[0].Span)), "#19=IFCPERSON($,$,''") {
			t.Errorf("diag %d note = %+v", i, d.Notes)
		}
		if len(d.Expected) != 0 {
			t.Errorf("semantic diagnostic carries expected set")
		}
	}
}

func TestDuplicatesAcrossDataSections(t *testing.T) {
	input := goodHeader + "DATA;#1=A();ENDSEC;DATA;#1=B();ENDSEC;END-ISO-10303-21;"
	res, _, _ := checkString(t, input, Options{})
	if res.Duplicates != 1 {
		t.Errorf("duplicates = %d", res.Duplicates)
	}
}

func TestCheckIsRepeatable(t *testing.T) {
	input := goodHeader + "DATA;#1=A();#1=A();ENDSEC;END-ISO-10303-21;"
	_, first, _ := checkString(t, input, Options{})
	_, second, _ := checkString(t, input, Options{})
	if len(first) != len(second) {
		t.Fatalf("runs differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Errorf("diag %d differs", i)
		}
	}
}

func TestReferenceCheckIsOptIn(t *testing.T) {
	input := goodHeader + "DATA;#1=A(#2,(#7,IFCREF(#8)));#2=B(#1);ENDSEC;END-ISO-10303-21;"

	res, diags, _ := checkString(t, input, Options{})
	if res.Issues() != 0 || len(diags) != 0 {
		t.Fatalf("reference check ran without opt-in: %v", diags)
	}

	res, diags, f := checkString(t, input, Options{CheckReferences: true})
	if res.Unresolved != 2 || len(diags) != 2 {
		t.Fatalf("unresolved = %d, diags = %v", res.Unresolved, diags)
	}
	for i, want := range []string{"#7", "#8"} {
		if diags[i].Message != "Unresolved instance reference "+want {
			t.Errorf("message = %q", diags[i].Message)
		}
		if got := string(f.Slice(diags[i].Primary)); got != want {
			t.Errorf("span = %q", got)
		}
	}
}

func TestHeaderFieldCounts(t *testing.T) {
	input := `ISO-10303-21;
HEADER;
FILE_DESCRIPTION(('a'),'2;1');
FILE_NAME('a.ifc','2024',(''),(''),'','');
ENDSEC;
DATA;ENDSEC;END-ISO-10303-21;`
	res, diags, _ := checkString(t, input, Options{CheckHeader: true})
	if res.BadHeader != 2 {
		t.Fatalf("bad header = %d: %v", res.BadHeader, diags)
	}
	want := []string{
		"Invalid number of parameters for HEADER field 'FILE_SCHEMA'. Expected 1, found 0.",
		"Invalid number of parameters for HEADER field 'FILE_NAME'. Expected 7, found 6.",
	}
	// отсутствующая FILE_SCHEMA привязана к HEADER, то есть раньше FILE_NAME
	for i := range want {
		if diags[i].Message != want[i] {
			t.Errorf("diag %d = %q, want %q", i, diags[i].Message, want[i])
		}
	}

	res, _, _ = checkString(t, input, Options{})
	if res.BadHeader != 0 {
		t.Error("header check ran without opt-in")
	}
}

func TestOnlyHeaderForcesHeaderCheck(t *testing.T) {
	input := "ISO-10303-21;HEADER;FILE_SCHEMA(('IFC4'),'extra');ENDSEC;DATA;#1=A();#1=A();"
	res, diags, _ := checkString(t, input, Options{OnlyHeader: true})
	if res.BadHeader != 3 || res.Duplicates != 0 {
		t.Fatalf("result = %+v, diags = %v", res, diags)
	}
}
