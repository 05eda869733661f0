package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"stepcheck/internal/diagfmt"
	"stepcheck/internal/lexer"
	"stepcheck/internal/parser"
	"stepcheck/internal/source"
)

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.ifc", []byte("#1=A('it''s');\n~"))
	toks := lexer.New(fs.Get(id), lexer.Options{}).All()

	var buf bytes.Buffer
	if err := diagfmt.FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != `  1: Ref        "#1" at 1:1-1:3` {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(buf.String(), `"'it''s'" => "it's"`) {
		t.Errorf("decoded string missing:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "Invalid") {
		t.Errorf("invalid token missing:\n%s", buf.String())
	}
	if !strings.HasPrefix(lines[len(lines)-1], fmt.Sprintf("%3d: EOF", len(lines))) {
		t.Errorf("last line = %q", lines[len(lines)-1])
	}
}

func TestFormatTokensJSON(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.ifc", []byte("#12=.T.;"))
	toks := lexer.New(fs.Get(id), lexer.Options{}).All()

	var buf bytes.Buffer
	if err := diagfmt.FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var out []diagfmt.TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 5 {
		t.Fatalf("tokens = %d", len(out))
	}
	if out[0].Grammar != "HASH" || out[0].ID != 12 {
		t.Errorf("ref = %+v", out[0])
	}
	if out[2].Grammar != "DOT" || out[2].Value == nil || *out[2].Value != "T" {
		t.Errorf("enum = %+v", out[2])
	}
	if out[4].Kind != "EOF" {
		t.Errorf("last = %+v", out[4])
	}
}

const dumpFile = `ISO-10303-21;
HEADER;
FILE_SCHEMA(('IFC4'));
ENDSEC;
DATA;
#1=IFCLABELLED(IFCLABEL('a'),#2,(1,2.5),.T.,$,*);
#2=(A()B("0F"));
ENDSEC;
END-ISO-10303-21;
`

func TestFormatInstance(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("d.ifc", []byte(dumpFile))
	res := parser.ParseFile(lexer.New(fs.Get(id), lexer.Options{}), parser.Options{})
	if !res.OK {
		t.Fatal("parse failed")
	}
	first, _ := res.Doc.ByID(1)
	if got := diagfmt.FormatInstance(res.Doc, first); got != `#1=IFCLABELLED(IFCLABEL('a'),#2,(1,2.5),.T.,$,*);` {
		t.Errorf("instance = %s", got)
	}
	second, _ := res.Doc.ByID(2)
	if got := diagfmt.FormatInstance(res.Doc, second); got != `#2=(A()B("0F"));` {
		t.Errorf("complex = %s", got)
	}

	var buf bytes.Buffer
	if err := diagfmt.FormatDocumentPretty(&buf, res.Doc, nil, fs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"├─ HEADER", "│  └─ FILE_SCHEMA(('IFC4'))", "└─ DATA (2 instances)", "   └─ #2="} {
		if !strings.Contains(out, want) {
			t.Errorf("pretty dump lacks %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := diagfmt.FormatDocumentJSON(&buf, res.Doc, nil, fs); err != nil {
		t.Fatal(err)
	}
	var doc diagfmt.DocumentOutput
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Schema != "IFC4" || len(doc.Instances) != 2 || doc.Instances[0].Line != 6 || len(doc.Instances[1].Parts) != 2 {
		t.Errorf("json dump = %+v", doc)
	}
}
