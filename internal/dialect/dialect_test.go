package dialect

import (
	"strings"
	"testing"

	"stepcheck/internal/source"
)

func fileOf(content string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("input", []byte(content)))
}

func TestDetect(t *testing.T) {
	cases := []struct {
		name     string
		content  string
		want     Kind
		eligible bool
	}{
		{"ifcxml", `<?xml version="1.0"?><ifcXML xmlns="urn:iso.org:standard:10303:part(28)">`, XML, true},
		{"step xml", "<iso_10303_28 version=\"2.0\">\n<ex:iso_10303_28_header>", XML, true},
		{"ifcjson", `{"type":"ifcJSON","data":[{"type":"IfcProject","globalId":"x"}]}`, JSON, true},
		{"zip", "PK\x03\x04\x14\x00\x00\x00", Zip, true},
		{"gzip", "\x1f\x8b\x08\x00\x00\x00", Gzip, true},
		{"utf16 bom", "\xff\xfeI\x00S\x00O\x00", UTF16, true},
		{"utf16 no bom", strings.Repeat("I\x00S\x00O\x00-\x00", 4), UTF16, true},
		{"lonely brace", "{", JSON, false},
		{"step", "ISO-10303-21;HEADER;ENDSEC;", Unknown, false},
		{"empty", "", Unknown, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Detect(fileOf(tc.content))
			if c.Kind != tc.want {
				t.Fatalf("kind = %v, want %v (%s)", c.Kind, tc.want, Describe(c))
			}
			if c.Eligible() != tc.eligible {
				t.Errorf("eligible = %v (%s)", c.Eligible(), Describe(c))
			}
		})
	}
}

func TestClassifierRunnerUp(t *testing.T) {
	e := NewEvidence()
	e.Add(Hint{Kind: XML, Score: 6})
	e.Add(Hint{Kind: JSON, Score: 2})
	e.Add(Hint{Kind: Unknown, Score: 9})
	e.Add(Hint{Kind: JSON, Score: -1})

	c := (Classifier{}).Classify(e)
	if c.Kind != XML || c.RunnerUp != JSON || c.RunnerUpScore != 2 || c.TotalScore != 8 || c.ObservedSignals != 4 {
		t.Errorf("classification = %+v", c)
	}
	if c.Confidence != 0.75 {
		t.Errorf("confidence = %v", c.Confidence)
	}
	if got := (Classifier{}).Classify(nil); got.Kind != Unknown {
		t.Errorf("nil evidence = %+v", got)
	}
}

func TestRenderHint(t *testing.T) {
	got := RenderHint(Classification{Kind: Zip, Score: 10, TotalScore: 10, Confidence: 1})
	want := "The file is a zip archive (ifcZIP?). stepcheck reads ISO 10303-21 exchange files only. Unpack it and validate the .ifc file inside."
	if got != want {
		t.Errorf("hint = %q", got)
	}
	if RenderHint(Classification{}) != "" {
		t.Error("unknown kind must render nothing")
	}
	if XML.GoString() != "dialect.Kind(xml)" {
		t.Errorf("GoString = %s", XML.GoString())
	}
}
