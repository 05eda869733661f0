package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"stepcheck/internal/diagfmt"
	"stepcheck/internal/sema"
)

func decodeReport(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, data)
	}
	return out
}

func firstError(t *testing.T, report map[string]any) map[string]any {
	t.Helper()
	errs, ok := report["errors"].([]any)
	if !ok || len(errs) == 0 {
		t.Fatalf("no errors in %v", report)
	}
	return errs[0].(map[string]any)
}

func TestJSONSyntaxError(t *testing.T) {
	diags, fs := collect(t, personFile, sema.Options{})
	var buf bytes.Buffer
	if err := diagfmt.JSON(&buf, "model.ifc", diags, fs, diagfmt.JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	report := decodeReport(t, buf.Bytes())
	if report["valid"] != false || report["count"] != float64(1) {
		t.Errorf("header = %v", report)
	}

	e := firstError(t, report)
	checks := map[string]any{
		"type":        "unexpected_token",
		"code":        "SYN2001",
		"lineno":      float64(8),
		"column":      float64(21),
		"found_type":  "comma",
		"found_value": ",",
		"line":        "#1=IFCPERSON($,$,'',,$,$,$,$);",
	}
	for k, want := range checks {
		if e[k] != want {
			t.Errorf("%s = %v, want %v", k, e[k], want)
		}
	}
	expected, _ := e["expected"].([]any)
	if len(expected) != 10 || expected[0] != "DBLQUOTE" || expected[9] != "UPPER" {
		t.Errorf("expected = %v", expected)
	}
	msg, _ := e["message"].(string)
	if !strings.HasPrefix(msg, "On line 8 column 21:\nUnexpected comma (',')\n") || strings.HasSuffix(msg, "\n") {
		t.Errorf("message = %q", msg)
	}
}

func TestJSONUnexpectedCharacter(t *testing.T) {
	diags, fs := collect(t, "ISO-10303-21;HEADER;ENDSEC;DATA;#1=A(b);ENDSEC;END-ISO-10303-21;", sema.Options{})
	report := diagfmt.BuildFileReport("model.ifc", diags, fs, diagfmt.JSONOpts{})
	if len(report.Errors) != 1 {
		t.Fatalf("errors = %d", len(report.Errors))
	}
	e := report.Errors[0]
	if e.Type != "unexpected_character" || e.FoundValue == nil || *e.FoundValue != "b" {
		t.Errorf("got %+v", e)
	}
}

func TestJSONDuplicateName(t *testing.T) {
	input := "ISO-10303-21;\nHEADER;\nENDSEC;\nDATA;\n#19=A();\n#19=B(1);\nENDSEC;\nEND-ISO-10303-21;\n"
	diags, fs := collect(t, input, sema.Options{})
	var buf bytes.Buffer
	if err := diagfmt.JSON(&buf, "model.ifc", diags, fs, diagfmt.JSONOpts{IncludeNotes: true}); err != nil {
		t.Fatal(err)
	}
	e := firstError(t, decodeReport(t, buf.Bytes()))
	if e["type"] != "duplicate_name" || e["name"] != float64(19) || e["lineno"] != float64(6) {
		t.Errorf("got %v", e)
	}
	if _, ok := e["column"]; ok {
		t.Error("semantic errors carry no column")
	}
	if e["line"] != "#19=B(1);" {
		t.Errorf("line = %v", e["line"])
	}
	notes, _ := e["notes"].([]any)
	if len(notes) != 1 {
		t.Fatalf("notes = %v", e["notes"])
	}
}

func TestJSONHeaderField(t *testing.T) {
	input := "ISO-10303-21;HEADER;FILE_DESCRIPTION((''),'2;1');FILE_SCHEMA(('IFC4'));ENDSEC;"
	diags, fs := collect(t, input, sema.Options{OnlyHeader: true})
	report := diagfmt.BuildFileReport("model.ifc", diags, fs, diagfmt.JSONOpts{})
	if len(report.Errors) != 1 {
		t.Fatalf("errors = %+v", report.Errors)
	}
	e := report.Errors[0]
	if e.Type != "invalid_header_field" || e.Field != "FILE_NAME" {
		t.Errorf("got %+v", e)
	}
	if e.ExpectedFieldCount == nil || *e.ExpectedFieldCount != 7 ||
		e.ActualFieldCount == nil || *e.ActualFieldCount != 0 {
		t.Errorf("counts = %v / %v", e.ExpectedFieldCount, e.ActualFieldCount)
	}
}

func TestJSONValidAndMax(t *testing.T) {
	report := diagfmt.BuildFileReport("model.ifc", nil, nil, diagfmt.JSONOpts{})
	if !report.Valid || report.Count != 0 || report.Errors == nil {
		t.Errorf("valid report = %+v", report)
	}

	input := "ISO-10303-21;HEADER;ENDSEC;DATA;#1=A();#1=A();#1=A();ENDSEC;END-ISO-10303-21;"
	diags, fs := collect(t, input, sema.Options{})
	capped := diagfmt.BuildFileReport("model.ifc", diags, fs, diagfmt.JSONOpts{Max: 1})
	if capped.Count != 2 || len(capped.Errors) != 1 {
		t.Errorf("count=%d errors=%d", capped.Count, len(capped.Errors))
	}
}
