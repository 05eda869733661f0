package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validFile = `ISO-10303-21;
HEADER;
FILE_DESCRIPTION(('ViewDefinition [CoordinationView]'),'2;1');
FILE_NAME('a.ifc','2024-01-01T00:00:00',(''),(''),'','','');
FILE_SCHEMA(('IFC4'));
ENDSEC;
DATA;
#1=IFCPERSON($,$,'',$,$,$,$,$);
#2=IFCWALL('2O2Fr$t4X7Zf8NOew3FLOH',#1,$,$,$,$,$,$,$);
ENDSEC;
END-ISO-10303-21;
`

const duplicateFile = `ISO-10303-21;
HEADER;
ENDSEC;
DATA;
#1=IFCPERSON($,$,'',$,$,$,$,$);
#1=IFCPERSON($,$,'',$,$,$,$,$);
ENDSEC;
END-ISO-10303-21;
`

const danglingFile = "ISO-10303-21;HEADER;ENDSEC;DATA;#1=IFCWALL(#5);ENDSEC;END-ISO-10303-21;"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var out, errb bytes.Buffer
	code := execute(args, &out, &errb)
	return out.String(), errb.String(), code
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	valid := writeFile(t, dir, "valid.ifc", validFile)
	dup := writeFile(t, dir, "dup.ifc", duplicateFile)
	dangling := writeFile(t, dir, "dangling.ifc", danglingFile)

	tests := []struct {
		name     string
		args     []string
		wantCode int
		want     string
	}{
		{"valid", []string{"validate", valid}, 0, "Valid\n"},
		{
			"duplicate",
			[]string{"validate", dup},
			1,
			"On line 6:\nDuplicate instance name #1\n00006 | #1=IFCPERSON($,$,'',$,$,$,$,$);\n        " + strings.Repeat("^", 31) + "\n",
		},
		{"refs off by default", []string{"validate", dangling}, 0, "Valid\n"},
		{"refs on", []string{"validate", "--check-refs", "--format", "short", dangling}, 1, "Unresolved instance reference #5"},
		{"short valid", []string{"validate", "--format", "short", valid}, 0, "Valid\n"},
		{"bad format", []string{"validate", "--format", "xml", valid}, 2, ""},
		{"missing file", []string{"validate", filepath.Join(dir, "none.ifc")}, 2, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut, code := run(t, tt.args...)
			if code != tt.wantCode {
				t.Fatalf("exit %d, want %d\nstdout:\n%s\nstderr:\n%s", code, tt.wantCode, out, errOut)
			}
			if tt.wantCode == 2 {
				if !strings.HasPrefix(errOut, "error: ") {
					t.Errorf("stderr = %q", errOut)
				}
				return
			}
			if strings.HasSuffix(tt.want, "\n") {
				if out != tt.want {
					t.Errorf("stdout:\n%s\nwant:\n%s", out, tt.want)
				}
			} else if !strings.Contains(out, tt.want) {
				t.Errorf("stdout lacks %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestValidateJSON(t *testing.T) {
	dir := t.TempDir()
	dup := writeFile(t, dir, "dup.ifc", duplicateFile)

	out, _, code := run(t, "validate", "--format", "json", dup)
	if code != 1 {
		t.Fatalf("exit %d", code)
	}
	var report struct {
		Valid  bool `json:"valid"`
		Errors []struct {
			Type   string `json:"type"`
			Lineno int    `json:"lineno"`
		} `json:"errors"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("bad json: %v\n%s", err, out)
	}
	if report.Valid || len(report.Errors) != 1 || report.Errors[0].Type != "duplicate_name" || report.Errors[0].Lineno != 6 {
		t.Errorf("report = %+v", report)
	}
}

func TestValidateDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ifc", validFile)
	writeFile(t, dir, "b.stp", duplicateFile)
	writeFile(t, dir, "readme.txt", "ignored")

	out, _, code := run(t, "validate", "--ui", "off", "--jobs", "2", dir)
	if code != 1 {
		t.Fatalf("exit %d\n%s", code, out)
	}
	if !strings.Contains(out, "== a.ifc ==\nValid\n") || !strings.Contains(out, "== b.stp ==\nOn line 6:") {
		t.Errorf("stdout:\n%s", out)
	}
	if !strings.HasSuffix(out, "2 file(s): 1 valid, 1 invalid\n") {
		t.Errorf("summary missing:\n%s", out)
	}

	quiet, _, _ := run(t, "validate", "--ui", "off", "--quiet", dir)
	if strings.Contains(quiet, "a.ifc") || !strings.HasPrefix(quiet, "b.stp:\n") {
		t.Errorf("quiet output:\n%s", quiet)
	}

	only, _, code := run(t, "validate", "--ui", "off", "--ext", ".ifc", dir)
	if code != 0 || strings.Contains(only, "b.stp") {
		t.Errorf("ext filter: exit %d\n%s", code, only)
	}
}

func TestValidateWithCache(t *testing.T) {
	dir := t.TempDir()
	dup := writeFile(t, dir, "dup.ifc", duplicateFile)
	cacheDir := filepath.Join(dir, "cache")

	first, _, _ := run(t, "validate", "--cache", "--cache-dir", cacheDir, dup)
	second, errOut, code := run(t, "validate", "--cache", "--cache-dir", cacheDir, "--timings", dup)
	if code != 1 || first != second {
		t.Errorf("cached output differs (exit %d):\n%s\nvs\n%s", code, first, second)
	}
	if !strings.Contains(errOut, "1 of 1 file(s) from cache") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	dangling := writeFile(t, dir, "dangling.ifc", danglingFile)
	cfg := writeFile(t, dir, "stepcheck.toml", "[validate]\ncheck_references = true\nformat = \"short\"\n")

	out, _, code := run(t, "--config", cfg, "validate", dangling)
	if code != 1 || !strings.Contains(out, "Unresolved instance reference #5") {
		t.Errorf("config not applied: exit %d\n%s", code, out)
	}

	// явный флаг сильнее файла
	out, _, code = run(t, "--config", cfg, "validate", "--check-refs=false", dangling)
	if code != 0 || out != "Valid\n" {
		t.Errorf("flag should override config: exit %d\n%s", code, out)
	}

	bad := writeFile(t, dir, "bad.toml", "[validate]\nchek = true\n")
	_, errOut, code := run(t, "--config", bad, "validate", dangling)
	if code != 2 || !strings.Contains(errOut, "unknown keys: validate.chek") {
		t.Errorf("unknown key: exit %d, stderr %q", code, errOut)
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeFile(t, root, "stepcheck.toml", "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	got, ok, err := findConfig(nested)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	wantAbs, _ := filepath.Abs(want)
	if got != wantAbs {
		t.Errorf("found %s, want %s", got, wantAbs)
	}
}

func TestTokenizeAndParseCommands(t *testing.T) {
	dir := t.TempDir()
	valid := writeFile(t, dir, "valid.ifc", validFile)

	out, _, code := run(t, "tokenize", "--format", "json", valid)
	if code != 0 || !strings.Contains(out, `"kind"`) {
		t.Errorf("tokenize: exit %d\n%s", code, out)
	}

	out, _, code = run(t, "parse", "--id", "2", valid)
	if code != 0 || !strings.Contains(out, "#2=IFCWALL(") || strings.Contains(out, "#1=IFCPERSON") {
		t.Errorf("parse --id: exit %d\n%s", code, out)
	}

	out, _, code = run(t, "parse", "--type", "ifcperson", valid)
	if code != 0 || !strings.Contains(out, "DATA (1 instances)") {
		t.Errorf("parse --type: exit %d\n%s", code, out)
	}

	out, _, code = run(t, "parse", "--header", valid)
	if code != 0 || !strings.Contains(out, "FILE_SCHEMA(('IFC4'))") || !strings.Contains(out, "DATA (0 instances)") {
		t.Errorf("parse --header: exit %d\n%s", code, out)
	}

	_, _, code = run(t, "parse", "--id", "9", valid)
	if code != 2 {
		t.Errorf("missing id: exit %d", code)
	}

	broken := writeFile(t, dir, "broken.ifc", "ISO-10303-21;\nFILE_NAME();")
	_, errOut, code := run(t, "parse", broken)
	if code != 1 || !strings.Contains(errOut, "Expecting HEADER") {
		t.Errorf("parse broken: exit %d\n%s", code, errOut)
	}
}

func TestGrammarAndVersionCommands(t *testing.T) {
	out, _, code := run(t, "grammar")
	if code != 0 || !strings.Contains(out, `File          = "ISO-10303-21"`) {
		t.Errorf("grammar: exit %d\n%s", code, out)
	}
	out, _, code = run(t, "grammar", "--verify")
	if code != 0 || out != "grammar ok (start File)\n" {
		t.Errorf("grammar --verify: exit %d %q", code, out)
	}

	out, _, code = run(t, "version", "--format", "json", "--hash")
	var payload versionPayload
	if code != 0 || json.Unmarshal([]byte(out), &payload) != nil || payload.Tool != "stepcheck" || payload.GitCommit == "" {
		t.Errorf("version: exit %d\n%s", code, out)
	}
}

func TestTraceFlags(t *testing.T) {
	dir := t.TempDir()
	valid := writeFile(t, dir, "valid.ifc", validFile)
	traceFile := filepath.Join(dir, "trace.ndjson")

	_, _, code := run(t, "--trace", traceFile, "--trace-mode", "stream", "--trace-level", "detail", "validate", valid)
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	data, err := os.ReadFile(traceFile)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{`"file"`, `"lex+parse"`, `"sema"`} {
		if !bytes.Contains(data, []byte(name)) {
			t.Errorf("trace lacks %s:\n%s", name, data)
		}
	}

	_, errOut, code := run(t, "--trace-level", "loud", "validate", valid)
	if code != 2 || !strings.Contains(errOut, "invalid trace level") {
		t.Errorf("bad level: exit %d %q", code, errOut)
	}
}

func TestProfileFlags(t *testing.T) {
	dir := t.TempDir()
	valid := writeFile(t, dir, "valid.ifc", validFile)
	cpu := filepath.Join(dir, "cpu.pprof")
	mem := filepath.Join(dir, "mem.pprof")

	_, _, code := run(t, "--cpu-profile", cpu, "--mem-profile", mem, "validate", valid)
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	for _, p := range []string{cpu, mem} {
		if info, err := os.Stat(p); err != nil || info.Size() == 0 {
			t.Errorf("%s: %v", filepath.Base(p), err)
		}
	}

	// профиль пишется и когда файл невалиден
	dup := writeFile(t, dir, "dup.ifc", duplicateFile)
	cpu2 := filepath.Join(dir, "cpu2.pprof")
	if _, _, code := run(t, "--cpu-profile", cpu2, "validate", dup); code != 1 {
		t.Fatalf("exit %d", code)
	}
	if _, err := os.Stat(cpu2); err != nil {
		t.Error(err)
	}
}

func TestValidateForeignEncoding(t *testing.T) {
	dir := t.TempDir()
	xml := writeFile(t, dir, "model.ifc", "<?xml version=\"1.0\"?>\n<ifcXML xmlns=\"urn:iso10303-28\">\n</ifcXML>\n")

	out, _, code := run(t, "validate", xml)
	if code != 1 || strings.Contains(out, "note:") {
		t.Fatalf("exit %d, notes without --with-notes:\n%s", code, out)
	}
	if !strings.Contains(out, "Expecting ISO-10303-21") {
		t.Errorf("report:\n%s", out)
	}

	out, _, code = run(t, "validate", "--with-notes", xml)
	if code != 1 || !strings.Contains(out, "note: The content looks like XML (ifcXML / ISO 10303-28).") {
		t.Errorf("exit %d:\n%s", code, out)
	}
}
