package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16  // 64 KiB на один вход фаззера
)

// builtinSeeds cover every token kind and the usual ways files go wrong.
var builtinSeeds = []string{
	"",
	"ISO-10303-21;HEADER;ENDSEC;DATA;ENDSEC;END-ISO-10303-21;",
	"ISO-10303-21;\nHEADER;\nFILE_DESCRIPTION(('ViewDefinition [CoordinationView]'),'2;1');\nFILE_NAME('a.ifc','2024-01-01T00:00:00',(''),(''),'','','');\nFILE_SCHEMA(('IFC4'));\nENDSEC;\nDATA;\n#1=IFCPERSON($,$,'',$,$,$,$,$);\nENDSEC;\nEND-ISO-10303-21;\n",
	"ISO-10303-21;HEADER;ENDSEC;DATA;#1=IFCPERSON($,$,'',,$,$,$,$);ENDSEC;END-ISO-10303-21;",
	"ISO-10303-21;HEADER;ENDSEC;DATA;#1=A();;ENDSEC;END-ISO-10303-21;",
	"ISO-10303-21;\nFILE_NAME('');",
	"ISO-10303-21;HEADER;ENDSEC;DATA;#19=A();#19=A();ENDSEC;END-ISO-10303-21;",
	"ISO-10303-21;HEADER;ENDSEC;DATA;#2=(A(1)B(\"0F\"));#3=C(IFCLABEL('x'),.T.,-1.5E-3,*);ENDSEC;END-ISO-10303-21;",
	"'\\X2\\00E9\\X0\\ \\S\\e \\PA\\ \\X\\41 '' \\\\'",
	"/* comment */ #12=.ENUM_1.; \"3\" !USER(",
	"((((((((((((((((((((((((((((((((",
	"ISO-10303-21;HEADER;ENDSEC;DATA;#1=A(#7,(#1,#8));ENDSEC;DATA;#7=B();ENDSEC;END-ISO-10303-21;",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все STEP-файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".ifc", ".stp", ".step", ".p21":
		default:
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
