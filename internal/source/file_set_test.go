package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("model.stp", []byte("ISO-10303-21;"), 0)
	id2 := fs.Add("model.stp", []byte("ISO-10303-21;\n"), 0)
	if id1 != 0 || id2 != 1 {
		t.Fatalf("unexpected ids %d, %d", id1, id2)
	}

	latest, ok := fs.GetLatest("model.stp")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d, %v; want %d", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "ISO-10303-21;" {
		t.Errorf("old version lost: %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
}

// TestAddVirtualNormalizes проверяет, что AddVirtual чистит BOM и CRLF
func TestAddVirtualNormalizes(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.stp", []byte("\xEF\xBB\xBFa\r\nb\r\n"))
	f := fs.Get(id)

	if string(f.Content) != "a\nb\n" {
		t.Fatalf("content = %q", f.Content)
	}
	want := []uint32{1, 3}
	if len(f.LineIdx) != len(want) {
		t.Fatalf("LineIdx = %v, want %v", f.LineIdx, want)
	}
	for i := range want {
		if f.LineIdx[i] != want[i] {
			t.Errorf("LineIdx[%d] = %d, want %d", i, f.LineIdx[i], want[i])
		}
	}
	for _, flag := range []FileFlags{FileVirtual, FileHadBOM, FileNormalizedCRLF} {
		if f.Flags&flag == 0 {
			t.Errorf("flag %b not set", flag)
		}
	}
}

func TestNormalizeCRLFKeepsLoneCR(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\rb\r\nc"))
	if !changed {
		t.Fatal("expected change")
	}
	if string(out) != "a\rb\nc" {
		t.Errorf("got %q", out)
	}
	if _, changed := normalizeCRLF([]byte("plain\n")); changed {
		t.Error("plain input reported as changed")
	}
}

func TestResolveCharacterColumns(t *testing.T) {
	fs := NewFileSet()
	// α и é занимают по два байта, колонка считается в символах
	id := fs.AddVirtual("u.stp", []byte("#1=A('αé',,);\nX\n"))

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{5, LineCol{1, 6}},
		{6, LineCol{1, 7}},  // 'α'
		{8, LineCol{1, 8}},  // 'é'
		{10, LineCol{1, 9}}, // закрывающая кавычка
		{11, LineCol{1, 10}},
		{16, LineCol{2, 1}},
		{17, LineCol{2, 2}},
	}
	for _, tc := range cases {
		got, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
		if got != tc.want {
			t.Errorf("offset %d: got %+v, want %+v", tc.off, got, tc.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("g.stp", []byte("first\nsecond\n\nlast")))

	cases := map[uint32]string{
		0: "",
		1: "first",
		2: "second",
		3: "",
		4: "last",
		5: "",
	}
	for line, want := range cases {
		if got := f.GetLine(line); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
	if f.LineCount() != 4 {
		t.Errorf("LineCount = %d, want 4", f.LineCount())
	}
	if f.LineWidth(2) != 6 {
		t.Errorf("LineWidth(2) = %d", f.LineWidth(2))
	}
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "disk.step")
	if err := os.WriteFile(path, []byte("HEADER;\r\nENDSEC;\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if f.Flags&FileVirtual != 0 {
		t.Error("disk file marked virtual")
	}
	if got := f.FormatPath("relative", fs.BaseDir()); got != "disk.step" {
		t.Errorf("relative path = %q", got)
	}
	if got := f.FormatPath("basename", ""); got != "disk.step" {
		t.Errorf("basename = %q", got)
	}
	if _, err := fs.Load(filepath.Join(dir, "missing.step")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 5}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Errorf("Cover = %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 100}); got != a {
		t.Errorf("cross-file Cover changed span: %v", got)
	}
	if got := a.Head(1); got.Len() != 1 || got.Start != 4 {
		t.Errorf("Head = %v", got)
	}
	if !a.Contains(Span{File: 1, Start: 5, End: 6}) {
		t.Error("Contains failed")
	}
	if !(Span{Start: 3, End: 3}).Empty() {
		t.Error("Empty failed")
	}
}

func TestCheckSize(t *testing.T) {
	tests := []struct {
		n       int64
		wantErr bool
	}{
		{0, false},
		{1 << 20, false},
		{1<<32 - 1, false},
		{1 << 32, true},
		{-1, true},
	}
	for _, tt := range tests {
		err := CheckSize(tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("CheckSize(%d) = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrTooLarge) {
			t.Errorf("CheckSize(%d) = %v, want ErrTooLarge", tt.n, err)
		}
	}
}
