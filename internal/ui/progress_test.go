package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"stepcheck/internal/driver"
)

func apply(m tea.Model, evs ...driver.Event) tea.Model {
	for _, ev := range evs {
		m, _ = m.Update(eventMsg(ev))
	}
	return m
}

func TestProgressTracksStatuses(t *testing.T) {
	files := []string{"/d/a.ifc", "/d/b.ifc", "/d/c.ifc"}
	short := func(p string) string { return strings.TrimPrefix(p, "/d/") }
	m := NewProgressModel("validate /d", files, short, nil)

	m = apply(m,
		driver.Event{File: "/d/a.ifc", Stage: driver.StageParse, Status: driver.StatusWorking},
		driver.Event{File: "/d/a.ifc", Stage: driver.StageSema, Status: driver.StatusDone},
		driver.Event{File: "/d/b.ifc", Stage: driver.StageSema, Status: driver.StatusInvalid, Diagnostics: 2, Cached: true},
		driver.Event{File: "/d/c.ifc", Stage: driver.StageSema, Status: driver.StatusWorking},
		driver.Event{File: "/elsewhere.ifc", Stage: driver.StageSema, Status: driver.StatusDone},
	)

	pm := m.(*progressModel)
	want := []string{"valid", "invalid", "checking"}
	for i, item := range pm.items {
		if item.status != want[i] {
			t.Errorf("%s: status %q, want %q", item.path, item.status, want[i])
		}
	}
	if pm.finished != 2 || pm.invalid != 1 || pm.cached != 1 {
		t.Errorf("counters finished=%d invalid=%d cached=%d", pm.finished, pm.invalid, pm.cached)
	}

	view := m.View()
	for _, s := range []string{"(2/3)", "b.ifc (2)", "1 valid", "1 invalid", "0 errors", "1 cached"} {
		if !strings.Contains(view, s) {
			t.Errorf("view lacks %q:\n%s", s, view)
		}
	}
	if strings.Contains(view, "/d/") {
		t.Errorf("display func not applied:\n%s", view)
	}
}

func TestFinalStatusSticks(t *testing.T) {
	m := NewProgressModel("x", []string{"a"}, nil, nil)
	m = apply(m,
		driver.Event{File: "a", Stage: driver.StageLoad, Status: driver.StatusError},
		driver.Event{File: "a", Stage: driver.StageParse, Status: driver.StatusWorking},
	)
	if got := m.(*progressModel).items[0].status; got != "error" {
		t.Errorf("status = %q", got)
	}
}

func TestVisibleRowsLimit(t *testing.T) {
	var files []string
	for i := range 30 {
		files = append(files, strings.Repeat("f", i+1))
	}
	m := NewProgressModel("many", files, nil, nil).(*progressModel)
	apply(m, driver.Event{File: files[20], Stage: driver.StageParse, Status: driver.StatusWorking})

	rows := m.visibleRows()
	if len(rows) != maxRows || rows[0] != 20 {
		t.Errorf("rows = %v", rows)
	}
	if !strings.Contains(m.View(), "... 18 more") {
		t.Errorf("missing overflow line:\n%s", m.View())
	}
}

func TestDoneQuits(t *testing.T) {
	m := NewProgressModel("x", []string{"a"}, nil, nil)
	m, cmd := m.Update(doneMsg{})
	if cmd == nil || !m.(*progressModel).done {
		t.Fatal("doneMsg should stop the program")
	}
	if !strings.Contains(m.View(), "done: x") {
		t.Errorf("view = %q", m.View())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 6, "abc..."},
		{"abcdef", 2, "ab"},
		{"abcdefghij", 4, "a..."},
		{"abcdefghij", 10, "abcdefghij"},
		{"путь/файл.ifc", 8, "путь/..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
