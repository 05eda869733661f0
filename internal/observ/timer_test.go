package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	a := tm.Begin("lex+parse")
	tm.End(a, "3 instances")
	b := tm.Begin("sema")
	tm.End(b, "")
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Note != "3 instances" || r.Phases[1].Name != "sema" {
		t.Fatalf("report = %+v", r)
	}
	sum := tm.Summary()
	if !strings.HasPrefix(sum, "timings:\n  lex+parse") || !strings.Contains(sum, "// 3 instances") ||
		!strings.Contains(sum, "  total") {
		t.Errorf("summary:\n%s", sum)
	}
}

func TestEmptyTimer(t *testing.T) {
	r := NewTimer().Report()
	if r.Phases != nil || r.TotalMS != 0 {
		t.Errorf("empty report = %+v", r)
	}
}

func TestReportMerge(t *testing.T) {
	total := Report{}
	total.Merge(Report{TotalMS: 3, Phases: []PhaseReport{{Name: "lex+parse", DurationMS: 2, Note: "x"}, {Name: "sema", DurationMS: 1}}})
	total.Merge(Report{TotalMS: 4, Phases: []PhaseReport{{Name: "lex+parse", DurationMS: 4}}})

	if total.TotalMS != 7 || len(total.Phases) != 2 {
		t.Fatalf("merged = %+v", total)
	}
	if total.Phases[0].DurationMS != 6 || total.Phases[0].Note != "" || total.Phases[1].DurationMS != 1 {
		t.Errorf("phases = %+v", total.Phases)
	}
}
