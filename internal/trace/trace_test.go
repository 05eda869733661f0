package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopeFile, true},
		{LevelPhase, ScopePass, false},
		{LevelDetail, ScopePass, true},
		{LevelDebug, ScopePass, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevelAndMode(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Errorf("ParseLevel = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Errorf("ParseMode = %v, %v", m, err)
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat = %v, %v", f, err)
	}
}

func TestStartNestsSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)

	ctx, run := Start(ctx, ScopeDriver, "validate")
	fileCtx, file := Start(ctx, ScopeFile, "file")
	_, pass := Start(fileCtx, ScopePass, "sema")
	pass.End("")
	file.WithFile("a.ifc").WithInstances(12).End("ok")
	run.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("events = %d\n%s", len(lines), buf.String())
	}
	var events []jsonEvent
	for _, line := range lines {
		var ev jsonEvent
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatal(err)
		}
		events = append(events, ev)
	}
	if events[1].ParentID != events[0].SpanID || events[2].ParentID != events[1].SpanID {
		t.Errorf("parents not linked: %+v", events)
	}
	if events[4].Extra[ExtraFile] != "a.ifc" || events[4].Extra[ExtraInstances] != "12" || events[4].Detail != "ok" {
		t.Errorf("file end = %+v", events[4])
	}
}

func TestLevelFiltersPasses(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithTracer(context.Background(), NewStreamTracer(&buf, LevelPhase, FormatText))
	ctx, file := Start(ctx, ScopeFile, "file")
	_, pass := Start(ctx, ScopePass, "lex+parse")
	pass.End("")
	file.End("")

	out := buf.String()
	if strings.Contains(out, "lex+parse") {
		t.Errorf("pass leaked at phase level:\n%s", out)
	}
	if strings.Count(out, "file") != 2 {
		t.Errorf("file span missing:\n%s", out)
	}
}

func TestRingKeepsLastEvents(t *testing.T) {
	ring := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		ring.Emit(&Event{Kind: KindPoint, Scope: ScopeFile, Name: name})
	}
	snap := ring.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Errorf("snapshot = %+v", snap)
	}

	multi := NewMultiTracer(LevelDebug, Nop, ring)
	if RingOf(multi) != ring || RingOf(Nop) != nil {
		t.Error("RingOf did not find the buffer")
	}
}

func TestNopContext(t *testing.T) {
	ctx, sp := Start(context.Background(), ScopeDriver, "x")
	if sp.ID() != 0 || CurrentSpan(ctx).SpanID != 0 {
		t.Error("nop tracer produced a span")
	}
	if sp.End("") != 0 {
		t.Error("nop span has duration")
	}
}

func TestHeartbeatReportsProgress(t *testing.T) {
	ring := NewRingTracer(8, LevelPhase)
	progress := NewProgress()
	h := &Heartbeat{tracer: ring, progress: progress}

	progress.FileDone(120, 0)
	progress.FileDone(30, 2)
	h.beat()
	h.beat()
	progress.FileDone(0, 1)
	h.beat()

	snap := ring.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("events = %d", len(snap))
	}
	tests := []struct {
		detail string
		files  string
	}{
		{"#1 files=2 instances=150 diagnostics=2", "2"},
		{"#2 files=2 instances=150 diagnostics=2 stalled", "2"},
		{"#3 files=3 instances=150 diagnostics=3", "3"},
	}
	for i, tt := range tests {
		ev := snap[i]
		if ev.Kind != KindHeartbeat || ev.Detail != tt.detail {
			t.Errorf("beat %d = %s %q, want %q", i, ev.Kind, ev.Detail, tt.detail)
		}
		if ev.Extra[ExtraFiles] != tt.files || ev.Extra[ExtraInstances] != "150" {
			t.Errorf("beat %d extra = %v", i, ev.Extra)
		}
	}
}

func TestHeartbeatStartStop(t *testing.T) {
	if StartHeartbeat(Nop, time.Millisecond, nil) != nil {
		t.Error("heartbeat started with tracing off")
	}
	var nilBeat *Heartbeat
	nilBeat.Stop()

	h := StartHeartbeat(NewRingTracer(4, LevelPhase), time.Millisecond, NewProgress())
	h.Stop()
	h.Stop()
}

func TestProgressFromContext(t *testing.T) {
	if ProgressFrom(context.Background()) != nil {
		t.Error("empty context has counters")
	}
	var p *Progress
	p.FileDone(1, 1)
	if p.Counts() != (Counts{}) {
		t.Error("nil progress counted")
	}

	p = NewProgress()
	ctx := WithProgress(context.Background(), p)
	ProgressFrom(ctx).FileDone(-1, 4)
	if got := p.Counts(); got != (Counts{Files: 1, Diagnostics: 4}) {
		t.Errorf("Counts = %+v", got)
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"", FormatText},
		{"-", FormatText},
		{"run.log", FormatText},
		{"run.ndjson", FormatNDJSON},
		{"out/run.JSONL", FormatNDJSON},
		{"run.json", FormatNDJSON},
	}
	for _, tt := range tests {
		if got := formatForPath(tt.path); got != tt.want {
			t.Errorf("formatForPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestSpanCarriesGoroutine(t *testing.T) {
	ring := NewRingTracer(4, LevelDebug)
	sp := Begin(ring, ScopeFile, "file", 0)
	sp.WithDiagnostics(3).End("invalid")
	snap := ring.Snapshot()
	if len(snap) != 2 || snap[0].GID == 0 || snap[0].GID != snap[1].GID {
		t.Fatalf("events = %+v", snap)
	}
	if snap[1].Extra[ExtraDiagnostics] != "3" || snap[1].SpanID != sp.ID() {
		t.Errorf("end = %+v", snap[1])
	}
}
