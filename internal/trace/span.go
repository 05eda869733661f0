package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

// Ключи Extra, которые выставляет драйвер.
const (
	ExtraFile        = "file"
	ExtraFiles       = "files"
	ExtraInstances   = "instances"
	ExtraDiagnostics = "diagnostics"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// goroutineID достаёт N из заголовка "goroutine N [running]:" в runtime.Stack.
// Воркеры ValidateDir различаются в трассе только по нему.
func goroutineID() uint64 {
	var buf [64]byte
	head := buf[:runtime.Stack(buf[:], false)]
	head, ok := bytes.CutPrefix(head, []byte("goroutine "))
	if !ok {
		return 0
	}
	num, _, ok := bytes.Cut(head, []byte(" "))
	if !ok {
		return 0
	}
	gid, err := strconv.ParseUint(string(num), 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

// Span is one traced operation: a driver run, a file or a pass.
// A span whose scope the tracer filters out is inert.
type Span struct {
	tracer  Tracer
	ev      Event // scope, ids and name shared by begin and end
	started time.Time
	extra   map[string]string
}

// Begin emits the begin event. parent is 0 for a root span.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{tracer: Nop}
	}
	s := &Span{
		tracer:  t,
		started: time.Now(),
		ev: Event{
			Scope:    scope,
			SpanID:   spanCounter.Add(1),
			ParentID: parent,
			GID:      goroutineID(),
			Name:     name,
		},
	}
	s.emit(KindSpanBegin, "", nil)
	return s
}

func (s *Span) live() bool {
	return s != nil && s.tracer != nil && s.tracer.Enabled()
}

func (s *Span) emit(kind Kind, detail string, extra map[string]string) {
	ev := s.ev
	ev.Time = time.Now()
	ev.Kind = kind
	ev.Detail = detail
	ev.Extra = extra
	s.tracer.Emit(&ev)
}

// End emits the end event with the collected extras and returns the
// span's duration. detail is the verdict, e.g. "valid" or "cached".
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	s.emit(KindSpanEnd, detail, s.extra)
	return time.Since(s.started)
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 4)
	}
	s.extra[key] = value
	return s
}

func (s *Span) WithFile(path string) *Span { return s.WithExtra(ExtraFile, path) }

func (s *Span) WithFiles(n int) *Span { return s.WithExtra(ExtraFiles, strconv.Itoa(n)) }

func (s *Span) WithInstances(n int) *Span { return s.WithExtra(ExtraInstances, strconv.Itoa(n)) }

func (s *Span) WithDiagnostics(n int) *Span {
	return s.WithExtra(ExtraDiagnostics, strconv.Itoa(n))
}

// ID returns 0 for an inert span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.ev.SpanID
}
