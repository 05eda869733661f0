package trace

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Progress считает проверенные файлы, разобранные instance-ы и найденные
// диагностики. Драйвер пишет в него из воркеров, heartbeat читает.
// Все методы допускают nil.
type Progress struct {
	files       atomic.Uint64
	instances   atomic.Uint64
	diagnostics atomic.Uint64
}

func NewProgress() *Progress { return &Progress{} }

// FileDone records one finished file.
func (p *Progress) FileDone(instances, diagnostics int) {
	if p == nil {
		return
	}
	p.files.Add(1)
	p.instances.Add(uint64(max(instances, 0)))
	p.diagnostics.Add(uint64(max(diagnostics, 0)))
}

// Counts is a snapshot of Progress.
type Counts struct {
	Files       uint64
	Instances   uint64
	Diagnostics uint64
}

func (p *Progress) Counts() Counts {
	if p == nil {
		return Counts{}
	}
	return Counts{
		Files:       p.files.Load(),
		Instances:   p.instances.Load(),
		Diagnostics: p.diagnostics.Load(),
	}
}

func (c Counts) String() string {
	return fmt.Sprintf("files=%d instances=%d diagnostics=%d", c.Files, c.Instances, c.Diagnostics)
}

func (c Counts) extra() map[string]string {
	return map[string]string{
		ExtraFiles:       strconv.FormatUint(c.Files, 10),
		ExtraInstances:   strconv.FormatUint(c.Instances, 10),
		ExtraDiagnostics: strconv.FormatUint(c.Diagnostics, 10),
	}
}

// Heartbeat периодически печатает счётчики Progress. Если между двумя
// тиками ни один файл не закончился, событие помечается как stalled:
// так видно файл, на котором валидатор завис.
type Heartbeat struct {
	tracer   Tracer
	progress *Progress
	last     Counts
	ticks    uint64

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// StartHeartbeat returns nil when tracing is off or interval is not positive.
func StartHeartbeat(tracer Tracer, interval time.Duration, progress *Progress) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer:   tracer,
		progress: progress,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go h.run(interval)
	return h
}

func (h *Heartbeat) run(interval time.Duration) {
	defer close(h.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			h.beat()
		case <-h.stop:
			return
		}
	}
}

// beat emits one heartbeat event. Only the run goroutine calls it.
func (h *Heartbeat) beat() {
	now := h.progress.Counts()
	h.ticks++
	detail := "#" + strconv.FormatUint(h.ticks, 10) + " " + now.String()
	if h.ticks > 1 && now.Files == h.last.Files {
		detail += " stalled"
	}
	h.last = now
	h.tracer.Emit(&Event{
		Time:   time.Now(),
		Kind:   KindHeartbeat,
		Scope:  ScopeDriver,
		GID:    goroutineID(),
		Name:   "heartbeat",
		Detail: detail,
		Extra:  now.extra(),
	})
}

// Stop останавливает горутину и ждёт её завершения. Повторный вызов безопасен.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}
