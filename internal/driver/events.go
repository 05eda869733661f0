package driver

import "time"

// Stage describes where a file is in a directory run.
type Stage string

const (
	// StageLoad: reading the file from disk.
	StageLoad Stage = "load"
	// StageParse: lexing and parsing.
	StageParse Stage = "parse"
	// StageSema: duplicate, reference and header checks.
	StageSema Stage = "sema"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being processed.
	StatusWorking Status = "working"
	// StatusDone: validated, no diagnostics.
	StatusDone Status = "done"
	// StatusInvalid: validated, diagnostics found.
	StatusInvalid Status = "invalid"
	// StatusError: the file could not be validated at all.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File        string
	Stage       Stage
	Status      Status
	Diagnostics int
	Cached      bool
	Err         error
	Elapsed     time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
