package dialect

import "stepcheck/internal/source"

// Hint is a small piece of evidence suggesting a particular encoding.
// It is not itself a diagnostic.
type Hint struct {
	Kind   Kind
	Score  int
	Reason string
	Span   source.Span
}

// Evidence aggregates per-file hints.
type Evidence struct {
	hints []Hint
}

func NewEvidence() *Evidence {
	return &Evidence{
		hints: make([]Hint, 0, 8),
	}
}

func (e *Evidence) Add(h Hint) {
	if e == nil {
		return
	}
	e.hints = append(e.hints, h)
}

func (e *Evidence) Hints() []Hint {
	if e == nil {
		return nil
	}
	return e.hints
}
