package dialect

import (
	"bytes"

	"stepcheck/internal/source"
)

type markerSignal struct {
	Kind   Kind
	Score  int
	Reason string
}

// markerSignals are substrings typical for the neighbouring encodings.
// They are matched case-sensitively inside the sniff window.
var markerSignals = []struct {
	text   string
	signal markerSignal
}{
	{"iso_10303_28", markerSignal{XML, 6, "ISO 10303-28 namespace"}},
	{"ifcXML", markerSignal{XML, 5, "ifcXML element"}},
	{"xmlns", markerSignal{XML, 3, "XML namespace declaration"}},
	{"<ex:", markerSignal{XML, 2, "ISO 10303-28 element prefix"}},
	{`"globalId"`, markerSignal{JSON, 4, "ifcJSON globalId key"}},
	{`"type"`, markerSignal{JSON, 1, "JSON type key"}},
	{`"IfcProject"`, markerSignal{JSON, 3, "ifcJSON project entity"}},
	{`"data"`, markerSignal{JSON, 1, "JSON data key"}},
}

// ObserveMarkers records evidence from substrings in the sniff window.
// Each marker counts once.
func ObserveMarkers(e *Evidence, f *source.File) {
	if e == nil || f == nil {
		return
	}
	head := window(f.Content)
	for _, m := range markerSignals {
		idx := bytes.Index(head, []byte(m.text))
		if idx < 0 {
			continue
		}
		e.Add(Hint{
			Kind:   m.signal.Kind,
			Score:  m.signal.Score,
			Reason: m.signal.Reason,
			Span:   span(f, idx, idx+len(m.text)),
		})
	}
}
