package ast

import (
	"stepcheck/internal/source"
)

// Record is TYPE(params): a header entity, an instance body or one part of
// a complex instance.
type Record struct {
	Type     string
	TypeSpan source.Span
	Params   []ValueID
	Span     source.Span
}

// Instance is #ID=RECORD; or #ID=(RECORD RECORD ...);
// For complex instances Type and Params mirror the first part.
type Instance struct {
	ID     uint64
	IDSpan source.Span
	Type   string
	Params []ValueID
	Parts  []Record // nil for simple instances
	Span   source.Span
}

// Complex reports whether the instance was written as a list of records.
func (inst *Instance) Complex() bool {
	return inst.Parts != nil
}

type SectionKind uint8

const (
	SectionHeader SectionKind = iota
	SectionData
)

func (k SectionKind) String() string {
	if k == SectionHeader {
		return "HEADER"
	}
	return "DATA"
}

// Section holds header entities (SectionHeader) or instances (SectionData).
type Section struct {
	Kind      SectionKind
	Span      source.Span
	Entities  []Record
	Instances []Instance
}
