package ast

import (
	"iter"

	"stepcheck/internal/source"
)

// Document is the parsed file. It is built by the parser and only read
// afterwards.
type Document struct {
	File     source.FileID
	Span     source.Span
	Start    source.Span // ISO-10303-21
	End      source.Span // END-ISO-10303-21; empty in header-only mode
	Sections []Section
	Values   *Values

	byID map[uint64][]*Instance
}

func NewDocument(file source.FileID, capHint uint) *Document {
	return &Document{
		File:   file,
		Values: NewValues(capHint),
	}
}

// Reindex rebuilds the id lookup; the parser calls it once sections are final.
func (d *Document) Reindex() {
	d.byID = make(map[uint64][]*Instance, d.InstanceCount())
	for inst := range d.Instances() {
		d.byID[inst.ID] = append(d.byID[inst.ID], inst)
	}
}

// Header returns the first header section, or nil.
func (d *Document) Header() *Section {
	for i := range d.Sections {
		if d.Sections[i].Kind == SectionHeader {
			return &d.Sections[i]
		}
	}
	return nil
}

// Instances yields every instance of every data section in file order.
func (d *Document) Instances() iter.Seq[*Instance] {
	return func(yield func(*Instance) bool) {
		for i := range d.Sections {
			sec := &d.Sections[i]
			if sec.Kind != SectionData {
				continue
			}
			for j := range sec.Instances {
				if !yield(&sec.Instances[j]) {
					return
				}
			}
		}
	}
}

// InstanceCount counts instances across data sections.
func (d *Document) InstanceCount() int {
	n := 0
	for i := range d.Sections {
		n += len(d.Sections[i].Instances)
	}
	return n
}

// Walk calls fn for id and every value nested inside it, depth first.
func (d *Document) Walk(id ValueID, fn func(ValueID, *Value)) {
	val := d.Values.Get(id)
	if val == nil {
		return
	}
	fn(id, val)
	for _, child := range val.Items {
		d.Walk(child, fn)
	}
}

// ParamLists returns one parameter list per record of the instance.
func (inst *Instance) ParamLists() [][]ValueID {
	if inst.Parts == nil {
		return [][]ValueID{inst.Params}
	}
	out := make([][]ValueID, len(inst.Parts))
	for i := range inst.Parts {
		out[i] = inst.Parts[i].Params
	}
	return out
}
