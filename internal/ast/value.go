package ast

import (
	"stepcheck/internal/source"
)

type ValueKind uint8

const (
	ValueString ValueKind = iota
	ValueInteger
	ValueReal
	ValueEnum
	ValueBinary
	ValueRef
	ValueList
	ValueOmitted    // $
	ValueRedeclared // *
	ValueTyped      // IFCLABEL('x')
)

var valueKindNames = [...]string{
	ValueString:     "string",
	ValueInteger:    "integer",
	ValueReal:       "real",
	ValueEnum:       "enum",
	ValueBinary:     "binary",
	ValueRef:        "ref",
	ValueList:       "list",
	ValueOmitted:    "omitted",
	ValueRedeclared: "redeclared",
	ValueTyped:      "typed",
}

func (k ValueKind) String() string {
	if int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return "?"
}

// Value is one parameter. Text holds the decoded string, the literal text of
// a number, the enum or binary payload, or the type name of a typed value.
type Value struct {
	Kind  ValueKind
	Span  source.Span
	Text  string
	Ref   uint64    // ValueRef
	Items []ValueID // ValueList elements; ValueTyped has exactly one
}

// Values stores every Value of one document.
type Values struct {
	Arena *Arena[Value]
}

func NewValues(capHint uint) *Values {
	return &Values{Arena: NewArena[Value](capHint)}
}

func (v *Values) New(val Value) ValueID {
	return ValueID(v.Arena.Allocate(val))
}

func (v *Values) Get(id ValueID) *Value {
	return v.Arena.Get(uint32(id))
}

// Inner returns the wrapped value of a typed value.
func (v *Values) Inner(id ValueID) ValueID {
	val := v.Get(id)
	if val == nil || val.Kind != ValueTyped || len(val.Items) == 0 {
		return NoValueID
	}
	return val.Items[0]
}
