package sema

import (
	"fmt"

	"stepcheck/internal/diag"
	"stepcheck/internal/source"
)

// HeaderField describes one mandatory header entity.
type HeaderField struct {
	Name   string
	Params []string
}

// HeaderFields lists the mandatory header entities in file order.
var HeaderFields = []HeaderField{
	{Name: "FILE_DESCRIPTION", Params: []string{"description", "implementation_level"}},
	{Name: "FILE_NAME", Params: []string{
		"name", "time_stamp", "author", "organization",
		"preprocessor_version", "originating_system", "authorization",
	}},
	{Name: "FILE_SCHEMA", Params: []string{"schema_identifiers"}},
}

// checkHeader compares the parameter count of every mandatory header
// entity; a missing entity counts as zero parameters.
func (c *checker) checkHeader() {
	var at source.Span
	if hdr := c.doc.Header(); hdr != nil {
		at = hdr.Span.Head(uint32(len("HEADER")))
	} else {
		at = c.doc.Start
	}

	for _, field := range HeaderFields {
		found := 0
		span := at
		if rec := c.doc.HeaderEntity(field.Name); rec != nil {
			found = len(rec.Params)
			span = rec.Span
		}
		if found == len(field.Params) {
			continue
		}
		c.result.BadHeader++
		c.add(diag.ReportSemantic(nil, diag.SemaHeaderFieldCount, span,
			fmt.Sprintf("Invalid number of parameters for HEADER field '%s'. Expected %d, found %d.",
				field.Name, len(field.Params), found)).
			WithArg("field", field.Name).
			WithArg("expected_field_count", len(field.Params)).
			WithArg("actual_field_count", found))
	}
}
