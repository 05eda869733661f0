package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"stepcheck/internal/ast"
	"stepcheck/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed document:
// 1) doc.Span is non-empty and within file content bounds
// 2) every section, record, instance and value span is non-empty, points to
// the same file and lies inside its parent
// 3) sections appear in source order without overlapping
func CheckSpanInvariants(doc *ast.Document, sf *source.File) error {
	if doc == nil || sf == nil {
		return fmt.Errorf("nil document or file")
	}

	// 1) document span sanity
	if doc.Span.End <= doc.Span.Start {
		return fmt.Errorf("document span is empty: %v", doc.Span)
	}
	if doc.Span.File != sf.ID {
		return fmt.Errorf("document span points to different file id: got=%d want=%d", doc.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if doc.Span.End > lenContent {
		return fmt.Errorf("document span end beyond content: %d > %d", doc.Span.End, lenContent)
	}

	c := spanChecker{doc: doc, file: sf.ID}
	var prevEnd uint32
	for i := range doc.Sections {
		sec := &doc.Sections[i]
		if err := c.inside(sec.Span, doc.Span, "section "+sec.Kind.String()); err != nil {
			return err
		}
		// 3) порядок секций
		if sec.Span.Start < prevEnd {
			return fmt.Errorf("section %d overlaps the previous one: %v", i, sec.Span)
		}
		prevEnd = sec.Span.End

		for j := range sec.Entities {
			if err := c.record(&sec.Entities[j], sec.Span); err != nil {
				return err
			}
		}
		for j := range sec.Instances {
			if err := c.instance(&sec.Instances[j], sec.Span); err != nil {
				return err
			}
		}
	}
	return nil
}

type spanChecker struct {
	doc  *ast.Document
	file source.FileID
}

func (c spanChecker) inside(sp, parent source.Span, what string) error {
	if sp.End <= sp.Start {
		return fmt.Errorf("empty %s span: %v", what, sp)
	}
	if sp.File != c.file {
		return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, c.file)
	}
	if !parent.Contains(sp) {
		return fmt.Errorf("%s span %v is outside %v", what, sp, parent)
	}
	return nil
}

func (c spanChecker) record(rec *ast.Record, parent source.Span) error {
	if err := c.inside(rec.Span, parent, "record "+rec.Type); err != nil {
		return err
	}
	if err := c.inside(rec.TypeSpan, rec.Span, "type name "+rec.Type); err != nil {
		return err
	}
	return c.values(rec.Params, rec.Span)
}

func (c spanChecker) instance(inst *ast.Instance, parent source.Span) error {
	what := fmt.Sprintf("instance #%d", inst.ID)
	if err := c.inside(inst.Span, parent, what); err != nil {
		return err
	}
	if err := c.inside(inst.IDSpan, inst.Span, what+" name"); err != nil {
		return err
	}
	if !inst.Complex() {
		return c.values(inst.Params, inst.Span)
	}
	for i := range inst.Parts {
		if err := c.record(&inst.Parts[i], inst.Span); err != nil {
			return err
		}
	}
	return nil
}

func (c spanChecker) values(ids []ast.ValueID, parent source.Span) error {
	for _, id := range ids {
		v := c.doc.Values.Get(id)
		if v == nil {
			return fmt.Errorf("nil value for id=%d", id)
		}
		if err := c.inside(v.Span, parent, "value "+v.Kind.String()); err != nil {
			return err
		}
		if err := c.values(v.Items, v.Span); err != nil {
			return err
		}
	}
	return nil
}
