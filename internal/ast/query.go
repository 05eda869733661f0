package ast

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate definition")
)

// ByID returns the only instance named #id.
func (d *Document) ByID(id uint64) (*Instance, error) {
	if d.byID == nil {
		d.Reindex()
	}
	switch found := d.byID[id]; len(found) {
	case 0:
		return nil, fmt.Errorf("instance #%d: %w", id, ErrNotFound)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("instance #%d: %w", id, ErrDuplicate)
	}
}

// ByType returns instances whose (first) record type equals typ, ignoring case.
func (d *Document) ByType(typ string) []*Instance {
	var out []*Instance
	for inst := range d.Instances() {
		if strings.EqualFold(inst.Type, typ) {
			out = append(out, inst)
		}
	}
	return out
}

// HeaderEntity returns the first header entity named name, ignoring case.
func (d *Document) HeaderEntity(name string) *Record {
	for i := range d.Sections {
		sec := &d.Sections[i]
		if sec.Kind != SectionHeader {
			continue
		}
		for j := range sec.Entities {
			if strings.EqualFold(sec.Entities[j].Type, name) {
				return &sec.Entities[j]
			}
		}
	}
	return nil
}

// SchemaIdentifier returns the first string of FILE_SCHEMA, e.g. "IFC4X3_ADD2".
func (d *Document) SchemaIdentifier() (string, error) {
	rec := d.HeaderEntity("FILE_SCHEMA")
	if rec == nil || len(rec.Params) == 0 {
		return "", fmt.Errorf("FILE_SCHEMA: %w", ErrNotFound)
	}
	first := d.Values.Get(rec.Params[0])
	if first != nil && first.Kind == ValueList && len(first.Items) > 0 {
		first = d.Values.Get(first.Items[0])
	}
	if first == nil || first.Kind != ValueString {
		return "", fmt.Errorf("FILE_SCHEMA has no schema name: %w", ErrNotFound)
	}
	return first.Text, nil
}

var schemaPrefix = regexp.MustCompile(`^(IFC\d+)?(X\d+)?`)

// Schema returns the general schema family: IFC2X3, IFC4, IFC4X3.
func (d *Document) Schema() (string, error) {
	ident, err := d.SchemaIdentifier()
	if err != nil {
		return "", err
	}
	m := schemaPrefix.FindStringSubmatch(strings.ToUpper(ident))
	if m == nil || m[1] == "" {
		return "", fmt.Errorf("schema %q is not an IFC schema: %w", ident, ErrNotFound)
	}
	return m[1] + m[2], nil
}

var versionParts = [4]*regexp.Regexp{
	regexp.MustCompile(`IFC(\d)`),
	regexp.MustCompile(`X(\d)`),
	regexp.MustCompile(`_ADD(\d)`),
	regexp.MustCompile(`_TC(\d)`),
}

// SchemaVersion returns the numeric version; IFC4X3_ADD2 is {4, 3, 2, 0}.
// Missing parts are 0.
func (d *Document) SchemaVersion() ([4]int, error) {
	var out [4]int
	ident, err := d.SchemaIdentifier()
	if err != nil {
		return out, err
	}
	ident = strings.ToUpper(ident)
	for i, re := range versionParts {
		if m := re.FindStringSubmatch(ident); m != nil {
			out[i], _ = strconv.Atoi(m[1])
		}
	}
	return out, nil
}
