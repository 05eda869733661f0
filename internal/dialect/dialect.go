package dialect

import "fmt"

// Kind is an encoding that a rejected file may be written in.
type Kind uint8

const (
	Unknown Kind = iota
	XML          // ifcXML, ISO 10303-28
	JSON         // ifcJSON
	Zip          // ifcZIP and other archives
	Gzip
	UTF16

	kindCount
)

func (k Kind) String() string {
	switch k {
	case XML:
		return "xml"
	case JSON:
		return "json"
	case Zip:
		return "zip"
	case Gzip:
		return "gzip"
	case UTF16:
		return "utf-16"
	default:
		return "unknown"
	}
}

func (k Kind) GoString() string {
	return fmt.Sprintf("dialect.Kind(%s)", k.String())
}
