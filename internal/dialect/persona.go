package dialect

import (
	"fmt"
	"strings"
)

// formatAdvice describes one encoding for the note text.
type formatAdvice struct {
	Name   string
	LeadIn string
	Advice string
}

func adviceFor(k Kind) formatAdvice {
	switch k {
	case XML:
		return formatAdvice{
			Name:   "ifcXML",
			LeadIn: "The content looks like XML (ifcXML / ISO 10303-28).",
			Advice: "Export the model as an .ifc clear-text file to validate it here.",
		}
	case JSON:
		return formatAdvice{
			Name:   "ifcJSON",
			LeadIn: "The content looks like JSON (ifcJSON).",
			Advice: "Export the model as an .ifc clear-text file to validate it here.",
		}
	case Zip:
		return formatAdvice{
			Name:   "zip",
			LeadIn: "The file is a zip archive (ifcZIP?).",
			Advice: "Unpack it and validate the .ifc file inside.",
		}
	case Gzip:
		return formatAdvice{
			Name:   "gzip",
			LeadIn: "The file is gzip-compressed.",
			Advice: "Decompress it first.",
		}
	case UTF16:
		return formatAdvice{
			Name:   "utf-16",
			LeadIn: "The file seems to be UTF-16 encoded.",
			Advice: "ISO 10303-21 files are 8-bit text; re-save it as ASCII or UTF-8.",
		}
	default:
		return formatAdvice{Name: "unknown"}
	}
}

// RenderHint builds the note text for an eligible classification.
// Returns "" for Unknown.
func RenderHint(c Classification) string {
	a := adviceFor(c.Kind)
	if a.LeadIn == "" {
		return ""
	}
	lines := []string{a.LeadIn, "stepcheck reads ISO 10303-21 exchange files only."}
	if advice := strings.TrimSpace(a.Advice); advice != "" {
		lines = append(lines, advice)
	}
	return strings.Join(lines, " ")
}

// Describe is a one-line summary used by traces.
func Describe(c Classification) string {
	return fmt.Sprintf("%s score=%d/%d conf=%.2f", adviceFor(c.Kind).Name, c.Score, c.TotalScore, c.Confidence)
}
