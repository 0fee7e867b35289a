// Package assemble reconstructs a document from ordered declarations.
//
// The output is the original header, a banner-labeled type section, and a
// banner-labeled function section. Within each section declarations keep
// the relative order assigned by the topological sort and are separated by
// exactly one blank line. Declaration text is relocated, never reformatted.
package assemble

import (
	"strings"

	"github.com/hargabyte/resort/internal/extract"
	"github.com/hargabyte/resort/internal/parser"
)

const bannerRule = "// ============================================================================="

// Options controls the section banner labels.
type Options struct {
	TypeLabel     string
	FunctionLabel string
}

// DefaultOptions returns the standard section labels.
func DefaultOptions() Options {
	return Options{
		TypeLabel:     "TYPE DEFINITIONS",
		FunctionLabel: "FUNCTION DEFINITIONS (ordered by dependencies)",
	}
}

// Assemble emits the replacement document text: header, then types, then
// functions, in the given order. Empty sections are omitted entirely.
func Assemble(header string, order []string, decls map[string]extract.Declaration, opts Options) string {
	var types, funcs []string
	for _, name := range order {
		d, ok := decls[name]
		if !ok {
			continue
		}
		if d.Kind == parser.KindType {
			types = append(types, d.Text)
		} else {
			funcs = append(funcs, d.Text)
		}
	}

	var sb strings.Builder
	writeHeader(&sb, header)

	if len(types) > 0 {
		writeBanner(&sb, opts.TypeLabel)
		sb.WriteString(strings.Join(types, "\n\n"))
		sb.WriteString("\n\n")
	}

	if len(funcs) > 0 {
		writeBanner(&sb, opts.FunctionLabel)
		sb.WriteString(strings.Join(funcs, "\n\n"))
		sb.WriteString("\n")
	}

	return sb.String()
}

// writeHeader emits the header verbatim, then pads with newlines so exactly
// one blank line separates it from the first section.
func writeHeader(sb *strings.Builder, header string) {
	if header == "" {
		return
	}
	sb.WriteString(header)
	for !strings.HasSuffix(sb.String(), "\n\n") {
		sb.WriteString("\n")
	}
}

// writeBanner emits a labeled section banner followed by a blank line.
func writeBanner(sb *strings.Builder, label string) {
	sb.WriteString(bannerRule)
	sb.WriteString("\n// ")
	sb.WriteString(label)
	sb.WriteString("\n")
	sb.WriteString(bannerRule)
	sb.WriteString("\n\n")
}
