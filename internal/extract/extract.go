// Package extract turns scanned declaration headers into full textual spans.
//
// A function span runs from its header keyword to the brace that closes its
// body (tracked by depth counting). A type span has no reliable terminator,
// so it runs to the first blank line after the header, or to end of document.
// Spans are plain text slices of the original source; nothing is reformatted.
package extract

import (
	"strings"

	"github.com/hargabyte/resort/internal/parser"
)

// Declaration is a top-level named definition extracted as a contiguous span.
// Declarations are never mutated after extraction.
type Declaration struct {
	// Name is the bound identifier. Identity key after deduplication.
	Name string
	// Kind distinguishes type bindings from function bindings.
	Kind parser.Kind
	// Start and End delimit the span in the original document ([Start, End)).
	Start int
	End   int
	// Text is the span content, exactly as it appears in the source.
	Text string
	// Index is the first-occurrence position among retained declarations.
	// Set by Dedupe; used as the deterministic ordering tie-break.
	Index int
	// Unbalanced marks a function body that never closed its braces.
	// The span then extends to end of document. Recorded, not fatal.
	Unbalanced bool
}

// Document is a source file split into its immutable header prefix and the
// retained declarations, keyed by name.
type Document struct {
	// Header is everything before the first recognized declaration,
	// reproduced verbatim (comments, blank lines, open directives).
	Header string
	// Decls holds retained declarations in first-occurrence order.
	Decls []Declaration
	// Removed lists duplicate names discarded during deduplication,
	// in encounter order.
	Removed []string
}

// Extract scans src and captures a span for every recognized header,
// ordered by start offset.
func Extract(src string) []Declaration {
	headers := parser.NewScanner(src).ScanHeaders()

	decls := make([]Declaration, 0, len(headers))
	for _, h := range headers {
		decls = append(decls, capture(src, h))
	}
	return decls
}

// capture finds the end of the span introduced by h.
func capture(src string, h parser.Header) Declaration {
	d := Declaration{Name: h.Name, Kind: h.Kind, Start: h.Start}

	switch h.Kind {
	case parser.KindFunction:
		end, ok := balanceBraces(src, h.BodyStart)
		d.End = end
		d.Unbalanced = !ok
	default:
		d.End = blankLineEnd(src, h.BodyStart)
	}

	d.Text = src[d.Start:d.End]
	return d
}

// balanceBraces scans forward from the opening brace at pos and returns the
// offset just past the brace that returns depth to zero. If the body never
// balances, the span extends to end of document and ok is false.
func balanceBraces(src string, pos int) (end int, ok bool) {
	depth := 0
	opened := false
	for i := pos; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
			opened = true
		case '}':
			depth--
			if opened && depth == 0 {
				return i + 1, true
			}
		}
	}
	return len(src), false
}

// blankLineEnd returns the offset of the first blank line at or after pos,
// or end of document if none exists.
func blankLineEnd(src string, pos int) int {
	if idx := strings.Index(src[pos:], "\n\n"); idx >= 0 {
		return pos + idx
	}
	return len(src)
}

// Dedupe collapses declarations sharing a name, keeping the earliest
// occurrence. Earlier definitions are assumed authoritative when a file
// contains accidental copies. Returns retained declarations with their
// first-occurrence Index assigned, plus discarded names in encounter order.
func Dedupe(decls []Declaration) (retained []Declaration, removed []string) {
	seen := make(map[string]bool, len(decls))

	for _, d := range decls {
		if seen[d.Name] {
			removed = append(removed, d.Name)
			continue
		}
		seen[d.Name] = true
		d.Index = len(retained)
		retained = append(retained, d)
	}

	return retained, removed
}

// Split extracts the document header and the deduplicated declarations
// from src. The header is the verbatim prefix before the first recognized
// declaration; when no declaration exists the whole document is header.
func Split(src string) *Document {
	all := Extract(src)
	retained, removed := Dedupe(all)

	header := src
	if len(all) > 0 {
		header = src[:all[0].Start]
	}

	return &Document{Header: header, Decls: retained, Removed: removed}
}

// ByName returns the retained declarations keyed by name.
func (doc *Document) ByName() map[string]Declaration {
	m := make(map[string]Declaration, len(doc.Decls))
	for _, d := range doc.Decls {
		m[d.Name] = d
	}
	return m
}

// Names returns retained declaration names in first-occurrence order.
func (doc *Document) Names() []string {
	names := make([]string, len(doc.Decls))
	for i, d := range doc.Decls {
		names[i] = d.Name
	}
	return names
}

// Malformed returns the names of declarations whose spans never balanced.
func (doc *Document) Malformed() []string {
	var out []string
	for _, d := range doc.Decls {
		if d.Unbalanced {
			out = append(out, d.Name)
		}
	}
	return out
}
