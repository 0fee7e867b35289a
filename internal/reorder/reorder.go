// Package reorder is the core pipeline: it rewrites a source document so
// that every top-level declaration appears after the declarations it
// references, as required by define-before-use languages.
//
// The pipeline is pure and single-pass: scan/extract -> dedupe -> dependency
// analysis -> cycle-tolerant topological sort -> reassembly. Each stage
// consumes the complete, immutable output of the previous one. Reorder never
// fails; malformed and cyclic input degrade to a recorded best-effort result.
package reorder

import (
	"github.com/hargabyte/resort/internal/assemble"
	"github.com/hargabyte/resort/internal/extract"
	"github.com/hargabyte/resort/internal/graph"
)

// Options controls assembly of the output document.
type Options struct {
	// Banners overrides the section labels. Zero value means defaults.
	Banners assemble.Options
}

// Result is the outcome of reordering one document.
type Result struct {
	// OutputText is the full replacement document.
	OutputText string
	// Order is the emitted declaration order, a permutation of the
	// deduplicated declaration names.
	Order []string
	// DeclarationCount is the number of unique declarations processed.
	DeclarationCount int
	// DuplicatesRemoved lists discarded duplicate names in encounter order.
	DuplicatesRemoved []string
	// Dependencies maps each declaration to the names it references.
	Dependencies map[string][]string
	// Malformed lists declarations whose bodies never balanced; their
	// spans were extended to end of document.
	Malformed []string
	// Cyclic reports whether the dependency graph contains a cycle, in
	// which case Order is best-effort rather than fully valid.
	Cyclic bool
}

// Reorder rewrites documentText with default options.
func Reorder(documentText string) *Result {
	return ReorderWithOptions(documentText, Options{})
}

// ReorderWithOptions rewrites documentText. It always produces a result:
// duplicates are dropped (first occurrence wins), unbalanced bodies run to
// end of document, and dependency cycles are broken silently during the
// sort and flagged on the result.
func ReorderWithOptions(documentText string, opts Options) *Result {
	doc := extract.Split(documentText)

	texts := make(map[string]string, len(doc.Decls))
	for _, d := range doc.Decls {
		texts[d.Name] = d.Text
	}

	g := graph.Build(doc.Names(), texts)
	order := g.TopoSort()
	cyclic, _ := g.FindCycle()

	banners := opts.Banners
	if banners.TypeLabel == "" && banners.FunctionLabel == "" {
		banners = assemble.DefaultOptions()
	}

	return &Result{
		OutputText:        assemble.Assemble(doc.Header, order, doc.ByName(), banners),
		Order:             order,
		DeclarationCount:  len(doc.Decls),
		DuplicatesRemoved: doc.Removed,
		Dependencies:      g.Edges,
		Malformed:         doc.Malformed(),
		Cyclic:            cyclic,
	}
}

// InOrder reports whether documentText already satisfies define-before-use:
// every dependency is declared before its dependents in the file as written.
// Violations that survive even a reorder indicate true cycles.
func InOrder(documentText string) (bool, []graph.Violation) {
	doc := extract.Split(documentText)

	texts := make(map[string]string, len(doc.Decls))
	for _, d := range doc.Decls {
		texts[d.Name] = d.Text
	}

	g := graph.Build(doc.Names(), texts)
	violations := g.Violations(doc.Names())
	return len(violations) == 0, violations
}
