// Package graph builds and orders the textual dependency graph between
// declarations.
//
// An edge D -> N means "D's span mentions N as a whole word". This is a
// deliberate over-approximation of real references: a name inside a string
// literal or comment still counts. It cannot miss a true dependency, only
// invent extra ones, which is the safe direction for define-before-use
// ordering.
package graph

// Graph is an in-memory dependency graph over declaration names.
type Graph struct {
	// Names holds every node in first-occurrence order. This order is the
	// deterministic tie-break for unrelated declarations.
	Names []string
	// Edges maps a declaration to the names it depends on, each list in
	// first-occurrence order.
	Edges map[string][]string
}

// Build computes the dependency graph for the given declarations.
// names must be in first-occurrence order; texts maps each name to its span.
// Self-references are excluded, and only retained names can appear as edge
// targets, so dangling references are impossible by construction.
func Build(names []string, texts map[string]string) *Graph {
	g := &Graph{
		Names: names,
		Edges: make(map[string][]string, len(names)),
	}

	for _, from := range names {
		text := texts[from]
		deps := []string{}
		for _, to := range names {
			if to == from {
				continue
			}
			if containsWord(text, to) {
				deps = append(deps, to)
			}
		}
		g.Edges[from] = deps
	}

	return g
}

// containsWord reports whether word occurs in text delimited by
// non-identifier bytes on both sides.
func containsWord(text, word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i+len(word) <= len(text); i++ {
		if text[i:i+len(word)] != word {
			continue
		}
		if i > 0 && isWordByte(text[i-1]) {
			continue
		}
		if end := i + len(word); end < len(text) && isWordByte(text[end]) {
			continue
		}
		return true
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || b == '\'' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.Names)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, deps := range g.Edges {
		count += len(deps)
	}
	return count
}

// Dependencies returns the dependency set of the given name.
func (g *Graph) Dependencies(name string) []string {
	return g.Edges[name]
}

// Violation is a dependency edge not satisfied by an ordering: To is
// defined after From even though From depends on it.
type Violation struct {
	From string
	To   string
}

// Violations checks an ordering against the graph and returns every edge
// whose target does not precede its source. A non-empty result for an
// ordering produced by TopoSort means the graph contains cycles.
func (g *Graph) Violations(order []string) []Violation {
	pos := make(map[string]int, len(order))
	for i, name := range order {
		pos[name] = i
	}

	var out []Violation
	for _, from := range order {
		for _, to := range g.Edges[from] {
			if pos[to] > pos[from] {
				out = append(out, Violation{From: from, To: to})
			}
		}
	}
	return out
}
