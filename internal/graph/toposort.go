package graph

// Visitation states for the depth-first ordering walk.
const (
	unvisited = iota
	inProgress
	done
)

// TopoSort returns a total order over the graph's nodes in which every
// dependency precedes its dependents wherever the graph is acyclic.
//
// The walk is depth-first with post-order emission. The outer loop follows
// first-occurrence order, so declarations with no dependency relation keep
// their original relative order. An edge back to an in-progress node is
// treated as already satisfied and skipped, which breaks cycles at the
// point of re-entry and guarantees termination on arbitrary graphs. When
// true cycles exist the result is best-effort: both members are emitted
// exactly once, in discovery order.
func (g *Graph) TopoSort() []string {
	state := make(map[string]int, len(g.Names))
	result := make([]string, 0, len(g.Names))

	var visit func(name string)
	visit = func(name string) {
		if state[name] != unvisited {
			// done: already emitted. inProgress: a cycle back to an
			// ancestor of the current path; treat the edge as satisfied.
			return
		}
		state[name] = inProgress

		for _, dep := range g.Edges[name] {
			visit(dep)
		}

		state[name] = done
		result = append(result, name)
	}

	for _, name := range g.Names {
		visit(name)
	}

	return result
}

// FindCycle detects whether the graph contains a dependency cycle.
// Returns one example cycle as a closed path (first element repeated last).
// TopoSort never fails on cyclic graphs, so this is the diagnostic callers
// use when they want to surface cycles explicitly.
func (g *Graph) FindCycle() (bool, []string) {
	state := make(map[string]int, len(g.Names))
	parent := make(map[string]string)

	var cycleStart, cycleEnd string

	var dfs func(name string) bool
	dfs = func(name string) bool {
		state[name] = inProgress

		for _, dep := range g.Edges[name] {
			if state[dep] == inProgress {
				cycleStart = dep
				cycleEnd = name
				return true
			}
			if state[dep] == unvisited {
				parent[dep] = name
				if dfs(dep) {
					return true
				}
			}
		}

		state[name] = done
		return false
	}

	found := false
	for _, name := range g.Names {
		if state[name] == unvisited && dfs(name) {
			found = true
			break
		}
	}

	if !found {
		return false, nil
	}

	// Reconstruct one cycle, closed: start -> ... -> start.
	var chain []string
	for node := cycleEnd; node != cycleStart; node = parent[node] {
		chain = append(chain, node)
	}
	cycle := []string{cycleStart}
	for i := len(chain) - 1; i >= 0; i-- {
		cycle = append(cycle, chain[i])
	}
	cycle = append(cycle, cycleStart)

	return true, cycle
}
