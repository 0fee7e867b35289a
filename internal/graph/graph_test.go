package graph

import (
	"reflect"
	"testing"
)

func buildGraph(names []string, texts map[string]string) *Graph {
	return Build(names, texts)
}

func TestBuild_WholeWordMatching(t *testing.T) {
	names := []string{"makePoint", "origin", "area"}
	texts := map[string]string{
		"makePoint": "let makePoint = (x,y) : Point => { {x, y} }",
		"origin":    "let origin = () : Point => { makePoint(0,0) }",
		"area":      "let area = (p) : int => { p.x }",
	}

	g := buildGraph(names, texts)

	if !reflect.DeepEqual(g.Edges["origin"], []string{"makePoint"}) {
		t.Errorf("origin deps = %v, want [makePoint]", g.Edges["origin"])
	}
	if len(g.Edges["area"]) != 0 {
		t.Errorf("area deps = %v, want none", g.Edges["area"])
	}
	if len(g.Edges["makePoint"]) != 0 {
		t.Errorf("makePoint deps = %v, want none", g.Edges["makePoint"])
	}
}

func TestBuild_NoPartialWordMatch(t *testing.T) {
	names := []string{"point", "pointList"}
	texts := map[string]string{
		"point":     "type point = {x: int}",
		"pointList": "type pointList = array<point>",
	}

	g := buildGraph(names, texts)

	// "point" occurs inside "pointList" as a prefix but not as a whole word.
	if len(g.Edges["point"]) != 0 {
		t.Errorf("point deps = %v, want none", g.Edges["point"])
	}
	if !reflect.DeepEqual(g.Edges["pointList"], []string{"point"}) {
		t.Errorf("pointList deps = %v, want [point]", g.Edges["pointList"])
	}
}

func TestBuild_ExcludesSelfReference(t *testing.T) {
	names := []string{"fact"}
	texts := map[string]string{
		"fact": "let fact = (n) : int => { n * fact(n - 1) }",
	}

	g := buildGraph(names, texts)
	if len(g.Edges["fact"]) != 0 {
		t.Errorf("self-reference should be excluded, got %v", g.Edges["fact"])
	}
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		text string
		word string
		want bool
	}{
		{"makePoint(0,0)", "makePoint", true},
		{"remakePoint(0,0)", "makePoint", false},
		{"makePointer(0,0)", "makePoint", false},
		{"a makePoint", "makePoint", true},
		{"makePoint", "makePoint", true},
		{"\"makePoint\"", "makePoint", true}, // string contents count: documented over-approximation
		{"make_point", "point", false},
		{"point' + 1", "point", false}, // prime continues the identifier
		{"", "x", false},
	}

	for _, tt := range tests {
		if got := containsWord(tt.text, tt.word); got != tt.want {
			t.Errorf("containsWord(%q, %q) = %v, want %v", tt.text, tt.word, got, tt.want)
		}
	}
}

func TestTopoSort_DependenciesFirst(t *testing.T) {
	names := []string{"origin", "makePoint"}
	texts := map[string]string{
		"origin":    "let origin = () => { makePoint(0,0) }",
		"makePoint": "let makePoint = (x,y) => { {x, y} }",
	}

	order := buildGraph(names, texts).TopoSort()
	if !reflect.DeepEqual(order, []string{"makePoint", "origin"}) {
		t.Errorf("order = %v, want [makePoint origin]", order)
	}
}

func TestTopoSort_PreservesOriginalOrderWithoutEdges(t *testing.T) {
	names := []string{"c", "a", "b"}
	texts := map[string]string{"c": "3", "a": "1", "b": "2"}

	order := buildGraph(names, texts).TopoSort()
	if !reflect.DeepEqual(order, names) {
		t.Errorf("unrelated declarations should keep original order: %v", order)
	}
}

func TestTopoSort_Chain(t *testing.T) {
	g := &Graph{
		Names: []string{"a", "b", "c"},
		Edges: map[string][]string{
			"a": {"b"},
			"b": {"c"},
			"c": {},
		},
	}

	order := g.TopoSort()
	if !reflect.DeepEqual(order, []string{"c", "b", "a"}) {
		t.Errorf("order = %v, want [c b a]", order)
	}
}

func TestTopoSort_CycleTerminates(t *testing.T) {
	g := &Graph{
		Names: []string{"a", "b"},
		Edges: map[string][]string{
			"a": {"b"},
			"b": {"a"},
		},
	}

	order := g.TopoSort()
	if len(order) != 2 {
		t.Fatalf("cycle should emit both nodes exactly once, got %v", order)
	}
	seen := map[string]bool{order[0]: true, order[1]: true}
	if !seen["a"] || !seen["b"] {
		t.Errorf("order = %v, want a permutation of [a b]", order)
	}
}

func TestTopoSort_SelfLoopTerminates(t *testing.T) {
	g := &Graph{
		Names: []string{"a"},
		Edges: map[string][]string{"a": {"a"}},
	}

	order := g.TopoSort()
	if !reflect.DeepEqual(order, []string{"a"}) {
		t.Errorf("order = %v, want [a]", order)
	}
}

func TestTopoSort_IsPermutation(t *testing.T) {
	g := &Graph{
		Names: []string{"a", "b", "c", "d", "e"},
		Edges: map[string][]string{
			"a": {"b", "c"},
			"b": {"d"},
			"c": {"d", "a"}, // cycle back to a
			"d": {},
			"e": {"a"},
		},
	}

	order := g.TopoSort()
	if len(order) != 5 {
		t.Fatalf("expected 5 nodes, got %v", order)
	}
	seen := make(map[string]bool)
	for _, n := range order {
		if seen[n] {
			t.Errorf("duplicate node %q in order %v", n, order)
		}
		seen[n] = true
	}
}

func TestFindCycle(t *testing.T) {
	acyclic := &Graph{
		Names: []string{"a", "b"},
		Edges: map[string][]string{"a": {"b"}, "b": {}},
	}
	if found, _ := acyclic.FindCycle(); found {
		t.Error("acyclic graph reported a cycle")
	}

	cyclic := &Graph{
		Names: []string{"a", "b"},
		Edges: map[string][]string{"a": {"b"}, "b": {"a"}},
	}
	found, cycle := cyclic.FindCycle()
	if !found {
		t.Fatal("cycle not detected")
	}
	if len(cycle) < 3 || cycle[0] != cycle[len(cycle)-1] {
		t.Errorf("cycle path should be closed, got %v", cycle)
	}
}

func TestViolations(t *testing.T) {
	g := &Graph{
		Names: []string{"a", "b"},
		Edges: map[string][]string{"a": {"b"}, "b": {}},
	}

	if v := g.Violations([]string{"b", "a"}); len(v) != 0 {
		t.Errorf("valid order reported violations: %v", v)
	}

	v := g.Violations([]string{"a", "b"})
	if len(v) != 1 || v[0] != (Violation{From: "a", To: "b"}) {
		t.Errorf("violations = %v, want [{a b}]", v)
	}
}

func TestGraphCounts(t *testing.T) {
	g := &Graph{
		Names: []string{"a", "b", "c"},
		Edges: map[string][]string{"a": {"b", "c"}, "b": {"c"}, "c": {}},
	}
	if g.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", g.NodeCount())
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount = %d, want 3", g.EdgeCount())
	}
}
