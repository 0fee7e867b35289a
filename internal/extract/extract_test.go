package extract

import (
	"reflect"
	"strings"
	"testing"

	"github.com/hargabyte/resort/internal/parser"
)

func TestExtract_FunctionSpan(t *testing.T) {
	src := "let area = (p) : int => {\n  p.x\n}\n\nlet other = () => {\n  1\n}\n"
	decls := Extract(src)

	if len(decls) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(decls))
	}

	want := "let area = (p) : int => {\n  p.x\n}"
	if decls[0].Text != want {
		t.Errorf("span = %q, want %q", decls[0].Text, want)
	}
	if decls[0].Unbalanced {
		t.Error("balanced body marked unbalanced")
	}
}

func TestExtract_NestedBraces(t *testing.T) {
	src := "let f = () => {\n  if x {\n    y\n  }\n}\n"
	decls := Extract(src)

	if len(decls) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(decls))
	}
	if !strings.HasSuffix(decls[0].Text, "  }\n}") {
		t.Errorf("span should close at outer brace, got %q", decls[0].Text)
	}
}

func TestExtract_UnbalancedBodyRunsToEnd(t *testing.T) {
	src := "let broken = () => {\n  never closed\n"
	decls := Extract(src)

	if len(decls) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(decls))
	}
	d := decls[0]
	if !d.Unbalanced {
		t.Error("expected Unbalanced to be set")
	}
	if d.End != len(src) {
		t.Errorf("span should extend to end of document: End=%d, len=%d", d.End, len(src))
	}
}

func TestExtract_TypeSpanEndsAtBlankLine(t *testing.T) {
	src := "type point = {\n  x: int,\n}\n\nlet f = () => {\n  1\n}\n"
	decls := Extract(src)

	if len(decls) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(decls))
	}
	want := "type point = {\n  x: int,\n}"
	if decls[0].Text != want {
		t.Errorf("type span = %q, want %q", decls[0].Text, want)
	}
}

func TestExtract_TypeSpanWithoutBlankLine(t *testing.T) {
	src := "type id = string"
	decls := Extract(src)

	if len(decls) != 1 || decls[0].Text != src {
		t.Fatalf("type without blank line should run to end of document, got %v", decls)
	}
}

func TestDedupe_KeepsFirstOccurrence(t *testing.T) {
	src := "let f = () => {\n  1\n}\n\nlet g = () => {\n  2\n}\n\nlet f = () => {\n  3\n}\n"
	retained, removed := Dedupe(Extract(src))

	if len(retained) != 2 {
		t.Fatalf("expected 2 retained, got %d", len(retained))
	}
	if retained[0].Name != "f" || !strings.Contains(retained[0].Text, "1") {
		t.Errorf("first occurrence of f should be kept, got %q", retained[0].Text)
	}
	if !reflect.DeepEqual(removed, []string{"f"}) {
		t.Errorf("removed = %v, want [f]", removed)
	}

	for i, d := range retained {
		if d.Index != i {
			t.Errorf("retained[%d].Index = %d, want %d", i, d.Index, i)
		}
	}
}

func TestSplit_Header(t *testing.T) {
	src := "// header\nopen Belt\n\ntype point = {x: int}\n\nlet f = () => {\n  1\n}\n"
	doc := Split(src)

	wantHeader := "// header\nopen Belt\n\n"
	if doc.Header != wantHeader {
		t.Errorf("header = %q, want %q", doc.Header, wantHeader)
	}
	if !reflect.DeepEqual(doc.Names(), []string{"point", "f"}) {
		t.Errorf("names = %v", doc.Names())
	}
}

func TestSplit_NoDeclarations(t *testing.T) {
	src := "// nothing here\n"
	doc := Split(src)

	if doc.Header != src {
		t.Errorf("whole document should be header, got %q", doc.Header)
	}
	if len(doc.Decls) != 0 {
		t.Errorf("expected no declarations, got %v", doc.Names())
	}
}

func TestDocument_ByName(t *testing.T) {
	doc := Split("type point = {x: int}\n\nlet f = () => {\n  1\n}\n")
	byName := doc.ByName()

	if byName["point"].Kind != parser.KindType {
		t.Errorf("point kind = %v, want type", byName["point"].Kind)
	}
	if byName["f"].Kind != parser.KindFunction {
		t.Errorf("f kind = %v, want function", byName["f"].Kind)
	}
}

func TestDocument_Malformed(t *testing.T) {
	doc := Split("let ok = () => {\n  1\n}\n\nlet broken = () => {\n  no close\n")
	if !reflect.DeepEqual(doc.Malformed(), []string{"broken"}) {
		t.Errorf("malformed = %v, want [broken]", doc.Malformed())
	}
}
