package mcp

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"
)

func TestNewRegistersAllToolsByDefault(t *testing.T) {
	s, err := New(Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	got := s.ListTools()
	sort.Strings(got)
	want := append([]string(nil), AllTools...)
	sort.Strings(want)

	if len(got) != len(want) {
		t.Fatalf("ListTools() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ListTools()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNewRegistersSubset(t *testing.T) {
	s, err := New(Config{Tools: []string{"resort_check"}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	got := s.ListTools()
	if len(got) != 1 || got[0] != "resort_check" {
		t.Errorf("ListTools() = %v, want [resort_check]", got)
	}
}

func TestNewRejectsUnknownTool(t *testing.T) {
	_, err := New(Config{Tools: []string{"resort_bogus"}})
	if err == nil {
		t.Fatal("New() with unknown tool should fail")
	}
	if !strings.Contains(err.Error(), "resort_bogus") {
		t.Errorf("error should name the unknown tool, got %v", err)
	}
}

func TestSchemaRegistryCoversAllTools(t *testing.T) {
	for _, name := range AllTools {
		schema, ok := toolSchemaRegistry[name]
		if !ok {
			t.Errorf("no schema registered for %s", name)
			continue
		}
		if schema.Name != name {
			t.Errorf("schema name = %q, want %q", schema.Name, name)
		}
		if schema.Description == "" {
			t.Errorf("%s has no description", name)
		}

		var hasPath bool
		for _, p := range schema.Parameters {
			if p.Name == "path" {
				hasPath = true
				if !p.Required {
					t.Errorf("%s: path parameter should be required", name)
				}
			}
		}
		if !hasPath {
			t.Errorf("%s has no path parameter", name)
		}
	}
}

func TestExecuteCheckReportsOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.res")
	src := "type point = {x: int}\n\nlet origin = () : point => { {x: 0} }\n"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	out, err := s.executeCheck(path)
	if err != nil {
		t.Fatalf("executeCheck() error = %v", err)
	}
	if !strings.Contains(out, "in_order: true") {
		t.Errorf("report should say in_order: true, got:\n%s", out)
	}
	if !strings.Contains(out, "declarations: 2") {
		t.Errorf("report should count 2 declarations, got:\n%s", out)
	}
}

func TestExecuteFixDryRunDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.res")
	src := "let origin = () : point => { {x: 0} }\n\ntype point = {x: int}\n"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	out, err := s.executeFix(path, true, false)
	if err != nil {
		t.Fatalf("executeFix() error = %v", err)
	}
	if !strings.Contains(out, "type point") {
		t.Errorf("dry run output should contain the reordered document, got:\n%s", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != src {
		t.Error("dry run must not modify the file")
	}
}

func TestExecuteFixWritesBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.res")
	src := "let origin = () : point => { {x: 0} }\n\ntype point = {x: int}\n"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	out, err := s.executeFix(path, false, false)
	if err != nil {
		t.Fatalf("executeFix() error = %v", err)
	}
	if !strings.Contains(out, "backup:") {
		t.Errorf("report should mention the backup path, got:\n%s", out)
	}

	backupData, err := os.ReadFile(path + ".backup")
	if err != nil {
		t.Fatalf("backup should exist: %v", err)
	}
	if string(backupData) != src {
		t.Error("backup should hold the original content")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) == src {
		t.Error("file should have been rewritten")
	}
}

func TestUpdateActivity(t *testing.T) {
	s, err := New(Config{Timeout: time.Minute})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	before := s.lastActivity
	time.Sleep(time.Millisecond)
	s.updateActivity()
	if !s.lastActivity.After(before) {
		t.Error("updateActivity should advance lastActivity")
	}
}
