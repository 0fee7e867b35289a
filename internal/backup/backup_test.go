package backup

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "State.res")

	path, err := Write(target, ".backup", []byte("original"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if path != target+".backup" {
		t.Errorf("backup path = %q, want %q", path, target+".backup")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "original" {
		t.Errorf("backup content = %q", data)
	}
}

func TestWrite_DoesNotOverwriteExistingBackup(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "State.res")

	first, err := Write(target, ".backup", []byte("one"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := Write(target, ".backup", []byte("two"))
	if err != nil {
		t.Fatal(err)
	}

	if second == first {
		t.Fatalf("second backup reused the first path %q", first)
	}
	if second != target+".backup.1" {
		t.Errorf("second backup path = %q, want %q", second, target+".backup.1")
	}

	data, _ := os.ReadFile(first)
	if string(data) != "one" {
		t.Errorf("first backup was clobbered: %q", data)
	}
}
