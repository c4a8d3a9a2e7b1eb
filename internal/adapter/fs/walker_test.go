package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestWalkDefaultsToJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a-1-0.json"))
	writeFile(t, filepath.Join(dir, "notes.txt"))

	files, err := NewWalker(nil, nil).Walk(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if filepath.Base(files[0]) != "a-1-0.json" {
		t.Errorf("unexpected file: %s", files[0])
	}
}

func TestWalkIncludeExclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "tamil-nadu-1-0.json"))
	writeFile(t, filepath.Join(dir, "gem-1-0.json"))

	files, err := NewWalker([]string{"tamil-*.json"}, nil).Walk(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}

	files, err = NewWalker(nil, []string{"gem-*.json"}).Walk(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file after exclude, got %d", len(files))
	}
	if filepath.Base(files[0]) != "tamil-nadu-1-0.json" {
		t.Errorf("unexpected file: %s", files[0])
	}
}
