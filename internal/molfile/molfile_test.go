package molfile

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestWalk(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "water.mol.txt", "O 0 0 0; H 0.76 0.59 0; H -0.76 0.59 0")
	writeFile(t, root, "nested/ammonia.xyzs", "N 0 0 0; H 1 0 0; bad; H 0 1 0")
	writeFile(t, root, "nested/empty.mol.txt", "nothing here")
	writeFile(t, root, "notes.md", "O 0 0 0")
	writeFile(t, root, ".git/hidden.mol.txt", "O 0 0 0")

	files, err := Walk(Config{RootDir: root})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	var got []string
	for _, f := range files {
		got = append(got, f.RelPath)
	}
	sort.Strings(got)
	want := []string{"nested/ammonia.xyzs", "water.mol.txt"}
	if len(got) != len(want) {
		t.Fatalf("Walk() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("file[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	for _, f := range files {
		if f.RelPath != "nested/ammonia.xyzs" {
			continue
		}
		if f.Molecule.Name != "ammonia" {
			t.Errorf("name = %q, want ammonia", f.Molecule.Name)
		}
		if f.Records != 4 || f.Skipped != 1 || f.Molecule.Len() != 3 {
			t.Errorf("records=%d skipped=%d atoms=%d", f.Records, f.Skipped, f.Molecule.Len())
		}
		if len(f.ContentHash) != 64 {
			t.Errorf("content hash %q is not sha256 hex", f.ContentHash)
		}
	}
}

func TestWalkIncludeExclude(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a/one.txt", "C 0 0 0")
	writeFile(t, root, "b/two.txt", "C 0 0 0")

	files, err := Walk(Config{RootDir: root, Include: []string{"**/*.txt"}, Exclude: []string{"b/**"}})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if len(files) != 1 || files[0].RelPath != "a/one.txt" {
		t.Errorf("unexpected files: %+v", files)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.mol.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestStem(t *testing.T) {
	tests := map[string]string{
		"water.mol.txt":       "water",
		"/tmp/x/ammonia.xyzs": "ammonia",
		"noext":               "noext",
		".hidden":             ".hidden",
	}
	for in, want := range tests {
		if got := Stem(in); got != want {
			t.Errorf("Stem(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMatchesAny(t *testing.T) {
	if !matchesAny("deep/dir/file.mol.txt", []string{"**/*.mol.txt"}) {
		t.Error("expected ** match")
	}
	if !matchesAny("deep/dir/file.xyzs", []string{"*.xyzs"}) {
		t.Error("expected base name match")
	}
	if matchesAny("file.go", []string{"*.xyzs"}) {
		t.Error("unexpected match")
	}
}
