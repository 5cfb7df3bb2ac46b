package classify

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func buildTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	mustWrite := func(rel string, data string) {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
	}
	mustWrite("a.txt", "a")
	mustWrite("b.txt", "b")
	mustWrite("sub/c.txt", "c")
	mustWrite(".gitignore", "ignored.txt\n")
	mustWrite("ignored.txt", "nope")
	return root
}

func TestEnumerateHonoursGitignore(t *testing.T) {
	root := buildTree(t)
	entries, err := Enumerate(root, false)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Path == "ignored.txt" {
			t.Fatalf("ignored.txt should have been filtered out")
		}
	}
}

func TestEnumerateSkipsHiddenByDefault(t *testing.T) {
	root := buildTree(t)
	entries, err := Enumerate(root, false)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(filepath.Base(e.Path), ".") {
			t.Fatalf("hidden file %q should have been excluded", e.Path)
		}
	}
}

func TestEnumerateIncludesHiddenWhenRequested(t *testing.T) {
	root := buildTree(t)
	entries, err := Enumerate(root, true)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, e := range entries {
		if e.Path == ".gitignore" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected .gitignore to appear when hidden files are included")
	}
}

func TestRenderTreeUsesBoxDrawing(t *testing.T) {
	root := buildTree(t)
	entries, err := Enumerate(root, false)
	if err != nil {
		t.Fatal(err)
	}
	out := RenderTree(entries)
	if !strings.Contains(out, "├── ") && !strings.Contains(out, "└── ") {
		t.Fatalf("expected box-drawing connectors in tree output, got:\n%s", out)
	}
}

func TestDisambiguateLabelsAreUnique(t *testing.T) {
	entries := []Entry{
		{Path: "dir1/same.txt"},
		{Path: "dir2/same.txt"},
	}
	labels := DisambiguateLabels(entries)
	if labels[0] == labels[1] {
		t.Fatalf("expected disambiguated labels, got identical: %q", labels[0])
	}
	if strings.TrimRight(labels[0], invisibleSuffix) != strings.TrimRight(labels[1], invisibleSuffix) {
		t.Fatalf("labels should render identically once suffix stripped: %q vs %q", labels[0], labels[1])
	}
}

func TestExpandSelectionNoDoubleCount(t *testing.T) {
	root := buildTree(t)
	entries, err := Enumerate(root, false)
	if err != nil {
		t.Fatal(err)
	}

	var all []Entry
	var subDir Entry
	for _, e := range entries {
		all = append(all, e)
		if e.IsDir && e.Path == "sub" {
			subDir = e
		}
	}
	// Select both the "sub" directory and (redundantly) its contained file.
	selected := []Entry{subDir}
	for _, e := range entries {
		if e.Path == "sub/c.txt" {
			selected = append(selected, e)
		}
	}

	files, err := ExpandSelection(root, selected)
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, f := range files {
		if filepath.Base(f) == "c.txt" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected c.txt exactly once, got %d (files=%v)", count, files)
	}
}
