package classify

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/huh"
	"github.com/skardyy/mcat/internal/errs"
)

// Entry is one row of the directory Selector's tree.
type Entry struct {
	Path      string // relative to the enumeration root
	AbsPath   string
	IsDir     bool
	Depth     int
	LastInDir bool
}

// defaultIgnorePatterns mirrors the always-ignored set a .gitignore-aware
// walker carries even without a project .gitignore file.
var defaultIgnorePatterns = []string{".git", ".git/**"}

// loadGitignore reads root/.gitignore, if present, returning its
// doublestar-compatible patterns (blank lines and comments stripped).
func loadGitignore(root string) []string {
	f, err := os.Open(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, strings.TrimPrefix(line, "/"))
	}
	return patterns
}

// isIgnored reports whether relPath (slash-separated, root-relative)
// matches any ignore pattern, trying both the bare pattern and a
// "pattern/**" descendant form so a directory pattern also hides its
// contents.
func isIgnored(patterns []string, relPath string) bool {
	for _, pat := range patterns {
		if ok, _ := doublestar.Match(pat, relPath); ok {
			return true
		}
		if ok, _ := doublestar.Match(pat+"/**", relPath); ok {
			return true
		}
		base := filepath.Base(relPath)
		if ok, _ := doublestar.Match(pat, base); ok {
			return true
		}
	}
	return false
}

// Enumerate walks root honoring .gitignore-style rules, optionally
// including hidden (dot) files, and returns a sortable tree of entries
// in depth-first, name-sorted order.
func Enumerate(root string, includeHidden bool) ([]Entry, error) {
	patterns := append(append([]string{}, defaultIgnorePatterns...), loadGitignore(root)...)

	var entries []Entry
	var walk func(dir, relPrefix string, depth int) error
	walk = func(dir, relPrefix string, depth int) error {
		names, err := readSortedDir(dir)
		if err != nil {
			return errs.Wrap(errs.KindIOFailure, "reading directory "+dir, err)
		}

		visible := names[:0:0]
		for _, name := range names {
			if !includeHidden && strings.HasPrefix(name, ".") {
				continue
			}
			rel := name
			if relPrefix != "" {
				rel = relPrefix + "/" + name
			}
			if isIgnored(patterns, rel) {
				continue
			}
			visible = append(visible, name)
		}

		for i, name := range visible {
			rel := name
			if relPrefix != "" {
				rel = relPrefix + "/" + name
			}
			abs := filepath.Join(dir, name)
			info, err := os.Lstat(abs)
			if err != nil {
				continue
			}
			entry := Entry{
				Path:      rel,
				AbsPath:   abs,
				IsDir:     info.IsDir(),
				Depth:     depth,
				LastInDir: i == len(visible)-1,
			}
			entries = append(entries, entry)
			if entry.IsDir {
				if err := walk(abs, rel, depth+1); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := walk(root, "", 0); err != nil {
		return nil, err
	}
	return entries, nil
}

func readSortedDir(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// RenderTree renders entries using box-drawing connectors, matching
// spec §4.1: "├── ", "└── ", "│  " per nesting level. Ancestor lines are
// tracked per depth so a deeply nested entry draws the correct mix of
// "│  " (an ancestor still has siblings below) and blank indent (an
// ancestor was the last child in its directory).
func RenderTree(entries []Entry) string {
	var b strings.Builder
	openAtDepth := map[int]bool{} // true: ancestor at this depth has more siblings below

	for _, e := range entries {
		for d := 0; d < e.Depth; d++ {
			if openAtDepth[d] {
				b.WriteString("│  ")
			} else {
				b.WriteString("   ")
			}
		}
		if e.LastInDir {
			b.WriteString("└── ")
			openAtDepth[e.Depth] = false
		} else {
			b.WriteString("├── ")
			openAtDepth[e.Depth] = true
		}
		b.WriteString(filepath.Base(e.Path))
		b.WriteString("\n")
	}
	return b.String()
}

// invisibleSuffix is a zero-width space used to disambiguate duplicate
// visible labels so a UI's equality predicate (huh's option list keys
// options by their string value) treats every row as unique even when
// two files in different directories share a basename.
const invisibleSuffix = "​"

// DisambiguateLabels returns one label per entry, appending an
// increasing run of zero-width spaces to repeated basenames so every
// label compares unequal while rendering identically.
func DisambiguateLabels(entries []Entry) []string {
	seen := map[string]int{}
	labels := make([]string, len(entries))
	for i, e := range entries {
		base := filepath.Base(e.Path)
		n := seen[base]
		seen[base] = n + 1
		labels[i] = base + strings.Repeat(invisibleSuffix, n)
	}
	return labels
}

// SelectMulti presents entries as a huh multi-select and returns the
// chosen subset, preserving the entries' relative order. Labels are
// disambiguated per DisambiguateLabels before being handed to huh, since
// huh.Option values must be distinct for the selection result to map
// back unambiguously.
func SelectMulti(title string, entries []Entry) ([]Entry, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	labels := DisambiguateLabels(entries)
	options := make([]huh.Option[int], len(entries))
	for i, label := range labels {
		indent := strings.Repeat("  ", entries[i].Depth)
		options[i] = huh.NewOption(indent+label, i)
	}

	var chosen []int
	field := huh.NewMultiSelect[int]().
		Title(title).
		Options(options...).
		Value(&chosen)

	if err := huh.NewForm(huh.NewGroup(field)).Run(); err != nil {
		return nil, errs.Wrap(errs.KindInvalidInput, "directory selection cancelled", err)
	}

	sort.Ints(chosen)
	out := make([]Entry, 0, len(chosen))
	for _, idx := range chosen {
		out = append(out, entries[idx])
	}
	return out, nil
}

// ExpandSelection expands any directory entries in selected to their
// contained files (recursively, honoring the same ignore rules as
// Enumerate) without double-counting files that were already
// individually selected.
func ExpandSelection(root string, selected []Entry) ([]string, error) {
	seen := map[string]bool{}
	var out []string

	add := func(abs string) {
		if !seen[abs] {
			seen[abs] = true
			out = append(out, abs)
		}
	}

	for _, e := range selected {
		if !e.IsDir {
			add(e.AbsPath)
			continue
		}
		sub, err := Enumerate(e.AbsPath, true)
		if err != nil {
			return nil, err
		}
		for _, s := range sub {
			if !s.IsDir {
				add(s.AbsPath)
			}
		}
	}
	return out, nil
}
