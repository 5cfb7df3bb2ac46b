package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skardyy/mcat/internal/classify"
	"golang.org/x/term"
)

// directory entry icons, Nerd Font private-use-area glyphs (spec §4.1's
// thumbnail listing). Each fits a 4-hex-digit \u escape.
const (
	iconDirectory = ""
	iconImage     = ""
	iconVideo     = ""
	iconFile      = ""
)

// runLs implements `mcat ls <dir>` (spec §4.1/§6): an interactive
// multi-select picker when stdin is a terminal, or a deterministic
// one-row-per-entry listing otherwise (S5's non-interactive contract).
func runLs(dir string, f pipelineFlags) error {
	entries, err := classify.Enumerate(dir, f.Hidden)
	if err != nil {
		return err
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		selected, err := classify.SelectMulti("select entries to render", entries)
		if err != nil {
			return err
		}
		if len(selected) == 0 {
			return nil
		}
		paths, err := classify.ExpandSelection(dir, selected)
		if err != nil {
			return err
		}
		return runPipeline(paths, f)
	}

	return listDeterministic(entries)
}

func listDeterministic(entries []classify.Entry) error {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(iconFor(e))
		b.WriteByte(' ')
		b.WriteString(filepath.Base(e.Path))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	_, err := fmt.Fprint(os.Stdout, b.String())
	return err
}

func iconFor(e classify.Entry) string {
	if e.IsDir {
		return iconDirectory
	}
	switch strings.ToLower(filepath.Ext(e.Path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp":
		return iconImage
	case ".mp4", ".mov", ".mkv", ".webm", ".avi":
		return iconVideo
	default:
		return iconFile
	}
}
