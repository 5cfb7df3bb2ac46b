//go:build windows

package geometry

import (
	"runtime"
	"strings"

	"golang.org/x/term"
)

// queryOSSize has no pixel-geometry ioctl on Windows; it reports the cell
// size via golang.org/x/term and leaves pixel geometry at zero so the
// caller falls back to its configured Size, matching the original
// implementation's "gross estimation" comment for the Windows path.
func queryOSSize() (spxW, spxH, scW, scH int) {
	w, h, err := term.GetSize(0)
	if err != nil {
		return 0, 0, 0, 0
	}
	return 0, 0, w, h
}

func currentOS() string {
	return strings.ToLower(runtime.GOOS)
}

func queryTmuxOriginalTerminal() (termType, termName string, ok bool) {
	return "", "", false
}
