package markdown

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// ansiPattern matches SGR escape sequences so width computation and
// stripping can skip over them.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes every SGR escape sequence from s.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// VisibleWidth returns s's terminal column width, ignoring ANSI escape
// sequences and using unicode East-Asian-width-aware rune widths.
func VisibleWidth(s string) int {
	width := 0
	inEscape := false
	for i := 0; i < len(s); {
		b := s[i]
		if b == '\x1b' {
			inEscape = true
			i++
			continue
		}
		if inEscape {
			if (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') {
				inEscape = false
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			width++
			i++
			continue
		}
		w := runewidth.RuneWidth(r)
		if w > 0 {
			width += w
		}
		i += size
	}
	return width
}

// WrapANSI soft-wraps s to width visible columns, preserving any ANSI
// escape sequences found on an original line across the break (so a
// wrapped continuation keeps whatever color was active at the break
// point). A line breaks before the first rune that would exceed width;
// it does not look for a space to break at, so words can be split.
func WrapANSI(s string, width int) string {
	if width <= 0 {
		return s
	}
	var out strings.Builder
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		out.WriteString(wrapLine(line, width))
		if i != len(lines)-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

func wrapLine(line string, width int) string {
	if VisibleWidth(line) <= width {
		return line
	}

	var out strings.Builder
	var cur strings.Builder
	curWidth := 0
	activeSGR := ""

	i := 0
	for i < len(line) {
		if line[i] == '\x1b' {
			j := i
			for j < len(line) && !((line[j] >= 'a' && line[j] <= 'z') || (line[j] >= 'A' && line[j] <= 'Z')) {
				j++
			}
			if j < len(line) {
				j++
			}
			seq := line[i:j]
			cur.WriteString(seq)
			if strings.HasSuffix(seq, "m") {
				activeSGR = seq
			}
			i = j
			continue
		}
		r, size := utf8.DecodeRuneInString(line[i:])
		w := runewidth.RuneWidth(r)
		if curWidth+w > width {
			out.WriteString(cur.String())
			out.WriteByte('\n')
			cur.Reset()
			curWidth = 0
			if activeSGR != "" {
				cur.WriteString(activeSGR)
			}
		}
		cur.WriteRune(r)
		curWidth += w
		i += size
	}
	out.WriteString(cur.String())
	return out.String()
}
