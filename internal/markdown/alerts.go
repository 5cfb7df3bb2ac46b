package markdown

import (
	"regexp"
	"strings"

	"github.com/skardyy/mcat/internal/theme"
)

// alertKind is one of the five GitHub-flavoured alert variants a
// blockquote's first line can declare with a "[!KIND]" marker.
type alertKind int

const (
	alertNone alertKind = iota
	alertNote
	alertTip
	alertImportant
	alertWarning
	alertCaution
)

var alertMarker = regexp.MustCompile(`^\[!(NOTE|TIP|IMPORTANT|WARNING|CAUTION)\]\s*`)

func detectAlert(firstLine string) (alertKind, string) {
	m := alertMarker.FindStringSubmatch(strings.TrimSpace(firstLine))
	if m == nil {
		return alertNone, firstLine
	}
	rest := alertMarker.ReplaceAllString(strings.TrimSpace(firstLine), "")
	switch m[1] {
	case "NOTE":
		return alertNote, rest
	case "TIP":
		return alertTip, rest
	case "IMPORTANT":
		return alertImportant, rest
	case "WARNING":
		return alertWarning, rest
	case "CAUTION":
		return alertCaution, rest
	}
	return alertNone, firstLine
}

func (k alertKind) title() string {
	switch k {
	case alertNote:
		return "Note"
	case alertTip:
		return "Tip"
	case alertImportant:
		return "Important"
	case alertWarning:
		return "Warning"
	case alertCaution:
		return "Caution"
	}
	return ""
}

func (k alertKind) icon() string {
	switch k {
	case alertNote:
		return "ℹ"
	case alertTip:
		return "✓"
	case alertImportant:
		return "‼"
	case alertWarning:
		return "⚠"
	case alertCaution:
		return "✗"
	}
	return ""
}

// color resolves an alert's bar/title color from the palette's basic
// colors per spec §4.3: Note=blue, Tip=green, Important=cyan,
// Warning=yellow, Caution=red.
func (k alertKind) color(p theme.Palette) theme.RGB {
	switch k {
	case alertNote:
		return p.Basic(theme.BasicBlue)
	case alertTip:
		return p.Basic(theme.BasicGreen)
	case alertImportant:
		return p.Basic(theme.BasicCyan)
	case alertWarning:
		return p.Basic(theme.BasicYellow)
	case alertCaution:
		return p.Basic(theme.BasicRed)
	}
	return p.Foreground()
}

// renderAlert renders a detected alert's body lines (the blockquote
// content minus its marker line) with a colored bar, an icon-prefixed
// bold title, and a per-line "▌ " prefix.
func renderAlert(k alertKind, bodyLines []string, ctx *context) string {
	p := ctx.opts.Palette
	fg := p.Foreground()
	color := k.color(p)

	var b strings.Builder
	b.WriteString(color.Fg())
	b.WriteString("▌ \x1b[1m")
	b.WriteString(k.icon())
	b.WriteString(" ")
	b.WriteString(k.title())
	b.WriteString("\x1b[0m")
	b.WriteString(fg.Fg())
	b.WriteByte('\n')

	for _, line := range bodyLines {
		b.WriteString(color.Fg())
		b.WriteString("▌ ")
		b.WriteString(p.Role(theme.RoleComment).Fg())
		b.WriteString(line)
		b.WriteString("\x1b[0m")
		b.WriteString(fg.Fg())
		b.WriteByte('\n')
	}
	return b.String()
}

// renderBlockquote renders a non-alert blockquote: each line prefixed
// with "▌ " in the guide color, body text in the comment color.
// indentCells reproduces the parser-reported fence offset for a
// multiline/nested blockquote.
func renderBlockquote(bodyLines []string, indentCells int, ctx *context) string {
	p := ctx.opts.Palette
	fg := p.Foreground()
	guide := p.Role(theme.RoleGuide)
	comment := p.Role(theme.RoleComment)
	indent := strings.Repeat(" ", indentCells)

	var b strings.Builder
	for _, line := range bodyLines {
		b.WriteString(indent)
		b.WriteString(guide.Fg())
		b.WriteString("▌ ")
		b.WriteString(comment.Fg())
		b.WriteString(line)
		b.WriteString("\x1b[0m")
		b.WriteString(fg.Fg())
		b.WriteByte('\n')
	}
	return b.String()
}
