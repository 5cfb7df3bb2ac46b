package markdown

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/skardyy/mcat/internal/theme"
)

// languageIcons maps a fenced code block's info-string language to a
// short glyph for the block header, falling back to a generic marker.
var languageIcons = map[string]string{
	"go":         "GO",
	"rust":       "RS",
	"rs":         "RS",
	"python":     "PY",
	"py":         "PY",
	"javascript": "JS",
	"js":         "JS",
	"typescript": "TS",
	"ts":         "TS",
	"ruby":       "RB",
	"java":       "JV",
	"c":          "C",
	"cpp":        "C+",
	"c++":        "C+",
	"shell":      "SH",
	"bash":       "SH",
	"sh":         "SH",
	"json":       "JS",
	"yaml":       "YM",
	"yml":        "YM",
	"toml":       "TM",
	"html":       "HT",
	"css":        "CS",
	"markdown":   "MD",
	"md":         "MD",
	"sql":        "DB",
}

const genericFileIcon = "»"

func languageIcon(lang string) string {
	if icon, ok := languageIcons[strings.ToLower(lang)]; ok {
		return icon
	}
	return genericFileIcon
}

// renderCodeBlock implements §4.3.1: a simple one-line-header block
// when no language is given, hide_line_numbers is set, or the block
// is short; otherwise a bordered block with a line-number gutter.
func renderCodeBlock(lines []string, lang string, indent int, ctx *context) string {
	p := ctx.opts.Palette
	fg := p.Foreground()

	var hl *Highlighter
	if lang != "" {
		hl = NewHighlighter(lang, p)
	}

	simple := lang == "" || ctx.opts.HideLineNumbers || len(lines) < 10
	if simple {
		return renderSimpleCodeBlock(lines, lang, indent, hl, p, fg, ctx.opts.ScWidth)
	}
	return renderBorderedCodeBlock(lines, lang, hl, p, fg, ctx.opts.ScWidth)
}

func renderSimpleCodeBlock(lines []string, lang string, indent int, hl *Highlighter, p theme.Palette, fg theme.RGB, scWidth int) string {
	var b strings.Builder

	header := fmt.Sprintf("[ %s %s ]", languageIcon(lang), lang)
	if lang == "" {
		header = "[ " + genericFileIcon + " text ]"
	}
	b.WriteString(p.Role(theme.RoleFunction).Fg())
	b.WriteString(header)
	b.WriteString("\x1b[0m")
	b.WriteString(fg.Fg())
	b.WriteByte('\n')

	width := scWidth - indent
	surfaceBg := p.Role(theme.RoleSurface).Bg()
	for _, line := range lines {
		rendered := line
		if hl != nil {
			rendered = hl.HighlightLine(line, fg)
		}
		rendered = resetDiscipline(rendered, fg)

		wrapped := strings.Split(WrapANSI(rendered, width), "\n")
		for wi, w := range wrapped {
			prefix := strings.Repeat(" ", indent)
			if wi > 0 {
				prefix = strings.Repeat(" ", indent+2)
			}
			fill := width - VisibleWidth(w)
			if fill < 0 {
				fill = 0
			}
			fmt.Fprintf(&b, "%s%s%s%s%s\x1b[0m%s\n", prefix, surfaceBg, fg.Fg(), w, strings.Repeat(" ", fill), fg.Fg())
		}
	}
	return b.String()
}

func renderBorderedCodeBlock(lines []string, lang string, hl *Highlighter, p theme.Palette, fg theme.RGB, scWidth int) string {
	gutterWidth := len(strconv.Itoa(len(lines))) + 2
	contentWidth := scWidth - gutterWidth - 2
	if contentWidth < 1 {
		contentWidth = 1
	}

	guide := p.Role(theme.RoleGuide)
	var b strings.Builder

	writeBorder := func(left, mid, right, fill string) {
		b.WriteString(guide.Fg())
		b.WriteString(left)
		b.WriteString(strings.Repeat(fill, gutterWidth))
		b.WriteString(mid)
		b.WriteString(strings.Repeat(fill, contentWidth+2))
		b.WriteString(right)
		b.WriteString("\x1b[0m")
		b.WriteString(fg.Fg())
		b.WriteByte('\n')
	}

	header := fmt.Sprintf(" %s %s", languageIcon(lang), lang)
	writeBorder("╭", "┬", "╮", "─")
	fmt.Fprintf(&b, "%s│%s%s│%s %-*s\x1b[0m%s\n", guide.Fg(), strings.Repeat(" ", gutterWidth), guide.Fg(), fg.Fg(), contentWidth+1, header, fg.Fg())
	writeBorder("├", "┼", "┤", "─")

	for i, line := range lines {
		rendered := line
		if hl != nil {
			rendered = hl.HighlightLine(line, fg)
		}
		rendered = resetDiscipline(rendered, fg)

		wrapped := strings.Split(WrapANSI(rendered, contentWidth), "\n")
		for wi, w := range wrapped {
			gutter := ""
			if wi == 0 {
				gutter = centerInWidth(strconv.Itoa(i+1), gutterWidth)
			} else {
				gutter = strings.Repeat(" ", gutterWidth)
			}
			fill := contentWidth - VisibleWidth(w)
			if fill < 0 {
				fill = 0
			}
			fmt.Fprintf(&b, "%s│%s%s%s│ %s%s\x1b[0m%s │\x1b[0m%s\n",
				guide.Fg(), gutter, guide.Fg(), fg.Fg(), w, strings.Repeat(" ", fill), fg.Fg(), fg.Fg())
		}
	}
	writeBorder("╰", "┴", "╯", "─")
	return b.String()
}

func centerInWidth(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	right := width - w - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
