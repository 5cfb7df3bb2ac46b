package markdown

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/skardyy/mcat/internal/theme"
)

// Highlighter applies syntax highlighting to code-block lines using the
// active theme's chroma projection (theme.Palette.ChromaStyle). It
// never falls back to chroma's own built-in styles: an unrecognised
// language degrades to plain, unhighlighted text per §7's "partial
// rendering errors degrade, never abort" policy.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style
}

// NewHighlighter resolves a lexer for language/filename lang against the
// given palette. It returns nil if the language is unrecognised, in
// which case callers should render the code block unhighlighted.
func NewHighlighter(lang string, p theme.Palette) *Highlighter {
	if lang == "" {
		return nil
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Match(lang)
	}
	if lexer == nil {
		return nil
	}
	lexer = chroma.Coalesce(lexer)

	style, err := p.ChromaStyle()
	if err != nil || style == nil {
		return nil
	}
	return &Highlighter{lexer: lexer, style: style}
}

// HighlightLine tokenises line and returns it with SGR foreground codes
// applied per the active style, with every reset immediately followed
// by the theme foreground (§4.3 color reset discipline) so the caller
// can append literal text afterward without losing the theme color.
func (h *Highlighter) HighlightLine(line string, fg theme.RGB) string {
	if h == nil {
		return line
	}
	iterator, err := h.lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}

	var buf strings.Builder
	for token := iterator(); token != chroma.EOF; token = iterator() {
		value := strings.TrimRight(token.Value, "\n")
		if value == "" {
			continue
		}
		entry := h.style.Get(token.Type)

		var codes []string
		if entry.Colour.IsSet() {
			codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue()))
		}
		if entry.Bold == chroma.Yes {
			codes = append(codes, "1")
		}
		if entry.Italic == chroma.Yes {
			codes = append(codes, "3")
		}
		if entry.Underline == chroma.Yes {
			codes = append(codes, "4")
		}

		if len(codes) > 0 {
			fmt.Fprintf(&buf, "\x1b[%sm%s\x1b[0m%s", strings.Join(codes, ";"), value, fg.Fg())
		} else {
			buf.WriteString(value)
		}
	}
	return buf.String()
}
