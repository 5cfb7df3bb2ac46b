package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"

	"github.com/skardyy/mcat/internal/theme"
)

var htmlConverter = goldmark.New(goldmark.WithExtensions(markdownExtensions...))

// RenderHTML implements the Text->html row of §4.6's output-selection
// table: a plain HTML body, optionally preceded by a themed CSS block
// when styleHTML is set.
func RenderHTML(src []byte, palette theme.Palette, styleHTML bool) (string, error) {
	var buf bytes.Buffer
	if err := htmlConverter.Convert(src, &buf); err != nil {
		return "", err
	}
	if !styleHTML {
		return buf.String(), nil
	}

	var out bytes.Buffer
	out.WriteString("<style>\n")
	out.WriteString(palette.CSSVariables())
	out.WriteString("body { background: var(--mcat-background); color: var(--mcat-foreground); }\n")
	out.WriteString("a { color: var(--mcat-blue); }\n")
	out.WriteString("code, pre { background: var(--mcat-surface); }\n")
	out.WriteString("blockquote { border-left: 3px solid var(--mcat-guide); padding-left: 0.6em; }\n")
	out.WriteString("</style>\n")
	out.Write(buf.Bytes())
	return out.String(), nil
}
