// Package markdown renders CommonMark/GFM source to ANSI terminal text
// (§4.3), with inline images preprocessed and spliced in (§4.4).
package markdown

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/skardyy/mcat/internal/theme"
)

// markdownExtensions is shared between the ANSI parser and RenderHTML's
// converter so both output paths agree on what counts as a table, a
// strikethrough, a footnote, or an emoji shortcode (§3's "parser
// identity is external" contract).
var markdownExtensions = []goldmark.Extender{
	extension.GFM, extension.Typographer, extension.Footnote, emoji.Emoji,
}

var parser = goldmark.New(goldmark.WithExtensions(markdownExtensions...)).Parser()

// Render walks src's Markdown AST and produces ANSI terminal output per
// §4.3: a sideband context threads the palette and a line-numbering
// cursor through the walk, images are fetched/encoded ahead of time and
// spliced into the final wrapped text.
func Render(src []byte, opts RenderOptions) string {
	doc := parser.Parse(text.NewReader(src))

	refs := collectImageRefs(doc)
	mode := renderModeFor(opts.Kind, opts.ModeOverride)
	images := newImageCollector(refs, mode, opts.Kind, opts.Win)

	ctx := &context{opts: opts, src: src, lines: newLineIndex(src), images: images}
	body := renderBlockChildren(doc, ctx)

	out := opts.Palette.Foreground().Fg() + body
	out = WrapANSI(out, opts.ScWidth)
	return substituteImages(out, images)
}

// renderBlockChildren walks parent's block-level children in document
// order, applying the line-accounting contract: before each child it
// emits max(0, start_line-current_line) blank lines, then the child's
// own rendering, then advances current_line past the child's range.
func renderBlockChildren(parent ast.Node, ctx *context) string {
	var b strings.Builder
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		start, end, ok := nodeLineRange(c, ctx.lines)
		if ok {
			delta := start - ctx.currentLine
			if delta > 0 {
				b.WriteString(strings.Repeat("\n", delta))
			}
		}
		b.WriteString(renderBlock(c, ctx))
		b.WriteByte('\n')
		if ok {
			ctx.currentLine = end + 1
		}
	}
	return b.String()
}

// renderBlock dispatches one block-level node per §4.3's node-rendering
// table.
func renderBlock(n ast.Node, ctx *context) string {
	switch node := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return renderInlineChildren(n, ctx)
	case *ast.Heading:
		return renderHeading(node, ctx)
	case *ast.FencedCodeBlock:
		lang := ""
		if l := node.Language(ctx.src); l != nil {
			lang = string(l)
		}
		return renderCodeBlock(extractSegmentLines(node, ctx.src), lang, 0, ctx)
	case *ast.CodeBlock:
		return renderCodeBlock(extractSegmentLines(node, ctx.src), "", 0, ctx)
	case *ast.Blockquote:
		return renderBlockquoteNode(node, ctx)
	case *ast.List:
		return renderList(node, ctx)
	case *extast.Table:
		return renderTable(node, ctx)
	case *ast.ThematicBreak:
		return strings.Repeat("━", ctx.opts.ScWidth)
	case *ast.HTMLBlock:
		return renderHTMLBlockNode(node, ctx)
	default:
		return renderBlockChildren(n, ctx)
	}
}

// lineSegmenter is satisfied by every goldmark block node that carries
// its own source segments (BaseBlock.Lines()).
type lineSegmenter interface {
	Lines() *text.Segments
}

func extractSegmentLines(n lineSegmenter, src []byte) []string {
	segs := n.Lines()
	lines := make([]string, 0, segs.Len())
	for i := 0; i < segs.Len(); i++ {
		lines = append(lines, strings.TrimRight(string(segs.At(i).Value(src)), "\n"))
	}
	return lines
}

// renderHeading implements §4.3's four heading contracts.
func renderHeading(h *ast.Heading, ctx *context) string {
	text := renderInlineChildren(h, ctx)
	plain := StripANSI(text)
	p := ctx.opts.Palette
	kw := p.Role(theme.RoleKeyword)
	fg := p.Foreground()
	width := ctx.opts.ScWidth

	switch h.Level {
	case 1:
		ruleLen := min(len(plain)+6, width)
		rule := strings.Repeat("─", ruleLen)
		var b strings.Builder
		fmt.Fprintf(&b, "%s\x1b[1m%s\x1b[0m%s\n", kw.Fg(), rule, fg.Fg())
		fmt.Fprintf(&b, "   %s\x1b[1m%s\x1b[0m%s\n", kw.Fg(), text, fg.Fg())
		fmt.Fprintf(&b, "%s\x1b[1m%s\x1b[0m%s", kw.Fg(), rule, fg.Fg())
		return b.String()
	case 2:
		ruleLen := min(len(plain)+4, width)
		rule := strings.Repeat("─", ruleLen)
		var b strings.Builder
		fmt.Fprintf(&b, "  %s\x1b[1m%s\x1b[0m%s\n", kw.Fg(), text, fg.Fg())
		fmt.Fprintf(&b, "  %s%s\x1b[0m%s", kw.Fg(), rule, fg.Fg())
		return b.String()
	case 3:
		return kw.Fg() + "\x1b[1m→ " + text + "\x1b[0m" + fg.Fg()
	default:
		return kw.Fg() + "▸ " + text + "\x1b[0m" + fg.Fg()
	}
}

func renderBlockquoteNode(bq *ast.Blockquote, ctx *context) string {
	child := ctx.child()
	child.currentLine = 0
	inner := renderBlockChildren(bq, child)
	lines := strings.Split(strings.TrimRight(inner, "\n"), "\n")
	if len(lines) == 0 {
		return ""
	}

	kind, rest := detectAlert(lines[0])
	if kind == alertNone {
		return renderBlockquote(lines, 0, ctx)
	}

	var body []string
	if strings.TrimSpace(rest) != "" {
		body = append(body, rest)
	}
	body = append(body, lines[1:]...)
	return renderAlert(kind, body, ctx)
}

func renderList(list *ast.List, ctx *context) string {
	var b strings.Builder
	idx := list.Start
	if idx == 0 {
		idx = 1
	}
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		li, ok := item.(*ast.ListItem)
		if !ok {
			continue
		}

		marker := "● "
		if list.IsOrdered() {
			marker = strconv.Itoa(idx) + ". "
			idx++
		}
		if cb := firstTaskCheckbox(li); cb != nil {
			marker = taskGlyph(cb.IsChecked, ctx.opts.Palette) + " "
		}

		child := ctx.child()
		child.currentLine = 0
		body := strings.TrimRight(renderBlockChildren(li, child), "\n")
		body = strings.ReplaceAll(body, "\n", "\n  ")

		b.WriteString(marker)
		b.WriteString(body)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func firstTaskCheckbox(li *ast.ListItem) *extast.TaskCheckBox {
	first := li.FirstChild()
	if first == nil {
		return nil
	}
	cb, _ := first.FirstChild().(*extast.TaskCheckBox)
	return cb
}

func taskGlyph(checked bool, p theme.Palette) string {
	if checked {
		return p.Basic(theme.BasicGreen).Fg() + "[x]\x1b[0m" + p.Foreground().Fg()
	}
	return p.Basic(theme.BasicRed).Fg() + "[ ]\x1b[0m" + p.Foreground().Fg()
}

var sTitlePattern = regexp.MustCompile(`(?s)<!--\s*S-TITLE:\s*(.*?)\s*-->`)

func renderHTMLBlockNode(n *ast.HTMLBlock, ctx *context) string {
	lines := extractSegmentLines(n, ctx.src)
	joined := strings.Join(lines, "\n")
	if m := sTitlePattern.FindStringSubmatch(joined); m != nil {
		return renderTitleBand(m[1], ctx)
	}

	hl := NewHighlighter("html", ctx.opts.Palette)
	fg := ctx.opts.Palette.Foreground()
	var b strings.Builder
	for i, line := range lines {
		rendered := line
		if hl != nil {
			rendered = hl.HighlightLine(line, fg)
		}
		b.WriteString(resetDiscipline(rendered, fg))
		if i != len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func renderTitleBand(title string, ctx *context) string {
	p := ctx.opts.Palette
	width := ctx.opts.ScWidth
	pad := width - VisibleWidth(title)
	if pad < 0 {
		pad = 0
	}
	left := pad / 2
	right := pad - left

	bg := p.Role(theme.RoleSurface).Bg()
	fg := p.Foreground()
	return bg + fg.Fg() + strings.Repeat(" ", left) +
		"\x1b[1m" + title + "\x1b[0m" + bg + fg.Fg() +
		strings.Repeat(" ", right) + "\x1b[0m" + fg.Fg()
}

// renderInlineChildren concatenates the rendering of n's inline
// children in order; it carries no line accounting of its own (§4.3's
// "children verbatim" contract for inline content).
func renderInlineChildren(n ast.Node, ctx *context) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		b.WriteString(renderInline(c, ctx))
	}
	return b.String()
}

func renderInline(n ast.Node, ctx *context) string {
	fg := ctx.opts.Palette.Foreground()

	switch node := n.(type) {
	case *ast.Text:
		s := string(node.Segment.Value(ctx.src))
		if node.SoftLineBreak() {
			return s + " "
		}
		return s
	case *ast.String:
		return string(node.Value)
	case *ast.Emphasis:
		inner := renderInlineChildren(node, ctx)
		code := "3"
		if node.Level == 2 {
			code = "1"
		}
		return "\x1b[" + code + "m" + inner + "\x1b[0m" + fg.Fg()
	case *extast.Strikethrough:
		inner := renderInlineChildren(node, ctx)
		return "\x1b[9m" + inner + "\x1b[0m" + fg.Fg()
	case *ast.CodeSpan:
		inner := renderInlineChildren(node, ctx)
		surface := ctx.opts.Palette.Role(theme.RoleSurface)
		return surface.Fg() + "\x1b[7m" + inner + "\x1b[0m" + fg.Fg()
	case *ast.Link:
		inner := renderInlineChildren(node, ctx)
		cyan := ctx.opts.Palette.Basic(theme.BasicCyan)
		return cyan.Fg() + "󰌹 \x1b[4m" + inner + "\x1b[0m" + fg.Fg()
	case *ast.AutoLink:
		url := string(node.URL(ctx.src))
		cyan := ctx.opts.Palette.Basic(theme.BasicCyan)
		return cyan.Fg() + "󰌹 \x1b[4m" + url + "\x1b[0m" + fg.Fg()
	case *ast.Image:
		return renderImageNode(node, ctx)
	case *extast.TaskCheckBox:
		return ""
	case *ast.RawHTML:
		return extractRawHTML(node, ctx.src)
	default:
		return renderInlineChildren(n, ctx)
	}
}

func renderImageNode(img *ast.Image, ctx *context) string {
	dest := string(img.Destination)
	meta := ctx.images.lookup(dest)
	if meta == nil || meta.err != nil {
		return "[image: " + renderInlineChildren(img, ctx) + "]"
	}
	return meta.placeholder
}

func extractRawHTML(n *ast.RawHTML, src []byte) string {
	var b strings.Builder
	for i := 0; i < n.Segments.Len(); i++ {
		b.Write(n.Segments.At(i).Value(src))
	}
	return b.String()
}
