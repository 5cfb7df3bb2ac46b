package markdown

import (
	"strings"

	"github.com/skardyy/mcat/internal/theme"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

// tableRow is one rendered, not-yet-bordered row: each cell's already
// styled text. Column alignments are kept separately, read from the
// header cells.
type tableRow struct {
	cells []string
}

// renderTable implements §4.3's table contract: per-column width is the
// max stripped-ANSI visible width over all rows (header included);
// borders use rounded corners and tee joins; cells pad per column
// alignment.
func renderTable(node *extast.Table, ctx *context) string {
	var header tableRow
	var aligns []extast.Alignment
	var rows []tableRow

	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		switch row := c.(type) {
		case *extast.TableHeader:
			header = extractRow(row, ctx)
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				aligns = append(aligns, cell.(*extast.TableCell).Alignment)
			}
		case *extast.TableRow:
			rows = append(rows, extractRow(row, ctx))
		}
	}

	cols := len(header.cells)
	widths := make([]int, cols)
	for i, c := range header.cells {
		widths[i] = VisibleWidth(c)
	}
	for _, r := range rows {
		for i, c := range r.cells {
			if i < cols && VisibleWidth(c) > widths[i] {
				widths[i] = VisibleWidth(c)
			}
		}
	}

	p := ctx.opts.Palette
	border := p.Role(theme.RoleBorder)
	fg := p.Foreground()

	var b strings.Builder
	writeRule := func(left, mid, right string) {
		b.WriteString(border.Fg())
		b.WriteString(left)
		for i, w := range widths {
			b.WriteString(strings.Repeat("─", w+2))
			if i != len(widths)-1 {
				b.WriteString(mid)
			}
		}
		b.WriteString(right)
		b.WriteString("\x1b[0m")
		b.WriteString(fg.Fg())
		b.WriteByte('\n')
	}
	writeRow := func(r tableRow) {
		b.WriteString(border.Fg())
		b.WriteString("│")
		b.WriteString("\x1b[0m")
		for i, w := range widths {
			cell := ""
			if i < len(r.cells) {
				cell = r.cells[i]
			}
			align := extast.AlignLeft
			if i < len(aligns) {
				align = aligns[i]
			}
			b.WriteString(" ")
			b.WriteString(padCell(cell, w, align, fg))
			b.WriteString(" ")
			b.WriteString(border.Fg())
			b.WriteString("│")
			b.WriteString("\x1b[0m")
		}
		b.WriteString(fg.Fg())
		b.WriteByte('\n')
	}

	writeRule("╭", "┬", "╮")
	writeRow(header)
	writeRule("├", "┼", "┤")
	for _, r := range rows {
		writeRow(r)
	}
	writeRule("╰", "┴", "╯")
	return b.String()
}

func extractRow(row ast.Node, ctx *context) tableRow {
	var r tableRow
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		r.cells = append(r.cells, renderInlineChildren(cell, ctx))
	}
	return r
}

func padCell(s string, width int, align extast.Alignment, fg theme.RGB) string {
	w := VisibleWidth(s)
	if w >= width {
		return s
	}
	gap := width - w
	switch align {
	case extast.AlignRight:
		return strings.Repeat(" ", gap) + s
	case extast.AlignCenter:
		left := gap / 2
		right := gap - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", gap)
	}
}
