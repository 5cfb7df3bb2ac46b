package markdown

import (
	"sort"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// lineIndex maps a byte offset into the source buffer to a 0-based line
// number, so AST nodes (which goldmark tracks as byte segments) can
// participate in the renderer's line-accounting contract (§4.3).
type lineIndex struct {
	starts []int // starts[i] = byte offset where line i begins
}

func newLineIndex(src []byte) *lineIndex {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts}
}

func (li *lineIndex) lineAt(pos int) int {
	if pos < 0 {
		return 0
	}
	i := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > pos })
	return i - 1
}

// nodeLineRange returns the [start, end] 0-based line range a node spans.
// Block nodes expose their own source segments via Lines(); container
// nodes (lists, blockquotes) have none of their own and recurse into
// their children to find the enclosing range.
func nodeLineRange(n ast.Node, li *lineIndex) (start, end int, ok bool) {
	if lineser, isLiner := n.(interface{ Lines() *text.Segments }); isLiner {
		lines := lineser.Lines()
		if lines != nil && lines.Len() > 0 {
			first := lines.At(0)
			last := lines.At(lines.Len() - 1)
			stop := last.Stop
			if stop > 0 {
				stop--
			}
			return li.lineAt(first.Start), li.lineAt(stop), true
		}
	}

	minStart, maxEnd := -1, -1
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		s, e, childOK := nodeLineRange(c, li)
		if !childOK {
			continue
		}
		if minStart == -1 || s < minStart {
			minStart = s
		}
		if e > maxEnd {
			maxEnd = e
		}
	}
	if minStart == -1 {
		return 0, 0, false
	}
	return minStart, maxEnd, true
}
