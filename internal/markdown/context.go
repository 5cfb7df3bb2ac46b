package markdown

import (
	"strings"

	"github.com/skardyy/mcat/internal/geometry"
	"github.com/skardyy/mcat/internal/theme"
)

// RenderOptions configures one Render call.
type RenderOptions struct {
	Palette         theme.Palette
	ScWidth         int
	HideLineNumbers bool

	// Kind and Win drive the inline-image preprocessor (§4.4): which
	// terminal protocol to encode for and the screen geometry to size
	// against. ModeOverride, when non-nil, overrides the render mode
	// the encoder kind would otherwise select.
	Kind         geometry.EncoderKind
	Win          geometry.Wininfo
	ModeOverride *RenderMode
}

// context is the sideband state threaded through the tree walk (§4.3):
// palette/syntax set, the line-numbering cursor, and the collected
// image placeholders. Each recursive call that needs to collect a
// child's text first builds a fresh context inheriting palette/options
// from its parent but starting with an empty buffer, per the "cyclic
// reference" design note: render helpers take (node, ctx) and return an
// owned string rather than writing into a shared buffer.
type context struct {
	opts        RenderOptions
	src         []byte
	lines       *lineIndex
	currentLine int
	images      *imageCollector
}

func (c *context) child() *context {
	return &context{opts: c.opts, src: c.src, lines: c.lines, currentLine: c.currentLine, images: c.images}
}

// resetDiscipline rewrites every bare "\x1b[0m" in s so it is always
// immediately followed by the theme foreground color, per §4.3's color
// reset discipline: a reset is never emitted alone.
func resetDiscipline(s string, fg theme.RGB) string {
	return strings.ReplaceAll(s, "\x1b[0m", "\x1b[0m"+fg.Fg())
}
