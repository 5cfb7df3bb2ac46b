package theme

import (
	"fmt"
	"strings"
	"testing"
)

// TestFgBgRoundTrip verifies property #2 from the spec: for every
// palette role r, the 24-bit triple survives both the foreground and
// background escape-sequence projections (fg(bg(r)) == r in the sense
// that both sequences encode the identical RGB triple).
func TestFgBgRoundTrip(t *testing.T) {
	for name, p := range Presets {
		for r := Role(0); r < roleCount; r++ {
			c := p.Role(r)
			fg := c.Fg()
			bg := c.Bg()

			wantFg := fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B)
			wantBg := fmt.Sprintf("\x1b[48;2;%d;%d;%dm", c.R, c.G, c.B)
			if fg != wantFg {
				t.Errorf("%s/%s: Fg() = %q, want %q", name, r, fg, wantFg)
			}
			if bg != wantBg {
				t.Errorf("%s/%s: Bg() = %q, want %q", name, r, bg, wantBg)
			}
		}
	}
}

func TestAllPresetsHaveNonZeroForeground(t *testing.T) {
	for _, name := range PresetNames {
		p, ok := Get(name)
		if !ok {
			t.Fatalf("missing preset %q", name)
		}
		fg := p.Foreground()
		if fg.R == 0 && fg.G == 0 && fg.B == 0 {
			t.Errorf("preset %q has black foreground", name)
		}
	}
}

func TestChromaStyleProjection(t *testing.T) {
	for name, p := range Presets {
		style, err := p.ChromaStyle()
		if err != nil {
			t.Fatalf("%s: ChromaStyle error: %v", name, err)
		}
		if style == nil {
			t.Fatalf("%s: nil style", name)
		}
	}
}

func TestCSSVariablesContainsAllRoles(t *testing.T) {
	p, _ := Get("dark")
	css := p.CSSVariables()
	for r := Role(0); r < roleCount; r++ {
		want := "--mcat-" + r.String() + ":"
		if !strings.Contains(css, want) {
			t.Errorf("CSS missing variable for role %s", r)
		}
	}
}
