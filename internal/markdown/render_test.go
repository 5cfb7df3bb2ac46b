package markdown

import (
	"strings"
	"testing"

	"github.com/yuin/goldmark/text"

	"github.com/skardyy/mcat/internal/geometry"
	"github.com/skardyy/mcat/internal/theme"
)

func testOptions() RenderOptions {
	return RenderOptions{
		Palette: theme.Presets["dark"],
		ScWidth: 80,
		Kind:    geometry.EncoderASCII,
	}
}

func TestRenderHeadingLevels(t *testing.T) {
	src := "# One\n\n## Two\n\n### Three\n\n#### Four\n"
	out := Render([]byte(src), testOptions())
	plain := StripANSI(out)

	if !strings.Contains(plain, "One") || !strings.Contains(plain, "Two") {
		t.Fatalf("expected heading text present, got %q", plain)
	}
	if !strings.Contains(plain, "→ Three") {
		t.Fatalf("expected h3 prefix, got %q", plain)
	}
	if !strings.Contains(plain, "▸ Four") {
		t.Fatalf("expected h4 prefix, got %q", plain)
	}
}

func TestRenderParagraphSeparationPreservesBlankLines(t *testing.T) {
	src := "first paragraph\n\n\nsecond paragraph\n"
	out := Render([]byte(src), testOptions())
	plain := StripANSI(out)

	idxFirst := strings.Index(plain, "first paragraph")
	idxSecond := strings.Index(plain, "second paragraph")
	if idxFirst < 0 || idxSecond < 0 {
		t.Fatalf("expected both paragraphs present, got %q", plain)
	}
	between := plain[idxFirst+len("first paragraph") : idxSecond]
	if strings.Count(between, "\n") < 2 {
		t.Fatalf("expected the double-blank-line gap preserved, got gap %q", between)
	}
}

func TestRenderEmphasisAndStrikethrough(t *testing.T) {
	src := "*italic* **bold** ~~gone~~\n"
	out := Render([]byte(src), testOptions())
	if !strings.Contains(out, "\x1b[3m") {
		t.Fatalf("expected italic SGR code, got %q", out)
	}
	if !strings.Contains(out, "\x1b[1m") {
		t.Fatalf("expected bold SGR code, got %q", out)
	}
	if !strings.Contains(out, "\x1b[9m") {
		t.Fatalf("expected strikethrough SGR code, got %q", out)
	}
}

func TestRenderTaskList(t *testing.T) {
	src := "- [x] done\n- [ ] pending\n"
	out := Render([]byte(src), testOptions())
	plain := StripANSI(out)
	if !strings.Contains(plain, "[x]") || !strings.Contains(plain, "[ ]") {
		t.Fatalf("expected task glyphs present, got %q", plain)
	}
}

func TestRenderOrderedListStartsAtParserValue(t *testing.T) {
	src := "5. five\n6. six\n"
	out := Render([]byte(src), testOptions())
	plain := StripANSI(out)
	if !strings.Contains(plain, "5. five") || !strings.Contains(plain, "6. six") {
		t.Fatalf("expected list numbered from parser start, got %q", plain)
	}
}

func TestRenderAlertDetection(t *testing.T) {
	src := "> [!WARNING]\n> be careful\n"
	out := Render([]byte(src), testOptions())
	plain := StripANSI(out)
	if !strings.Contains(plain, "Warning") {
		t.Fatalf("expected alert title rendered, got %q", plain)
	}
	if !strings.Contains(plain, "be careful") {
		t.Fatalf("expected alert body rendered, got %q", plain)
	}
}

func TestRenderPlainBlockquote(t *testing.T) {
	src := "> just a quote\n"
	out := Render([]byte(src), testOptions())
	plain := StripANSI(out)
	if !strings.Contains(plain, "▌ just a quote") {
		t.Fatalf("expected blockquote bar prefix, got %q", plain)
	}
}

func TestRenderThematicBreakFillsWidth(t *testing.T) {
	opts := testOptions()
	opts.ScWidth = 10
	out := Render([]byte("---\n"), opts)
	plain := StripANSI(out)
	if !strings.Contains(plain, strings.Repeat("━", 10)) {
		t.Fatalf("expected a full-width rule, got %q", plain)
	}
}

func TestRenderSTitleBand(t *testing.T) {
	src := "<!-- S-TITLE: Report -->\n"
	out := Render([]byte(src), testOptions())
	plain := StripANSI(out)
	if !strings.Contains(plain, "Report") {
		t.Fatalf("expected title band text, got %q", plain)
	}
}

func TestNodeLineRangeMonotonic(t *testing.T) {
	src := []byte("# heading\n\nparagraph one\n\nparagraph two\n")
	doc := parser.Parse(text.NewReader(src))
	li := newLineIndex(src)

	last := -1
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		start, end, ok := nodeLineRange(c, li)
		if !ok {
			continue
		}
		if start < last {
			t.Fatalf("line ranges not monotonic: start %d after previous %d", start, last)
		}
		if end < start {
			t.Fatalf("end %d before start %d", end, start)
		}
		last = end
	}
}
