package markdown

import (
	"image"
	"strings"
	"testing"

	"github.com/yuin/goldmark/text"

	"github.com/skardyy/mcat/internal/geometry"
)

func TestSplitImageDestParsesTrailingSize(t *testing.T) {
	rawURL, w, h, ok := splitImageDest("https://example.com/a.png#300x200")
	if !ok || rawURL != "https://example.com/a.png" || w != 300 || h != 200 {
		t.Fatalf("got %q %d %d %v", rawURL, w, h, ok)
	}
}

func TestSplitImageDestLeavesPlainFragmentAlone(t *testing.T) {
	rawURL, _, _, ok := splitImageDest("https://example.com/page#section")
	if ok {
		t.Fatalf("expected no size match for a non-numeric fragment")
	}
	if rawURL != "https://example.com/page#section" {
		t.Fatalf("got %q", rawURL)
	}
}

func TestRenderModeForRespectsOverride(t *testing.T) {
	none := RenderNone
	if got := renderModeFor(geometry.EncoderKitty, &none); got != RenderNone {
		t.Fatalf("expected override to win, got %v", got)
	}
	if got := renderModeFor(geometry.EncoderKitty, nil); got != RenderAll {
		t.Fatalf("expected kitty -> All, got %v", got)
	}
	if got := renderModeFor(geometry.EncoderITerm, nil); got != RenderSmall {
		t.Fatalf("expected iterm -> Small, got %v", got)
	}
	if got := renderModeFor(geometry.EncoderASCII, nil); got != RenderNone {
		t.Fatalf("expected ascii -> None, got %v", got)
	}
}

func TestCollectImageRefsDeduplicatesByDestination(t *testing.T) {
	src := []byte("![a](https://x/img.png) and again ![b](https://x/img.png)\n")
	doc := parser.Parse(text.NewReader(src))
	refs := collectImageRefs(doc)
	if len(refs) != 1 {
		t.Fatalf("expected 1 deduplicated ref, got %d", len(refs))
	}
}

func TestNewImageCollectorSkipsFetchInNoneMode(t *testing.T) {
	refs := []imageRef{{key: "https://x/img.png", url: "https://x/img.png"}}
	ic := newImageCollector(refs, RenderNone, geometry.EncoderASCII, geometry.Wininfo{})
	if len(ic.byKey) != 0 {
		t.Fatalf("expected no fetch in RenderNone mode, got %d entries", len(ic.byKey))
	}
	if ic.lookup("https://x/img.png") != nil {
		t.Fatalf("expected no metadata recorded")
	}
}

func TestSubstituteImagesConsumesPlaceholderOnce(t *testing.T) {
	ic := &imageCollector{byKey: map[string]*imageMeta{
		"img1": {kind: geometry.EncoderASCII, firstRow: "PLACEHOLDER", payload: "<PAYLOAD>"},
	}}
	out := "line before\nPLACEHOLDER\nPLACEHOLDER\nline after"
	got := substituteImages(out, ic)

	if strings.Count(got, "<PAYLOAD>") != 1 {
		t.Fatalf("expected payload spliced exactly once, got %q", got)
	}
	if strings.Count(got, "PLACEHOLDER") != 1 {
		t.Fatalf("expected the consumed occurrence's placeholder to be gone, got %q", got)
	}
}

func TestSubstituteImagesKeepsKittyPlaceholderAlongsidePayload(t *testing.T) {
	ic := &imageCollector{byKey: map[string]*imageMeta{
		"img1": {kind: geometry.EncoderKitty, firstRow: "PLACEHOLDER", payload: "<PAYLOAD>"},
	}}
	out := "line before\nPLACEHOLDER\nline after"
	got := substituteImages(out, ic)

	if strings.Count(got, "<PAYLOAD>") != 1 {
		t.Fatalf("expected payload spliced exactly once, got %q", got)
	}
	if strings.Count(got, "PLACEHOLDER") != 1 {
		t.Fatalf("expected the kitty placeholder grid to survive the splice, got %q", got)
	}
}

func TestClampSizeForcesSmallModeHeightToOneCellMinusOnePixel(t *testing.T) {
	win := geometry.Wininfo{SpxWidth: 1920, SpxHeight: 1080, ScWidth: 100, ScHeight: 40}
	img := image.NewRGBA(image.Rect(0, 0, 800, 600))
	_, heightCells := clampSize(img, imageRef{}, RenderSmall, win)
	if heightCells != 1 {
		t.Fatalf("expected small mode to clamp to a single cell, got %d", heightCells)
	}
}
