package markdown

import (
	"strings"
	"testing"

	"github.com/skardyy/mcat/internal/theme"
)

func TestRenderHTMLPlain(t *testing.T) {
	out, err := RenderHTML([]byte("# Title\n\nhello\n"), theme.Presets["dark"], false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "<style>") {
		t.Fatalf("expected no style block without styleHTML, got %q", out)
	}
	if !strings.Contains(out, "<h1>Title</h1>") {
		t.Fatalf("expected heading html, got %q", out)
	}
}

func TestRenderHTMLStyled(t *testing.T) {
	out, err := RenderHTML([]byte("hello\n"), theme.Presets["dark"], true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "--mcat-foreground") {
		t.Fatalf("expected CSS variables present, got %q", out)
	}
}
