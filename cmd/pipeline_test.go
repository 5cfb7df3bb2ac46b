package cmd

import (
	goimage "image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skardyy/mcat/internal/arena"
	"github.com/skardyy/mcat/internal/classify"
	"github.com/skardyy/mcat/internal/config"
	"github.com/skardyy/mcat/internal/geometry"
	"github.com/skardyy/mcat/internal/theme"
)

func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := goimage.NewRGBA(goimage.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 200, A: 255})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

// newTestRun builds a pipelineRun against a fixed 100x20 window without
// going through runPipeline's flag parsing/companion/geometry-detection
// side effects, so renderText's dispatch branches can be driven directly.
func newTestRun(t *testing.T, output string) *pipelineRun {
	t.Helper()
	palette, ok := theme.Get("dark")
	if !ok {
		t.Fatal("expected the dark palette to be registered")
	}
	ar, err := arena.New("mcat-test")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ar.Close() })

	return &pipelineRun{
		flags:   pipelineFlags{Output: output},
		win:     geometry.Wininfo{SpxWidth: 1920, SpxHeight: 1080, ScWidth: 100, ScHeight: 20},
		encoder: geometry.EncoderASCII,
		palette: palette,
		opts:    config.DefaultOpts(false),
		arena:   ar,
	}
}

func writeTextClassified(t *testing.T, dir, body string) []classify.Classified {
	t.Helper()
	path := filepath.Join(dir, "in.md")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return []classify.Classified{{
		Item: classify.Item{PathOrURL: path, OriginLabel: "in.md"},
		Kind: classify.KindText,
		Path: path,
	}}
}

func TestRenderTextMdOutputReturnsRawBody(t *testing.T) {
	r := newTestRun(t, "md")
	classified := writeTextClassified(t, t.TempDir(), "# hello\n\nworld\n")

	out, err := captureStdout(t, func() error { return r.renderText(classified) })
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "# in.md") || !strings.Contains(out, "world") {
		t.Fatalf("expected concatenated markdown body, got %q", out)
	}
}

func TestRenderTextHTMLOutputConvertsMarkdown(t *testing.T) {
	r := newTestRun(t, "html")
	classified := writeTextClassified(t, t.TempDir(), "# hello\n")

	out, err := captureStdout(t, func() error { return r.renderText(classified) })
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<h1") && !strings.Contains(out, "<html") {
		t.Fatalf("expected html output, got %q", out)
	}
}

func TestRenderTextDefaultOutputProducesANSI(t *testing.T) {
	r := newTestRun(t, "inline")
	classified := writeTextClassified(t, t.TempDir(), "plain text\n")

	out, err := captureStdout(t, func() error { return r.renderText(classified) })
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "plain text") {
		t.Fatalf("expected rendered body to contain the source text, got %q", out)
	}
}

func TestRenderTextImageOutputFailsWithoutFetchedChromium(t *testing.T) {
	// chromiumBinary reads from the real OS user cache dir; in a clean
	// test environment no companion has been fetched, so this exercises
	// the "not fetched yet" error path of the Text|image dispatch row
	// without spawning a real browser.
	r := newTestRun(t, "image")
	classified := writeTextClassified(t, t.TempDir(), "# hello\n")

	err := r.renderText(classified)
	if err == nil {
		t.Fatal("expected an error when the chromium companion has not been fetched")
	}
}

func TestRenderImagePassesThroughRawBytesForImageOutput(t *testing.T) {
	r := newTestRun(t, "image")
	dir := t.TempDir()
	path := writePNG(t, dir, "a.png")
	classified := []classify.Classified{{Item: classify.Item{PathOrURL: path}, Kind: classify.KindImage, Path: path}}

	out, err := captureStdout(t, func() error { return r.renderImage(classified) })
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "\x89PNG") {
		t.Fatalf("expected raw PNG bytes passed through, got %q", out[:min(8, len(out))])
	}
}

func TestRenderImageEncodesThroughASCIIEncoderForInlineOutput(t *testing.T) {
	r := newTestRun(t, "inline")
	dir := t.TempDir()
	path := writePNG(t, dir, "a.png")
	classified := []classify.Classified{{Item: classify.Item{PathOrURL: path}, Kind: classify.KindImage, Path: path}}

	out, err := captureStdout(t, func() error { return r.renderImage(classified) })
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(out, "\x89PNG") {
		t.Fatalf("expected an ASCII-encoded grid rather than raw PNG bytes, got %q", out[:min(8, len(out))])
	}
	if out == "" {
		t.Fatal("expected non-empty encoded output")
	}
}

// captureStdout redirects os.Stdout for the duration of fn and returns
// whatever it wrote, since pipelineRun.write always targets os.Stdout
// directly.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = orig

	buf := make([]byte, 0, 4096)
	tmp := make([]byte, 4096)
	for {
		n, rerr := r.Read(tmp)
		buf = append(buf, tmp[:n]...)
		if rerr != nil {
			break
		}
	}
	return string(buf), fnErr
}
