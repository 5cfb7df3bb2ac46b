package mediaio

import (
	"archive/zip"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLargestImageSrcPicksBiggestArea(t *testing.T) {
	html := `
		<img src="small.png" width="10" height="10">
		<img src="big.png" width="800" height="600">
		<img src="medium.png" width="100" height="100">
	`
	src, ok := largestImageSrc(html, "https://example.com/page")
	if !ok {
		t.Fatal("expected a match")
	}
	if src != "https://example.com/big.png" {
		t.Fatalf("got %q", src)
	}
}

func TestLargestImageSrcNoImages(t *testing.T) {
	if _, ok := largestImageSrc("<p>no images here</p>", "https://example.com"); ok {
		t.Fatal("expected no match")
	}
}

func TestResolveURLRelative(t *testing.T) {
	base, _ := url.Parse("https://example.com/dir/page.html")
	got := resolveURL(base, "../img/x.png")
	want := "https://example.com/img/x.png"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDimParsesPercentAndPixels(t *testing.T) {
	if got := dim("200", 100); got != 200 {
		t.Fatalf("got %d", got)
	}
	if got := dim("50%", 200); got != 100 {
		t.Fatalf("got %d", got)
	}
	if got := dim("", 42); got != 42 {
		t.Fatalf("got %d", got)
	}
	if got := dim("garbage", 42); got != 42 {
		t.Fatalf("got %d", got)
	}
}

func TestDocumentToMarkdownUnsupportedFormatDegrades(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(p, []byte("not a real pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := DocumentToMarkdown(p)
	if err != nil {
		t.Fatal(err)
	}
	if out == "" {
		t.Fatal("expected a non-empty placeholder")
	}
}

func TestArchiveToMarkdownListsMembers(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "bundle.zip")

	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("readme.txt")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	out, err := ArchiveToMarkdown(p)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "readme.txt") {
		t.Fatalf("expected listing to contain readme.txt, got %q", out)
	}
}
