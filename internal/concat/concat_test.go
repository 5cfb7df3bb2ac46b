package concat

import (
	"bufio"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skardyy/mcat/internal/arena"
	"github.com/skardyy/mcat/internal/classify"
)

func writePNG(t *testing.T, dir, name string, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
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

func TestTextConcatenatesWithHeaders(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "a.txt")
	p2 := filepath.Join(dir, "b.txt")
	os.WriteFile(p1, []byte("hello"), 0644)
	os.WriteFile(p2, []byte("world\n"), 0644)

	items := []classify.Classified{
		{Item: classify.Item{PathOrURL: p1, OriginLabel: "a.txt"}, Path: p1},
		{Item: classify.Item{PathOrURL: p2, OriginLabel: "b.txt"}, Path: p2},
	}

	out, err := Text(items)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "# a.txt") || !strings.Contains(out, "# b.txt") {
		t.Fatalf("expected both headers, got:\n%s", out)
	}
	if !strings.Contains(out, "hello\n\n# b.txt") {
		t.Fatalf("expected blank separator between items, got:\n%s", out)
	}
}

func TestTextLabelDefaultsToPath(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "only.txt")
	os.WriteFile(p1, []byte("x"), 0644)

	items := []classify.Classified{
		{Item: classify.Item{PathOrURL: p1}, Path: p1},
	}
	out, err := Text(items)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "# "+p1) {
		t.Fatalf("expected path used as label, got:\n%s", out)
	}
}

func TestImagesTileVertically(t *testing.T) {
	dir := t.TempDir()
	p1 := writePNG(t, dir, "a.png", 10, 4, color.White)
	p2 := writePNG(t, dir, "b.png", 6, 4, color.Black)

	out, err := Images([]string{p1, p2}, false)
	if err != nil {
		t.Fatal(err)
	}
	img, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	b := img.Bounds()
	if b.Dy() != 8 {
		t.Errorf("expected stacked height 8, got %d", b.Dy())
	}
	if b.Dx() != 10 {
		t.Errorf("expected max width 10, got %d", b.Dx())
	}
}

func TestImagesTileHorizontally(t *testing.T) {
	dir := t.TempDir()
	p1 := writePNG(t, dir, "a.png", 4, 10, color.White)
	p2 := writePNG(t, dir, "b.png", 4, 6, color.Black)

	out, err := Images([]string{p1, p2}, true)
	if err != nil {
		t.Fatal(err)
	}
	img, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	b := img.Bounds()
	if b.Dx() != 8 {
		t.Errorf("expected stacked width 8, got %d", b.Dx())
	}
	if b.Dy() != 10 {
		t.Errorf("expected max height 10, got %d", b.Dy())
	}
}

func TestImagesRejectsEmptyInput(t *testing.T) {
	if _, err := Images(nil, false); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestWritePlaylistListsAbsolutePaths(t *testing.T) {
	ar, err := arena.New("test")
	if err != nil {
		t.Fatal(err)
	}
	defer ar.Close()

	dir := t.TempDir()
	v1 := filepath.Join(dir, "clip1.mp4")
	v2 := filepath.Join(dir, "clip2.mp4")
	os.WriteFile(v1, []byte("fake"), 0644)
	os.WriteFile(v2, []byte("fake"), 0644)

	path, err := writePlaylist([]string{v1, v2}, ar)
	if err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 playlist lines, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "clip1.mp4") || !strings.Contains(lines[1], "clip2.mp4") {
		t.Fatalf("unexpected playlist contents: %v", lines)
	}
}
