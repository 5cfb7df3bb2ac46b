package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/skardyy/mcat/internal/arena"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestClassifyImageByMagic(t *testing.T) {
	pngSig := []byte("\x89PNG\r\n\x1a\n0000000000")
	path := writeTemp(t, "photo.bin", pngSig) // wrong extension on purpose

	ar, err := arena.New("test")
	if err != nil {
		t.Fatal(err)
	}
	defer ar.Close()

	got, err := Classify([]Item{{PathOrURL: path}}, ar)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Kind != KindImage {
		t.Errorf("expected Image, got %v", got[0].Kind)
	}
}

func TestClassifyURLDeferred(t *testing.T) {
	ar, err := arena.New("test")
	if err != nil {
		t.Fatal(err)
	}
	defer ar.Close()

	got, err := Classify([]Item{{PathOrURL: "https://example.com/x.png"}}, ar)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Kind != KindURL {
		t.Errorf("expected URL, got %v", got[0].Kind)
	}
}

func TestClassifyTextFallback(t *testing.T) {
	path := writeTemp(t, "notes.xyz", []byte("hello world\n"))

	ar, err := arena.New("test")
	if err != nil {
		t.Fatal(err)
	}
	defer ar.Close()

	got, err := Classify([]Item{{PathOrURL: path}}, ar)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Kind != KindText {
		t.Errorf("expected Text, got %v", got[0].Kind)
	}
}

func TestClassifyDocumentByExtension(t *testing.T) {
	path := writeTemp(t, "report.pdf", []byte("not really a pdf but has the extension"))

	ar, err := arena.New("test")
	if err != nil {
		t.Fatal(err)
	}
	defer ar.Close()

	got, err := Classify([]Item{{PathOrURL: path}}, ar)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Kind != KindDocument {
		t.Errorf("expected Document, got %v", got[0].Kind)
	}
}

func TestUnifiedKindAllText(t *testing.T) {
	items := []Classified{{Kind: KindText}, {Kind: KindText}}
	if got := UnifiedKind(items); got != KindText {
		t.Errorf("expected Text, got %v", got)
	}
}

func TestUnifiedKindMixedFallsBackToText(t *testing.T) {
	items := []Classified{{Kind: KindImage}, {Kind: KindDocument}}
	if got := UnifiedKind(items); got != KindText {
		t.Errorf("expected Text fallback, got %v", got)
	}
}

func TestUnifiedKindAllImage(t *testing.T) {
	items := []Classified{{Kind: KindImage}, {Kind: KindImage}}
	if got := UnifiedKind(items); got != KindImage {
		t.Errorf("expected Image, got %v", got)
	}
}
