package imageenc

import (
	"bytes"
	goimage "image"
	"image/color"
	"strings"
	"testing"

	"github.com/skardyy/mcat/internal/geometry"
)

func TestTmuxWrapUnwrapInvolution(t *testing.T) {
	payloads := [][]byte{
		[]byte("\x1b_Ga=T,f=100;AAAA\x1b\\"),
		[]byte("plain bytes with no escapes"),
		[]byte("\x1b[38;2;1;2;3m\x1b]1337;File=inline=1;size=4:AAAA\x07"),
	}
	for _, p := range payloads {
		wrapped := WrapTmux(p)
		if !bytes.HasPrefix(wrapped, []byte(tmuxPrefix)) {
			t.Fatalf("wrapped payload missing prefix: %q", wrapped)
		}
		if !bytes.HasSuffix(wrapped, []byte(tmuxTerminator)) {
			t.Fatalf("wrapped payload missing terminator: %q", wrapped)
		}
		if got := UnwrapTmux(wrapped); !bytes.Equal(got, p) {
			t.Fatalf("unwrap(wrap(p)) != p: got %q want %q", got, p)
		}

		// Every ESC inside the wrapped region is doubled, so a terminator
		// is bare only when a backslash follows an odd-length run of ESCs.
		inner := string(wrapped[len(tmuxPrefix) : len(wrapped)-len(tmuxTerminator)])
		escRun := 0
		for i := 0; i < len(inner); i++ {
			if inner[i] == '\x1b' {
				escRun++
				continue
			}
			if inner[i] == '\\' && escRun%2 == 1 {
				t.Fatalf("wrapped region embeds bare terminator sequence: %q", inner)
			}
			escRun = 0
		}
	}
}

func TestKittyStillChunksAtBoundary(t *testing.T) {
	img := goimage.NewRGBA(goimage.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y * 4), B: 128, A: 255})
		}
	}

	out, err := EncodeKittyStill(img, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(out, []byte("\x1b_Ga=T")) {
		t.Fatalf("expected transmit-and-display control options, got %q", out[:40])
	}
	if !bytes.HasSuffix(out, []byte("\x1b\\")) {
		t.Fatalf("expected APC terminator at end")
	}
	for _, frame := range bytes.Split(bytes.TrimSuffix(out, []byte("\x1b\\")), []byte("\x1b\\")) {
		_, data, ok := bytes.Cut(frame, []byte(";"))
		if !ok || len(data) > kittyChunkSize {
			t.Fatalf("expected every APC frame to carry at most %d base64 characters, got %q", kittyChunkSize, frame[:min(40, len(frame))])
		}
	}
}

func TestEncodeASCIIProducesGrid(t *testing.T) {
	img := goimage.NewRGBA(goimage.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, color.White)
		}
	}
	out := EncodeASCII(img, 4, 2)
	lines := strings.Split(string(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
}

func TestKittyAnimatedFallsBackToStillWithoutPositiveDelay(t *testing.T) {
	frames := []goimage.Image{
		goimage.NewRGBA(goimage.Rect(0, 0, 4, 4)),
		goimage.NewRGBA(goimage.Rect(0, 0, 4, 4)),
	}
	out, err := EncodeKittyAnimated(frames, []int{0, 0}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(out, []byte("a=a,s=2")) {
		t.Fatalf("expected still fallback, got animation start sequence")
	}
}

func TestEncodeITermAnimatedProducesInlineFileOSC(t *testing.T) {
	frames := []goimage.Image{
		goimage.NewRGBA(goimage.Rect(0, 0, 4, 4)),
		goimage.NewRGBA(goimage.Rect(0, 0, 4, 4)),
	}
	out, err := EncodeITermAnimated(frames, []int{100, 150})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out, []byte("\x1b]1337;File=inline=1;size=")) {
		t.Fatalf("expected iterm inline-file OSC prefix, got %q", out[:40])
	}
	if !bytes.HasSuffix(out, []byte("\a")) {
		t.Fatalf("expected BEL terminator at end")
	}
}

func TestEncodeDispatchesVideoToAnimatedITermForMultiFrameRequests(t *testing.T) {
	req := Request{
		Frames:   []goimage.Image{goimage.NewRGBA(goimage.Rect(0, 0, 4, 4)), goimage.NewRGBA(goimage.Rect(0, 0, 4, 4))},
		DelaysMs: []int{100, 100},
	}
	out, err := Encode(geometry.EncoderITerm, req, geometry.Wininfo{})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(out, []byte("\x1b]1337;File=inline=1;size=")) {
		t.Fatalf("expected animated iterm frames dispatched through the inline-file OSC, got %q", out[:min(40, len(out))])
	}
}
