package imageenc

import (
	"bytes"
	"encoding/base64"
	goimage "image"
	"image/color/palette"
	"image/gif"
	"strconv"

	"github.com/BourgeoisBear/rasterm"
	"github.com/skardyy/mcat/internal/errs"
)

// EncodeITerm emits the iTerm2 inline-file OSC (§4.5.2): no chunking,
// PNG/GIF/JPEG all accepted as-is.
func EncodeITerm(img goimage.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := rasterm.ItermWriteImage(&buf, img); err != nil {
		return nil, errs.Wrap(errs.KindEncodingFailure, "encoding iterm image", err)
	}
	return buf.Bytes(), nil
}

// EncodeITermAnimated transmits a multi-frame source as an animated GIF
// through the same inline-file OSC (§4.5.2): iTerm has no frame-control
// protocol the way Kitty does, so the whole animation is GIF-encoded up
// front and handed over as a single inline file, which iTerm plays back
// itself. delaysMs is parallel to frames and carried as each GIF frame's
// delay, in the stdlib's 1/100s units.
func EncodeITermAnimated(frames []goimage.Image, delaysMs []int) ([]byte, error) {
	if len(frames) == 0 {
		return nil, errs.New(errs.KindInvalidInput, "no frames to animate")
	}

	g := &gif.GIF{}
	for i, frame := range frames {
		paletted, ok := frame.(*goimage.Paletted)
		if !ok {
			paletted = toPaletted(frame)
		}
		delayMs := 0
		if i < len(delaysMs) {
			delayMs = delaysMs[i]
		}
		g.Image = append(g.Image, paletted)
		g.Delay = append(g.Delay, delayMs/10)
	}

	var gifBuf bytes.Buffer
	if err := gif.EncodeAll(&gifBuf, g); err != nil {
		return nil, errs.Wrap(errs.KindEncodingFailure, "encoding iterm animation", err)
	}

	return itermInlineFile(gifBuf.Bytes()), nil
}

// itermInlineFile wraps raw file bytes in iTerm2's inline-image OSC
// 1337 sequence, matching the framing rasterm.ItermWriteImage uses for
// still images so animated and still payloads share one terminal-side
// code path.
func itermInlineFile(data []byte) []byte {
	b64 := base64.StdEncoding.EncodeToString(data)
	var buf bytes.Buffer
	buf.WriteString("\x1b]1337;File=inline=1;size=")
	buf.WriteString(strconv.Itoa(len(data)))
	buf.WriteString(":")
	buf.WriteString(b64)
	buf.WriteString("\a")
	return buf.Bytes()
}

// toPaletted quantizes an arbitrary image down to the 256-color palette
// a GIF frame requires, using the stdlib's Plan 9 palette.
func toPaletted(img goimage.Image) *goimage.Paletted {
	bounds := img.Bounds()
	dst := goimage.NewPaletted(bounds, palette.Plan9)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.Set(x, y, img.At(x, y))
		}
	}
	return dst
}
