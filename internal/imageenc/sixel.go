package imageenc

import (
	"bytes"
	goimage "image"
	"image/color"

	"github.com/BourgeoisBear/rasterm"
	"golang.org/x/image/draw"

	"github.com/skardyy/mcat/internal/errs"
)

// EncodeSixel quantises img to an indexed palette and emits a Sixel DCS
// sequence (§4.5.3). Animation is unsupported; callers pass only the
// first frame of an animated source.
func EncodeSixel(img goimage.Image) ([]byte, error) {
	paletted := quantize(img)

	var buf bytes.Buffer
	if err := rasterm.SixelWriteImage(&buf, paletted); err != nil {
		return nil, errs.Wrap(errs.KindEncodingFailure, "encoding sixel image", err)
	}
	return buf.Bytes(), nil
}

// quantize reduces img to a fixed 216-color cube plus 40 grays (a
// websafe-style palette cheap enough to build without a full
// median-cut quantizer) and dithers onto it with Floyd-Steinberg.
func quantize(img goimage.Image) *goimage.Paletted {
	bounds := img.Bounds()

	palette := make(color.Palette, 0, 256)
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				palette = append(palette, color.RGBA{
					R: uint8(r * 51), G: uint8(g * 51), B: uint8(b * 51), A: 255,
				})
			}
		}
	}
	for i := 0; i < 40; i++ {
		gray := uint8(i * 255 / 39)
		palette = append(palette, color.RGBA{R: gray, G: gray, B: gray, A: 255})
	}

	paletted := goimage.NewPaletted(bounds, palette)
	draw.FloydSteinberg.Draw(paletted, bounds, img, bounds.Min)
	return paletted
}
