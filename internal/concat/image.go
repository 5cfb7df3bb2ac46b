package concat

import (
	"bytes"
	goimage "image"
	"image/draw"
	_ "image/gif"
	"image/png"
	"os"

	_ "golang.org/x/image/webp"

	"github.com/skardyy/mcat/internal/errs"
)

// Images tiles N decoded images into one, per spec §4.2: vertically by
// default, horizontally when horizontal is true. Images are stacked
// along the primary axis at their nominal pixel size; any image whose
// secondary-axis size is smaller than the tile's is centered on that
// axis. The result is encoded as PNG.
func Images(paths []string, horizontal bool) ([]byte, error) {
	imgs := make([]goimage.Image, 0, len(paths))
	for _, p := range paths {
		img, err := decodeFile(p)
		if err != nil {
			return nil, err
		}
		imgs = append(imgs, img)
	}
	if len(imgs) == 0 {
		return nil, errs.New(errs.KindInvalidInput, "no images to concatenate")
	}

	tiled := tile(imgs, horizontal)

	var buf bytes.Buffer
	if err := png.Encode(&buf, tiled); err != nil {
		return nil, errs.Wrap(errs.KindEncodingFailure, "encoding tiled image", err)
	}
	return buf.Bytes(), nil
}

func decodeFile(path string) (goimage.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.KindIOFailure, "opening "+path, err)
	}
	defer f.Close()

	img, _, err := goimage.Decode(f)
	if err != nil {
		return nil, errs.Wrap(errs.KindParseFailure, "decoding image "+path, err)
	}
	return img, nil
}

func tile(imgs []goimage.Image, horizontal bool) *goimage.RGBA {
	var totalW, totalH, maxSecondary int
	for _, img := range imgs {
		b := img.Bounds()
		if horizontal {
			totalW += b.Dx()
			if b.Dy() > maxSecondary {
				maxSecondary = b.Dy()
			}
		} else {
			totalH += b.Dy()
			if b.Dx() > maxSecondary {
				maxSecondary = b.Dx()
			}
		}
	}
	if horizontal {
		totalH = maxSecondary
	} else {
		totalW = maxSecondary
	}

	dst := goimage.NewRGBA(goimage.Rect(0, 0, totalW, totalH))

	offset := 0
	for _, img := range imgs {
		b := img.Bounds()
		var dstRect goimage.Rectangle
		if horizontal {
			secondaryOffset := (maxSecondary - b.Dy()) / 2
			dstRect = goimage.Rect(offset, secondaryOffset, offset+b.Dx(), secondaryOffset+b.Dy())
			offset += b.Dx()
		} else {
			secondaryOffset := (maxSecondary - b.Dx()) / 2
			dstRect = goimage.Rect(secondaryOffset, offset, secondaryOffset+b.Dx(), offset+b.Dy())
			offset += b.Dy()
		}
		draw.Draw(dst, dstRect, img, b.Min, draw.Src)
	}
	return dst
}
