package imageenc

import (
	"fmt"
	goimage "image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

// densityRamp maps luminance buckets to glyphs, darkest first, for the
// ASCII fallback encoder (§4.5.4).
const densityRamp = " .:-=+*#%@"

// EncodeASCII downsamples img to a cellsWide x cellsHigh grid and maps
// each cell's average luminance and color to an ANSI true-color
// character. Animation is unsupported: callers pass a single frame.
func EncodeASCII(img goimage.Image, cellsWide, cellsHigh int) []byte {
	if cellsWide < 1 {
		cellsWide = 1
	}
	if cellsHigh < 1 {
		cellsHigh = 1
	}

	small := goimage.NewRGBA(goimage.Rect(0, 0, cellsWide, cellsHigh))
	draw.CatmullRom.Scale(small, small.Bounds(), img, img.Bounds(), draw.Over, nil)

	var b strings.Builder
	for y := 0; y < cellsHigh; y++ {
		for x := 0; x < cellsWide; x++ {
			c := small.RGBAAt(x, y)
			lum := luminance(c)
			idx := int(lum * float64(len(densityRamp)-1))
			if idx < 0 {
				idx = 0
			}
			if idx >= len(densityRamp) {
				idx = len(densityRamp) - 1
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)))
			b.WriteString(style.Render(string(densityRamp[idx])))
		}
		if y != cellsHigh-1 {
			b.WriteByte('\n')
		}
	}
	return []byte(b.String())
}

func luminance(c color.RGBA) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255.0
}
