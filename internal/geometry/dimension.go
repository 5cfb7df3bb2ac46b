package geometry

import (
	"math"
	"strconv"
	"strings"

	"github.com/skardyy/mcat/internal/errs"
)

// Axis selects which screen axis a Dimension resolves against.
type Axis int

const (
	AxisWidth Axis = iota
	AxisHeight
)

// Dimension is a user-facing size expression: a bare integer, "Npx",
// "Nc", or "N%". It resolves against a ScreenAxis to a pixel or cell
// value.
type Dimension struct {
	raw string
}

// Parse validates the textual form without resolving it. It accepts bare
// integers, "Npx", "Nc", and "N%" (float allowed for percent).
func Parse(s string) (Dimension, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Dimension{}, errs.New(errs.KindInvalidInput, "empty dimension")
	}
	if _, err := strconv.Atoi(s); err == nil {
		return Dimension{raw: s}, nil
	}
	switch {
	case strings.HasSuffix(s, "px"):
		if _, err := strconv.Atoi(strings.TrimSuffix(s, "px")); err != nil {
			return Dimension{}, errs.Wrap(errs.KindInvalidInput, "invalid px dimension: "+s, err)
		}
	case strings.HasSuffix(s, "c"):
		if _, err := strconv.Atoi(strings.TrimSuffix(s, "c")); err != nil {
			return Dimension{}, errs.Wrap(errs.KindInvalidInput, "invalid cell dimension: "+s, err)
		}
	case strings.HasSuffix(s, "%"):
		if _, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64); err != nil {
			return Dimension{}, errs.Wrap(errs.KindInvalidInput, "invalid percent dimension: "+s, err)
		}
	default:
		return Dimension{}, errs.New(errs.KindInvalidInput, "invalid dimension format: "+s)
	}
	return Dimension{raw: s}, nil
}

// String returns the original textual form.
func (d Dimension) String() string { return d.raw }

// ToPx resolves the dimension to a pixel value against the given axis of
// win. Bare integers are interpreted as pixels when bareMeansPixels is
// true (image axes) and as cells otherwise (terminal axes) — callers
// that always mean "pixels" for a bare integer should pass true.
func (d Dimension) ToPx(win Wininfo, axis Axis, bareMeansPixels bool) (int, error) {
	spx, sc := axisValues(win, axis)

	if n, err := strconv.Atoi(d.raw); err == nil {
		if bareMeansPixels {
			return n, nil
		}
		return ceilMulDiv(n, spx, sc), nil
	}
	switch {
	case strings.HasSuffix(d.raw, "px"):
		n, _ := strconv.Atoi(strings.TrimSuffix(d.raw, "px"))
		return n, nil
	case strings.HasSuffix(d.raw, "c"):
		n, _ := strconv.Atoi(strings.TrimSuffix(d.raw, "c"))
		return ceilMulDiv(n, spx, sc), nil
	case strings.HasSuffix(d.raw, "%"):
		pct, _ := strconv.ParseFloat(strings.TrimSuffix(d.raw, "%"), 64)
		return int(math.Ceil(pct / 100 * float64(spx))), nil
	}
	return 0, errs.New(errs.KindInvalidInput, "invalid dimension format: "+d.raw)
}

// ToCells resolves the dimension to a cell value against the given axis.
func (d Dimension) ToCells(win Wininfo, axis Axis, bareMeansPixels bool) (int, error) {
	spx, sc := axisValues(win, axis)

	if n, err := strconv.Atoi(d.raw); err == nil {
		if bareMeansPixels {
			return PxToCells(n, spx, sc), nil
		}
		return n, nil
	}
	switch {
	case strings.HasSuffix(d.raw, "px"):
		n, _ := strconv.Atoi(strings.TrimSuffix(d.raw, "px"))
		return PxToCells(n, spx, sc), nil
	case strings.HasSuffix(d.raw, "c"):
		n, _ := strconv.Atoi(strings.TrimSuffix(d.raw, "c"))
		return n, nil
	case strings.HasSuffix(d.raw, "%"):
		pct, _ := strconv.ParseFloat(strings.TrimSuffix(d.raw, "%"), 64)
		return int(math.Ceil(pct / 100 * float64(sc))), nil
	}
	return 0, errs.New(errs.KindInvalidInput, "invalid dimension format: "+d.raw)
}

func axisValues(win Wininfo, axis Axis) (spx, sc int) {
	if axis == AxisWidth {
		return win.SpxWidth, win.ScWidth
	}
	return win.SpxHeight, win.ScHeight
}

// PxToCells converts a pixel measure to cells: ceil(px / (spx/sc)).
func PxToCells(px, spx, sc int) int {
	if spx == 0 || sc == 0 {
		return 0
	}
	return int(math.Ceil(float64(px) / (float64(spx) / float64(sc))))
}

// CellsToPx converts a cell measure to pixels: ceil(cells * (spx/sc)).
func CellsToPx(cells, spx, sc int) int {
	return ceilMulDiv(cells, spx, sc)
}

func ceilMulDiv(n, spx, sc int) int {
	if sc == 0 {
		return 0
	}
	return int(math.Ceil(float64(n) * float64(spx) / float64(sc)))
}
