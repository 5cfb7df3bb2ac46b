package markdown

import (
	"bytes"
	"fmt"
	"image"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/yuin/goldmark/ast"

	"github.com/skardyy/mcat/internal/errs"
	"github.com/skardyy/mcat/internal/geometry"
	"github.com/skardyy/mcat/internal/imageenc"
	"github.com/skardyy/mcat/internal/mediaio"
)

// RenderMode controls how much of an image the preprocessor actually
// fetches and encodes (§4.4 step 2).
type RenderMode int

const (
	RenderAll RenderMode = iota
	RenderSmall
	RenderNone
)

// renderModeFor picks the render mode for an encoder kind, honoring an
// explicit user override when set.
func renderModeFor(kind geometry.EncoderKind, override *RenderMode) RenderMode {
	if override != nil {
		return *override
	}
	switch kind {
	case geometry.EncoderKitty:
		return RenderAll
	case geometry.EncoderITerm, geometry.EncoderSixel:
		return RenderSmall
	default:
		return RenderNone
	}
}

// wxhSuffix matches a trailing "#WxH" size request. It is tried before
// any fragment interpretation of the destination, resolving the
// suffix-vs-fragment ambiguity in favor of the size request.
var wxhSuffix = regexp.MustCompile(`#(\d+)x(\d+)$`)

// splitImageDest separates an image destination's optional trailing
// "#WxH" suffix from its URL.
func splitImageDest(dest string) (rawURL string, w, h int, hasSize bool) {
	if m := wxhSuffix.FindStringSubmatch(dest); m != nil {
		w, _ = strconv.Atoi(m[1])
		h, _ = strconv.Atoi(m[2])
		return dest[:len(dest)-len(m[0])], w, h, true
	}
	return dest, 0, 0, false
}

// imageRef is one distinct image destination collected from the AST.
type imageRef struct {
	key   string
	url   string
	w, h  int
	hasSz bool
}

// collectImageRefs walks doc for every image node in document order,
// deduplicating by destination string (§4.4 step 1).
func collectImageRefs(doc ast.Node) []imageRef {
	var refs []imageRef
	seen := map[string]bool{}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		img, ok := n.(*ast.Image)
		if !ok {
			return ast.WalkContinue, nil
		}
		dest := string(img.Destination)
		if seen[dest] {
			return ast.WalkContinue, nil
		}
		seen[dest] = true
		rawURL, w, h, hasSize := splitImageDest(dest)
		refs = append(refs, imageRef{key: dest, url: rawURL, w: w, h: h, hasSz: hasSize})
		return ast.WalkContinue, nil
	})
	return refs
}

// imageMeta is one image's preprocessing result: the placeholder text
// the walk emits in place of the node, and the encoded payload the
// post-walk substitution pass splices in once.
type imageMeta struct {
	kind        geometry.EncoderKind
	placeholder string
	firstRow    string
	payload     string
	err         error
}

// imageCollector holds every image's preprocessing result, keyed by
// destination. It is built once before the ANSI walk begins and read
// only afterward, so no locking is needed past construction.
type imageCollector struct {
	byKey map[string]*imageMeta
}

func (ic *imageCollector) lookup(dest string) *imageMeta {
	if ic == nil {
		return nil
	}
	return ic.byKey[dest]
}

// newImageCollector runs the bounded parallel fanout over refs (§4.4
// step 3 / §5): each task owns its own image buffer end to end and
// writes its result into the shared map only once, under mu, after it
// has no further need of shared state.
func newImageCollector(refs []imageRef, mode RenderMode, kind geometry.EncoderKind, win geometry.Wininfo) *imageCollector {
	ic := &imageCollector{byKey: make(map[string]*imageMeta, len(refs))}
	if mode == RenderNone || len(refs) == 0 {
		return ic
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for i, ref := range refs {
		wg.Add(1)
		go func(i int, ref imageRef) {
			defer wg.Done()
			meta := fetchAndEncode(ref, mode, kind, win, uint32(i+1))
			mu.Lock()
			ic.byKey[ref.key] = meta
			mu.Unlock()
		}(i, ref)
	}
	wg.Wait()
	return ic
}

// fetchAndEncode fetches, decodes, size-clamps, and encodes one image.
// It is the independent unit of the bounded parallel fanout: no shared
// mutable state crosses into or out of it besides its return value.
func fetchAndEncode(ref imageRef, mode RenderMode, kind geometry.EncoderKind, win geometry.Wininfo, id uint32) *imageMeta {
	raw, err := mediaio.FetchMedia(ref.url)
	if err != nil {
		return &imageMeta{err: err}
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return &imageMeta{err: errs.Wrap(errs.KindEncodingFailure, "decoding image "+ref.url, err)}
	}

	widthCells, heightCells := clampSize(img, ref, mode, win)

	payload, err := imageenc.Encode(kind, imageenc.Request{
		Still:       img,
		TargetCells: widthCells,
		TargetRows:  heightCells,
	}, win)
	if err != nil {
		return &imageMeta{err: err}
	}

	placeholder := buildPlaceholder(kind, id, widthCells, heightCells)
	firstRow := placeholder
	if idx := strings.IndexByte(placeholder, '\n'); idx >= 0 {
		firstRow = placeholder[:idx]
	}
	return &imageMeta{kind: kind, placeholder: placeholder, firstRow: firstRow, payload: string(payload)}
}

// clampSize applies §4.4's size rules: request 80% width when the
// natural width exceeds 80% of the screen's pixel width, clamp height
// to a single cell minus one pixel in Small mode, otherwise request 40%
// height when the natural height exceeds 40% of the screen's pixel
// height. An explicit "#WxH" suffix stands in for the natural size.
func clampSize(img image.Image, ref imageRef, mode RenderMode, win geometry.Wininfo) (widthCells, heightCells int) {
	bounds := img.Bounds()
	naturalW, naturalH := bounds.Dx(), bounds.Dy()
	if ref.hasSz {
		naturalW, naturalH = ref.w, ref.h
	}

	widthPx := naturalW
	if float64(naturalW) > 0.8*float64(win.SpxWidth) {
		widthPx = int(0.8 * float64(win.SpxWidth))
	}

	var heightPx int
	switch {
	case mode == RenderSmall:
		cellPx := 0
		if win.ScHeight > 0 {
			cellPx = win.SpxHeight / win.ScHeight
		}
		heightPx = cellPx - 1
		if heightPx < 1 {
			heightPx = 1
		}
	case float64(naturalH) > 0.4*float64(win.SpxHeight):
		heightPx = int(0.4 * float64(win.SpxHeight))
	default:
		heightPx = naturalH
	}

	widthCells = geometry.PxToCells(widthPx, win.SpxWidth, win.ScWidth)
	heightCells = geometry.PxToCells(heightPx, win.SpxHeight, win.ScHeight)
	if widthCells < 1 {
		widthCells = 1
	}
	if heightCells < 1 {
		heightCells = 1
	}
	return widthCells, heightCells
}

// buildPlaceholder computes the cell-footprint stand-in for an image,
// per §4.4's placeholder shape: the Kitty Unicode grid for Kitty, or a
// single row of full-block characters colored by id for every other
// encoder.
func buildPlaceholder(kind geometry.EncoderKind, id uint32, widthCells, heightCells int) string {
	if kind == geometry.EncoderKitty {
		return imageenc.KittyPlaceholder(id, widthCells, heightCells)
	}
	fg := 16 + int(id)%216
	bg := 16 + int(id/216)%216
	block := strings.Repeat("█", widthCells)
	return fmt.Sprintf("\x1b[38;5;%d;48;5;%dm%s\x1b[0m", fg, bg, block)
}

// substituteImages performs §4.4 step 4's post-walk pass: for each
// recorded image, the first line-level occurrence of its placeholder's
// first row consumes that image's block exactly once, per spec.md §5's
// ordering rule and testable property #4 (zero placeholder headers, K
// image blocks, after substitution).
//
// Kitty is the one exception: its placeholder is the Unicode grid the
// terminal itself resolves against the out-of-band-transmitted image
// once the payload escape sequence has been emitted, so the grid glyphs
// are part of the final rendering and are kept, with the payload
// (the transmission escape) prefixed ahead of them. Every other encoder's
// placeholder is a pure sizing stand-in with no meaning to the terminal,
// so its first row is replaced outright by the already-final-form
// payload — leaving it in place would print fake block glyphs next to
// the real image.
func substituteImages(output string, ic *imageCollector) string {
	if ic == nil || len(ic.byKey) == 0 {
		return output
	}
	lines := strings.Split(output, "\n")
	consumed := make(map[string]bool, len(ic.byKey))
	for i, line := range lines {
		for key, meta := range ic.byKey {
			if consumed[key] || meta.err != nil || meta.firstRow == "" {
				continue
			}
			if strings.Contains(line, meta.firstRow) {
				if meta.kind == geometry.EncoderKitty {
					lines[i] = strings.Replace(line, meta.firstRow, meta.payload+meta.firstRow, 1)
				} else {
					lines[i] = strings.Replace(line, meta.firstRow, meta.payload, 1)
				}
				consumed[key] = true
			}
		}
	}
	return strings.Join(lines, "\n")
}
