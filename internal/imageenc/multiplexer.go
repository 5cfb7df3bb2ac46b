package imageenc

import (
	"bytes"
	"fmt"
	goimage "image"
	"math/rand"

	"github.com/skardyy/mcat/internal/errs"
	"github.com/skardyy/mcat/internal/geometry"
)

// Request is the public input to Encode (§4.5): a still image, or an
// animated source as frames+delays, sized to target cells, optionally
// centered or placed at an absolute cursor position.
type Request struct {
	Still       goimage.Image
	Frames      []goimage.Image // non-nil selects the animated path
	DelaysMs    []int
	TargetCells int // width in cells, for centering and ASCII/placeholder sizing
	TargetRows  int
	Center      bool
	PrintAtCol  int
	PrintAtRow  int
	HasPrintAt  bool
}

// Encode renders req using kind, wrapping the result for tmux
// passthrough when win.IsTmux, and prefixing any requested cursor
// movement. The returned bytes are ready to write to the terminal.
func Encode(kind geometry.EncoderKind, req Request, win geometry.Wininfo) ([]byte, error) {
	var payload []byte
	var err error

	switch kind {
	case geometry.EncoderKitty:
		payload, err = encodeKittyRequest(req)
	case geometry.EncoderITerm:
		if len(req.Frames) > 0 {
			payload, err = EncodeITermAnimated(req.Frames, req.DelaysMs)
		} else {
			payload, err = EncodeITerm(firstFrame(req))
		}
	case geometry.EncoderSixel:
		payload, err = EncodeSixel(firstFrame(req))
	default:
		payload = EncodeASCII(firstFrame(req), req.TargetCells, req.TargetRows)
	}
	if err != nil {
		return nil, err
	}

	if win.IsTmux {
		payload = WrapTmux(payload)
	}

	var out bytes.Buffer
	writeCursorPrefix(&out, req, win)
	out.Write(payload)
	return out.Bytes(), nil
}

func encodeKittyRequest(req Request) ([]byte, error) {
	id := uint32(rand.Int31n(1<<24-1)) + 1
	if len(req.Frames) > 0 {
		return EncodeKittyAnimated(req.Frames, req.DelaysMs, id)
	}
	if req.Still == nil {
		return nil, errs.New(errs.KindInvalidInput, "no image to encode")
	}
	return EncodeKittyStill(req.Still, id)
}

func firstFrame(req Request) goimage.Image {
	if req.Still != nil {
		return req.Still
	}
	if len(req.Frames) > 0 {
		return req.Frames[0]
	}
	return nil
}

// writeCursorPrefix emits the absolute/relative cursor movement a
// caller requested before the encoded payload, per §4.5's public
// operation contract: encode(image, out, offset_cells?, print_at?).
func writeCursorPrefix(out *bytes.Buffer, req Request, win geometry.Wininfo) {
	if req.HasPrintAt {
		fmt.Fprintf(out, "\x1b[%d;%dH", req.PrintAtRow, req.PrintAtCol)
		return
	}
	if req.Center {
		offset := geometry.CenterOffset(win, req.TargetCells, true)
		if offset > 0 {
			fmt.Fprintf(out, "\x1b[%dC", offset)
		}
	}
}
