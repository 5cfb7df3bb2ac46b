package imageenc

import (
	"bytes"
	"encoding/base64"
	goimage "image"
	"image/png"
	"strconv"
	"strings"

	"github.com/skardyy/mcat/internal/errs"
)

const kittyChunkSize = 4096

// rowColDiacritics are the Unicode combining characters Kitty's
// placeholder protocol uses to encode a cell's row/column inside a
// single placeholder glyph.
// https://sw.kovidgoyal.net/kitty/_downloads/f0a0de9ec8d9ff4456206db8e0814937/rowcolumn-diacritics.txt
var rowColDiacritics = []rune{
	0x0305, 0x030D, 0x030E, 0x0310, 0x0312, 0x033D, 0x033E, 0x033F,
	0x0346, 0x034A, 0x034B, 0x034C, 0x0350, 0x0351, 0x0352, 0x0357,
	0x035B, 0x0363, 0x0364, 0x0365, 0x0366, 0x0367, 0x0368, 0x0369,
	0x036A, 0x036B, 0x036C, 0x036D, 0x036E, 0x036F, 0x0483, 0x0484,
	0x0485, 0x0486, 0x0487, 0x0592, 0x0593, 0x0594, 0x0595, 0x0597,
	0x0598, 0x0599, 0x059C, 0x059D, 0x059E, 0x059F, 0x05A0, 0x05A1,
	0x05A8, 0x05A9, 0x05AB, 0x05AC, 0x05AF, 0x05C4, 0x0610, 0x0611,
	0x0612, 0x0613, 0x0614, 0x0615, 0x0616, 0x0617, 0x0657, 0x0658,
	0x0659, 0x065A, 0x065B, 0x065D, 0x065E, 0x06D6, 0x06D7, 0x06D8,
	0x06D9, 0x06DA, 0x06DB, 0x06DC, 0x06DF, 0x06E0, 0x06E1, 0x06E2,
	0x06E4, 0x06E7, 0x06E8, 0x06EB, 0x06EC, 0x0730, 0x0732, 0x0733,
	0x0735, 0x0736, 0x073A, 0x073D, 0x073F, 0x0740, 0x0741, 0x0743,
	0x0745, 0x0747, 0x0749, 0x074A, 0x07EB, 0x07EC, 0x07ED, 0x07EE,
	0x07EF, 0x07F0, 0x07F1, 0x07F3, 0x0816, 0x0817, 0x0818, 0x0819,
	0x081B, 0x081C, 0x081D, 0x081E, 0x081F, 0x0820, 0x0821, 0x0822,
	0x0823, 0x0825, 0x0826, 0x0827, 0x0829, 0x082A, 0x082B, 0x082C,
	0x082D, 0x0951, 0x0953, 0x0954, 0x0F82, 0x0F83, 0x0F86, 0x0F87,
	0x135D, 0x135E, 0x135F, 0x17DD, 0x193A, 0x1A17, 0x1A75, 0x1A76,
	0x1A77, 0x1A78, 0x1A79, 0x1A7A, 0x1A7B, 0x1A7C, 0x1B6B, 0x1B6D,
	0x1B6E, 0x1B6F, 0x1B70, 0x1B71, 0x1B72, 0x1B73, 0x1CD0, 0x1CD1,
	0x1CD2, 0x1CDA, 0x1CDB, 0x1CE0, 0x1DC0, 0x1DC1, 0x1DC3, 0x1DC4,
	0x1DC5, 0x1DC6, 0x1DC7, 0x1DC8, 0x1DC9, 0x1DCB, 0x1DCC, 0x1DD1,
	0x1DD2, 0x1DD3, 0x1DD4, 0x1DD5, 0x1DD6, 0x1DD7, 0x1DD8, 0x1DD9,
	0x1DDA, 0x1DDB, 0x1DDC, 0x1DDD, 0x1DDE, 0x1DDF, 0x1DE0, 0x1DE1,
	0x1DE2, 0x1DE3, 0x1DE4, 0x1DE5, 0x1DE6, 0x1DFE, 0x20D0, 0x20D1,
	0x20D4, 0x20D5, 0x20D6, 0x20D7, 0x20DB, 0x20DC, 0x20E1, 0x20E7,
	0x20E9, 0x20F0, 0x2CEF, 0x2CF0, 0x2CF1, 0x2DE0, 0x2DE1, 0x2DE2,
	0x2DE3, 0x2DE4, 0x2DE5, 0x2DE6, 0x2DE7, 0x2DE8, 0x2DE9, 0x2DEA,
	0x2DEB, 0x2DEC, 0x2DED, 0x2DEE, 0x2DEF, 0x2DF0, 0x2DF1, 0x2DF2,
	0x2DF3, 0x2DF4, 0x2DF5, 0x2DF6, 0x2DF7, 0x2DF8, 0x2DF9, 0x2DFA,
	0x2DFB, 0x2DFC, 0x2DFD, 0x2DFE, 0x2DFF, 0xA66F, 0xA67C, 0xA67D,
	0xA6F0, 0xA6F1, 0xA8E0, 0xA8E1, 0xA8E2, 0xA8E3, 0xA8E4, 0xA8E5,
}

// KittyPlaceholder is the Unicode grid that stands in for a Kitty image
// in-band: U+10EEEE plus a row and a column diacritic per cell, colored
// with the image's id so the terminal can match placeholder to upload.
func KittyPlaceholder(id uint32, cols, rows int) string {
	var b strings.Builder
	b.WriteString(idColorFg(id))
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			b.WriteRune(0x10EEEE)
			b.WriteRune(rowColDiacritics[row%len(rowColDiacritics)])
			b.WriteRune(rowColDiacritics[col%len(rowColDiacritics)])
		}
		if row < rows-1 {
			b.WriteByte('\n')
		}
	}
	b.WriteString("\x1b[39m")
	return b.String()
}

func idColorFg(id uint32) string {
	r := (id >> 16) & 0xFF
	g := (id >> 8) & 0xFF
	bl := id & 0xFF
	return "\x1b[38;2;" + strconv.Itoa(int(r)) + ";" + strconv.Itoa(int(g)) + ";" + strconv.Itoa(int(bl)) + "m"
}

// EncodeKittyStill transmits a single still image (§4.5.1): PNG bytes,
// base64-encoded and chunked at 4096 characters per APC frame. The
// first frame carries the control options, intermediate frames carry
// m=1, the final frame carries m=0.
func EncodeKittyStill(img goimage.Image, id uint32) ([]byte, error) {
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil, errs.Wrap(errs.KindEncodingFailure, "encoding kitty still frame", err)
	}
	b64 := base64.StdEncoding.EncodeToString(pngBuf.Bytes())

	var out bytes.Buffer
	chunkBase64(&out, b64, "a=T,f=100,i="+strconv.FormatUint(uint64(id), 10))
	return out.Bytes(), nil
}

// EncodeKittyAnimated transmits a GIF source as a Kitty animation
// (§4.5.1): the first frame as a root image with quiet transmit,
// then an animation-start control, one a=f frame per remaining frame,
// and a final animation-start(s=3) control. delaysMs is parallel to
// frames; frames with no positive delay anywhere fall back to a still
// of the first frame (§9 open question).
func EncodeKittyAnimated(frames []goimage.Image, delaysMs []int, id uint32) ([]byte, error) {
	if len(frames) == 0 {
		return nil, errs.New(errs.KindInvalidInput, "no frames to animate")
	}
	if !hasPositiveDelay(delaysMs) {
		return EncodeKittyStill(frames[0], id)
	}

	var out bytes.Buffer

	firstPNG, err := encodePNG(frames[0])
	if err != nil {
		return nil, err
	}
	b64 := base64.StdEncoding.EncodeToString(firstPNG)
	chunkBase64(&out, b64, "a=T,f=100,I="+strconv.FormatUint(uint64(id), 10)+",q=2")

	firstDelay := 0
	if len(delaysMs) > 0 {
		firstDelay = delaysMs[0]
	}
	out.WriteString("\x1b_Ga=a,s=2,v=1,r=1,I=" + strconv.FormatUint(uint64(id), 10) + ",z=" + strconv.Itoa(firstDelay) + "\x1b\\")

	lastDelay := firstDelay
	for i := 1; i < len(frames); i++ {
		framePNG, err := encodePNG(frames[i])
		if err != nil {
			return nil, err
		}
		delay := 0
		if i < len(delaysMs) {
			delay = delaysMs[i]
		}
		lastDelay = delay
		chunkBase64(&out, base64.StdEncoding.EncodeToString(framePNG),
			"a=f,f=100,I="+strconv.FormatUint(uint64(id), 10)+",c="+strconv.Itoa(i)+",z="+strconv.Itoa(delay))
	}

	out.WriteString("\x1b_Ga=a,s=3,I=" + strconv.FormatUint(uint64(id), 10) + ",z=" + strconv.Itoa(lastDelay) + "\x1b\\")
	return out.Bytes(), nil
}

// DeleteAll emits the deletion-protocol escape that clears every Kitty
// image the terminal is holding (§4.5.1).
func DeleteAll() []byte {
	return []byte("\x1b_Ga=d,d=A\x1b\\")
}

func hasPositiveDelay(delays []int) bool {
	for _, d := range delays {
		if d > 0 {
			return true
		}
	}
	return false
}

func encodePNG(img goimage.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errs.Wrap(errs.KindEncodingFailure, "encoding kitty frame", err)
	}
	return buf.Bytes(), nil
}

func chunkBase64(out *bytes.Buffer, b64 string, firstOpts string) {
	total := len(b64)
	start := 0
	for start < total {
		end := start + kittyChunkSize
		if end > total {
			end = total
		}
		more := 0
		if end != total {
			more = 1
		}

		out.WriteString("\x1b_G")
		if start == 0 {
			out.WriteString(firstOpts)
			out.WriteString(",m=" + strconv.Itoa(more))
		} else {
			out.WriteString("m=" + strconv.Itoa(more))
		}
		out.WriteByte(';')
		out.WriteString(b64[start:end])
		out.WriteString("\x1b\\")

		start = end
	}
}
