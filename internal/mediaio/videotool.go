package mediaio

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"os/exec"

	"github.com/skardyy/mcat/internal/errs"
)

// videoToolBinary is the external collaborator spec §1 calls "the video
// tool": an ffmpeg-compatible decoder that turns an arbitrary container
// into frames the render pipeline can encode.
const videoToolBinary = "ffmpeg"

// VideoToGIF decodes path's video stream into a GIF byte stream sampled
// at fps, the simpler of the video tool's two output shapes (§1).
func VideoToGIF(path string, fps int) ([]byte, error) {
	if fps < 1 {
		fps = 10
	}
	cmd := exec.Command(videoToolBinary,
		"-hwaccel", "auto", "-i", path,
		"-filter:v", fmt.Sprintf("fps=%d", fps),
		"-f", "gif", "-",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errs.Wrap(errs.KindExternalProcessFailure,
			fmt.Sprintf("video tool decode failed: %s", stderr.String()), err)
	}
	return stdout.Bytes(), nil
}

// VideoFrames decodes path into a slice of frames plus per-frame delays
// in milliseconds, used when a caller needs individual
// frames (e.g. to feed the Kitty animated encoder) rather than a
// pre-muxed GIF. It shells out the same fps-sampled GIF stream and then
// decodes that GIF in-process, since the example corpus carries no
// direct raw-frame video decoder.
func VideoFrames(path string, fps int) ([]image.Image, []int, error) {
	gifBytes, err := VideoToGIF(path, fps)
	if err != nil {
		return nil, nil, err
	}
	g, err := gif.DecodeAll(bytes.NewReader(gifBytes))
	if err != nil {
		return nil, nil, errs.Wrap(errs.KindEncodingFailure, "decoding intermediate gif", err)
	}

	frames := make([]image.Image, len(g.Image))
	delaysMs := make([]int, len(g.Image))
	for i, paletted := range g.Image {
		frames[i] = paletted
		delaysMs[i] = g.Delay[i] * 10
	}
	return frames, delaysMs, nil
}
