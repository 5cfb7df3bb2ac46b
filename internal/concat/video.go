package concat

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/skardyy/mcat/internal/arena"
	"github.com/skardyy/mcat/internal/errs"
)

// ffmpegBinary is the external video tool's executable name. The tool
// itself is an external collaborator (spec §1): this package only
// shapes the playlist and the invocation, never the decoding.
const ffmpegBinary = "ffmpeg"

// Video concatenates N video files into one sequential stream by
// writing an ffmpeg concat-demuxer playlist into ar's owned directory
// and invoking the video tool, per spec §4.2. The result is emitted as
// a GIF byte stream so downstream encoding can treat it like any other
// animated image.
func Video(paths []string, ar *arena.Arena) ([]byte, error) {
	if len(paths) == 0 {
		return nil, errs.New(errs.KindInvalidInput, "no videos to concatenate")
	}

	playlist, err := writePlaylist(paths, ar)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(ffmpegBinary,
		"-hwaccel", "auto",
		"-f", "concat",
		"-safe", "0",
		"-i", playlist,
		"-filter:v", "fps=24",
		"-f", "gif",
		"-",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errs.Wrap(errs.KindExternalProcessFailure,
			fmt.Sprintf("ffmpeg concat failed: %s", stderr.String()), err)
	}
	return stdout.Bytes(), nil
}

// writePlaylist renders paths as an ffmpeg concat-demuxer playlist
// ("file '<absolute path>'" per line) inside ar's temp directory.
func writePlaylist(paths []string, ar *arena.Arena) (string, error) {
	f, err := ar.NewFile("playlist-*.txt")
	if err != nil {
		return "", err
	}
	defer f.Close()

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", errs.Wrap(errs.KindIOFailure, "resolving "+p, err)
		}
		if _, err := fmt.Fprintf(f, "file '%s'\n", abs); err != nil {
			return "", errs.Wrap(errs.KindIOFailure, "writing playlist", err)
		}
	}
	return f.Name(), nil
}
