package classify

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/skardyy/mcat/internal/arena"
	"github.com/skardyy/mcat/internal/errs"
)

// sniffWindow is the maximum number of bytes read to detect a magic
// number, per spec §4.1 rule 3.
const sniffWindow = 4096

// Item is one input before classification: a path, URL, or "-" for
// stdin, with an optional origin label used by the Concatenator's text
// headers.
type Item struct {
	PathOrURL   string
	OriginLabel string
}

// Classified pairs an Item with its decided Kind. For stdin input, Path
// is rewritten to the materialized temp file so downstream components
// can treat it uniformly (spec §4.1 rule 4).
type Classified struct {
	Item Item
	Kind Kind
	Path string // resolved filesystem path (empty for Kind == KindURL)
}

var imageMagics = []struct {
	sig []byte
}{
	{[]byte("\x89PNG\r\n\x1a\n")},
	{[]byte("\xff\xd8\xff")},
	{[]byte("GIF87a")},
	{[]byte("GIF89a")},
	{[]byte("BM")},
}

func isWebP(b []byte) bool {
	return len(b) >= 12 && bytes.Equal(b[0:4], []byte("RIFF")) && bytes.Equal(b[8:12], []byte("WEBP"))
}

func isSVG(b []byte) bool {
	trimmed := bytes.TrimLeft(b, " \t\r\n")
	return bytes.Contains(bytes.ToLower(trimmed[:min(len(trimmed), 512)]), []byte("<svg"))
}

func isVideoContainer(b []byte) bool {
	if len(b) >= 12 && bytes.Equal(b[4:8], []byte("ftyp")) {
		return true // MP4/MOV family
	}
	if len(b) >= 4 && bytes.Equal(b[0:4], []byte{0x1A, 0x45, 0xDF, 0xA3}) {
		return true // Matroska/WebM EBML header
	}
	if len(b) >= 12 && bytes.Equal(b[0:4], []byte("RIFF")) && bytes.Equal(b[8:12], []byte("AVI ")) {
		return true
	}
	return false
}

func sniffImage(b []byte) bool {
	for _, m := range imageMagics {
		if bytes.HasPrefix(b, m.sig) {
			return true
		}
	}
	return isWebP(b) || isSVG(b)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Classify assigns a Kind to every item in items, applying the rules in
// spec §4.1 in order: URL scheme, directory, byte-sniff, extension
// fallback. Stdin items (PathOrURL == "-") are materialized to a#
// a temp file owned by ar.
func Classify(items []Item, ar *arena.Arena) ([]Classified, error) {
	out := make([]Classified, 0, len(items))
	for _, it := range items {
		c, err := classifyOne(it, ar)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func classifyOne(it Item, ar *arena.Arena) (Classified, error) {
	if strings.HasPrefix(it.PathOrURL, "https://") || strings.HasPrefix(it.PathOrURL, "http://") {
		return Classified{Item: it, Kind: KindURL}, nil
	}

	if it.PathOrURL == "-" {
		return classifyStdin(it, ar)
	}

	info, err := os.Stat(it.PathOrURL)
	if err != nil {
		return Classified{}, errs.Wrap(errs.KindIOFailure, "stat "+it.PathOrURL, err)
	}
	if info.IsDir() {
		return Classified{Item: it, Kind: KindDirectory, Path: it.PathOrURL}, nil
	}

	f, err := os.Open(it.PathOrURL)
	if err != nil {
		return Classified{}, errs.Wrap(errs.KindIOFailure, "open "+it.PathOrURL, err)
	}
	defer f.Close()

	buf := make([]byte, sniffWindow)
	n, _ := io.ReadFull(f, buf)
	buf = buf[:n]

	kind := classifyBytesAndExt(buf, it.PathOrURL)
	return Classified{Item: it, Kind: kind, Path: it.PathOrURL}, nil
}

func classifyBytesAndExt(sniff []byte, path string) Kind {
	if sniffImage(sniff) {
		return KindImage
	}
	if isVideoContainer(sniff) {
		return KindVideo
	}
	ext := strings.ToLower(filepath.Ext(path))
	if documentExtensions[ext] {
		return KindDocument
	}
	if archiveExtensions[ext] {
		return KindArchive
	}
	return KindText
}

func classifyStdin(it Item, ar *arena.Arena) (Classified, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return Classified{}, errs.Wrap(errs.KindIOFailure, "reading stdin", err)
	}

	sniff := data
	if len(sniff) > sniffWindow {
		sniff = sniff[:sniffWindow]
	}
	kind := KindStreamedBytes
	if sniffImage(sniff) {
		kind = KindImage
	} else if isVideoContainer(sniff) {
		kind = KindVideo
	} else if looksLikeText(data) {
		kind = KindText
	}

	f, err := ar.NewFile("stdin")
	if err != nil {
		return Classified{}, err
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return Classified{}, errs.Wrap(errs.KindIOFailure, "materializing stdin", err)
	}

	return Classified{Item: it, Kind: kind, Path: f.Name()}, nil
}

// looksLikeText treats the absence of NUL bytes in the sniff window as
// "probably text", matching the spirit of spec §4.1's sniff-then-fall-
// back-to-Text rule for stdin bytes that matched no binary magic.
func looksLikeText(data []byte) bool {
	probe := data
	if len(probe) > sniffWindow {
		probe = probe[:sniffWindow]
	}
	return !bytes.ContainsRune(probe, 0)
}
