// Package concat implements the Concatenator (spec §4.2): it unifies N
// classified inputs of the same kind into one logical artifact — text
// concatenation, image tiling, or a muxed video stream.
package concat

import (
	"fmt"
	"os"
	"strings"

	"github.com/skardyy/mcat/internal/classify"
	"github.com/skardyy/mcat/internal/errs"
)

// Text concatenates items per spec §4.2: a "# <label>" header followed
// by the file's contents, with a blank-line separator between items.
// Labels default to the item's original argument spelling so URLs and
// stdin keep their provenance.
func Text(items []classify.Classified) (string, error) {
	var b strings.Builder
	for i, it := range items {
		label := it.Item.OriginLabel
		if label == "" {
			label = it.Item.PathOrURL
		}
		fmt.Fprintf(&b, "# %s\n", label)

		data, err := os.ReadFile(it.Path)
		if err != nil {
			return "", errs.Wrap(errs.KindIOFailure, "reading "+it.Path, err)
		}
		b.Write(data)
		if len(data) == 0 || data[len(data)-1] != '\n' {
			b.WriteByte('\n')
		}
		if i != len(items)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}
