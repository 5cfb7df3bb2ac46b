package mediaio

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/skardyy/mcat/internal/errs"
)

// DocumentToMarkdown turns office/PDF/spreadsheet bytes into Markdown
// text, the minimal fraction of the adapter the render pipeline needs:
// enough plain text to feed the Markdown renderer. docx's body text is
// extracted directly (it is a zipped OOXML package); every other format
// degrades to a placeholder line naming the file, per §7's "partial
// rendering errors degrade, never abort" policy.
func DocumentToMarkdown(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return docxToText(path)
	default:
		return "# " + filepath.Base(path) + "\n\n_document preview unavailable for this format_\n", nil
	}
}

type docxBody struct {
	Paragraphs []docxParagraph `xml:"body>p"`
}

type docxParagraph struct {
	Runs []docxRun `xml:"r"`
}

type docxRun struct {
	Text string `xml:"t"`
}

func docxToText(path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", errs.Wrap(errs.KindArchiveFailure, "opening docx "+path, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", errs.Wrap(errs.KindArchiveFailure, "reading docx body", err)
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return "", errs.Wrap(errs.KindIOFailure, "reading docx body", err)
		}

		var doc docxBody
		if err := xml.Unmarshal(data, &doc); err != nil {
			return "", errs.Wrap(errs.KindParseFailure, "parsing docx body", err)
		}

		var b strings.Builder
		for _, p := range doc.Paragraphs {
			for _, run := range p.Runs {
				b.WriteString(run.Text)
			}
			b.WriteByte('\n')
		}
		return b.String(), nil
	}
	return "", errs.New(errs.KindArchiveFailure, "docx missing word/document.xml: "+path)
}

// archiveListing lists an archive's member paths as a Markdown bullet
// list, the archive-kind analogue of DocumentToMarkdown.
func archiveListing(path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", errs.Wrap(errs.KindArchiveFailure, "opening archive "+path, err)
	}
	defer r.Close()

	var b strings.Builder
	b.WriteString("# " + filepath.Base(path) + "\n\n")
	for _, f := range r.File {
		b.WriteString("- " + f.Name + "\n")
	}
	return b.String(), nil
}

// ArchiveToMarkdown is the Document adapter's archive-kind counterpart,
// used when the Inspector classifies an input Archive rather than
// Document (spec §4.1's archive extension set).
func ArchiveToMarkdown(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", errs.Wrap(errs.KindIOFailure, "stat "+path, err)
	}
	return archiveListing(path)
}
