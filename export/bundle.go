package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/everydev1618/quizgen/dsl"
)

// Bundle entry names.
const (
	BundleDOCX = "quiz.docx"
	BundleCSV  = "quiz.csv"
	BundleXLSX = "quiz.xlsx"
)

// BundleOptions selects the optional bundle entries.
type BundleOptions struct {
	XLSX bool
}

// WriteBundle writes a ZIP archive holding the DOCX document and the CSV
// table of out, plus the XLSX workbook when requested.
func WriteBundle(w io.Writer, out *dsl.Output, opts BundleOptions) error {
	type entry struct {
		name  string
		write func(io.Writer) error
	}
	entries := []entry{
		{BundleDOCX, func(w io.Writer) error { return WriteDOCX(w, out.RichText) }},
		{BundleCSV, func(w io.Writer) error { return WriteCSV(w, out.Table) }},
	}
	if opts.XLSX {
		entries = append(entries, entry{BundleXLSX, func(w io.Writer) error { return WriteXLSX(w, out.Table) }})
	}

	zw := zip.NewWriter(w)
	for _, e := range entries {
		var buf bytes.Buffer
		if err := e.write(&buf); err != nil {
			return fmt.Errorf("%s: %w", e.name, err)
		}
		f, err := zw.Create(e.name)
		if err != nil {
			return fmt.Errorf("create %s: %w", e.name, err)
		}
		if _, err := buf.WriteTo(f); err != nil {
			return fmt.Errorf("write %s: %w", e.name, err)
		}
	}
	return zw.Close()
}

// BundleName returns the download file name for a run.
func BundleName(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return "quiz-" + id + ".zip"
}
