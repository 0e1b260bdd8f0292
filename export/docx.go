package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/everydev1618/quizgen/richtext"
)

const (
	contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

	relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

	documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`
	documentFooter = `<w:sectPr/></w:body></w:document>`
)

// WriteDOCX writes doc as a WordprocessingML package. Every paragraph of
// the document becomes a w:p, line breaks become w:br and bold spans carry
// w:b.
func WriteDOCX(w io.Writer, doc richtext.Document) error {
	zw := zip.NewWriter(w)
	parts := []struct {
		name string
		body []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(relsXML)},
		{"word/document.xml", documentXML(doc)},
	}
	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := f.Write(p.body); err != nil {
			return fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	return zw.Close()
}

func documentXML(doc richtext.Document) []byte {
	var buf bytes.Buffer
	buf.WriteString(documentHeader)
	for _, para := range doc.Paragraphs() {
		buf.WriteString("<w:p>")
		for _, e := range para {
			if e.Break == richtext.LineBreak {
				buf.WriteString("<w:r><w:br/></w:r>")
				continue
			}
			buf.WriteString("<w:r>")
			if e.Bold {
				buf.WriteString("<w:rPr><w:b/></w:rPr>")
			}
			buf.WriteString(`<w:t xml:space="preserve">`)
			xml.EscapeText(&buf, []byte(e.Text))
			buf.WriteString("</w:t></w:r>")
		}
		buf.WriteString("</w:p>")
	}
	buf.WriteString(documentFooter)
	return buf.Bytes()
}
