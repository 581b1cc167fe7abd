package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// Document is a minimal in-memory representation used for generating
// fixtures and sample files. The watermarker itself never round-trips
// through this type; it edits the source archive in place.
type Document struct {
	Paragraphs []string
}

// WriteDocument generates a .docx file from a Document, returning the raw bytes.
func WriteDocument(doc *Document) ([]byte, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	if err := writeContentTypes(zw); err != nil {
		return nil, fmt.Errorf("could not write content types: %w", err)
	}
	if err := writeRels(zw); err != nil {
		return nil, fmt.Errorf("could not write relationships: %w", err)
	}
	if err := writeDocRels(zw); err != nil {
		return nil, fmt.Errorf("could not write document relationships: %w", err)
	}
	if err := writeDocumentXML(zw, doc); err != nil {
		return nil, fmt.Errorf("could not write document body: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("could not finalize .docx archive: %w", err)
	}

	return buf.Bytes(), nil
}

func writeContentTypes(zw *zip.Writer) error {
	w, err := zw.Create("[Content_Types].xml")
	if err != nil {
		return err
	}
	_, err = w.Write([]byte(xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`))
	return err
}

func writeRels(zw *zip.Writer) error {
	w, err := zw.Create("_rels/.rels")
	if err != nil {
		return err
	}
	_, err = w.Write([]byte(xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`))
	return err
}

func writeDocRels(zw *zip.Writer) error {
	w, err := zw.Create("word/_rels/document.xml.rels")
	if err != nil {
		return err
	}
	_, err = w.Write([]byte(xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
</Relationships>`))
	return err
}

func writeDocumentXML(zw *zip.Writer, doc *Document) error {
	w, err := zw.Create("word/document.xml")
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`)
	b.WriteString(`<w:body>`)
	for _, p := range doc.Paragraphs {
		b.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
		b.WriteString(xmlEscape(p))
		b.WriteString(`</w:t></w:r></w:p>`)
	}
	b.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr>`)
	b.WriteString(`</w:body>`)
	b.WriteString(`</w:document>`)

	_, err = w.Write([]byte(b.String()))
	return err
}
