// Package docx applies text watermarks to .docx (OOXML) files and provides
// the minimal read/write support the tool and its tests need.
package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/klytics/stampkit/internal/stamp"
)

// Header run styling, matching the conventional gray watermark look.
const (
	headerFontHalfPoints = 72 // 36pt
	headerColor          = "C8C8C8"
)

var (
	headerPartRe = regexp.MustCompile(`^word/header\d+\.xml$`)
	relIDRe      = regexp.MustCompile(`Id="rId(\d+)"`)
)

// Watermark stamps opts.Text into the page headers of a .docx file and
// writes the result to destPath. The document body is left untouched.
func Watermark(srcPath, destPath string, opts stamp.Options) error {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return &stamp.ReadError{Path: srcPath, Err: err}
	}

	stamped, err := WatermarkBytes(data, opts)
	if err != nil {
		return classify(srcPath, destPath, err)
	}

	if err := os.WriteFile(destPath, stamped, 0644); err != nil {
		return &stamp.WriteError{Path: destPath, Err: err}
	}

	return nil
}

// outputError marks failures from assembling the output archive, as opposed
// to failures parsing the input document.
type outputError struct{ err error }

func (e *outputError) Error() string { return e.err.Error() }
func (e *outputError) Unwrap() error { return e.err }

// classify maps a WatermarkBytes failure onto the file-level error kinds:
// output assembly is a write error, everything before it is a read error.
func classify(srcPath, destPath string, err error) error {
	var oe *outputError
	if errors.As(err, &oe) {
		return &stamp.WriteError{Path: destPath, Err: oe.err}
	}
	return &stamp.ReadError{Path: srcPath, Err: err}
}

// WatermarkBytes applies the watermark to raw .docx bytes.
//
// Documents that already have header parts get the watermark paragraph
// appended to every one of them. Documents without headers get a synthesized
// word/header1.xml wired into the package: a content-type override, a
// relationship from document.xml, and a headerReference in every sectPr so
// the mark repeats on every page.
func WatermarkBytes(data []byte, opts stamp.Options) ([]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("invalid .docx file: %w", err)
	}

	type part struct {
		file    *zip.File
		content []byte
	}

	parts := make([]part, 0, len(reader.File))
	hasHeader := false
	for _, f := range reader.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("could not open %s in archive: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("could not read %s: %w", f.Name, err)
		}
		if headerPartRe.MatchString(f.Name) {
			hasHeader = true
		}
		parts = append(parts, part{file: f, content: content})
	}

	para := watermarkParagraph(opts)
	var newParts map[string][]byte

	if hasHeader {
		for i, p := range parts {
			if !headerPartRe.MatchString(p.file.Name) {
				continue
			}
			patched, err := appendToHeader(string(p.content), para)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", p.file.Name, err)
			}
			parts[i].content = []byte(patched)
		}
	} else {
		docIdx := -1
		relsIdx := -1
		typesIdx := -1
		for i, p := range parts {
			switch p.file.Name {
			case "word/document.xml":
				docIdx = i
			case "word/_rels/document.xml.rels":
				relsIdx = i
			case "[Content_Types].xml":
				typesIdx = i
			}
		}
		if docIdx < 0 {
			return nil, fmt.Errorf("invalid .docx file: missing word/document.xml")
		}
		if typesIdx < 0 {
			return nil, fmt.Errorf("invalid .docx file: missing [Content_Types].xml")
		}

		rels := ""
		if relsIdx >= 0 {
			rels = string(parts[relsIdx].content)
		}
		rid, rels := addHeaderRelationship(rels)

		doc, err := addHeaderReferences(string(parts[docIdx].content), rid)
		if err != nil {
			return nil, err
		}

		parts[docIdx].content = []byte(doc)
		parts[typesIdx].content = []byte(addHeaderContentType(string(parts[typesIdx].content)))
		if relsIdx >= 0 {
			parts[relsIdx].content = []byte(rels)
		} else {
			newParts = map[string][]byte{"word/_rels/document.xml.rels": []byte(rels)}
		}
		if newParts == nil {
			newParts = map[string][]byte{}
		}
		newParts["word/header1.xml"] = []byte(headerPart(para))
	}

	// Rebuild the archive preserving entry order and compression.
	buf := new(bytes.Buffer)
	writer := zip.NewWriter(buf)
	for _, p := range parts {
		header := &zip.FileHeader{
			Name:   p.file.Name,
			Method: p.file.Method,
		}
		header.SetModTime(p.file.Modified)

		w, err := writer.CreateHeader(header)
		if err != nil {
			return nil, &outputError{fmt.Errorf("could not create %s in output: %w", p.file.Name, err)}
		}
		if _, err := w.Write(p.content); err != nil {
			return nil, &outputError{fmt.Errorf("could not write %s: %w", p.file.Name, err)}
		}
	}
	for name, content := range newParts {
		w, err := writer.Create(name)
		if err != nil {
			return nil, &outputError{fmt.Errorf("could not create %s in output: %w", name, err)}
		}
		if _, err := w.Write(content); err != nil {
			return nil, &outputError{fmt.Errorf("could not write %s: %w", name, err)}
		}
	}

	if err := writer.Close(); err != nil {
		return nil, &outputError{fmt.Errorf("could not finalize output archive: %w", err)}
	}

	return buf.Bytes(), nil
}

// watermarkParagraph renders the watermark as a single header paragraph.
func watermarkParagraph(opts stamp.Options) string {
	jc := "center"
	switch opts.Position {
	case stamp.PositionTopLeft:
		jc = "left"
	case stamp.PositionBottomRight:
		jc = "right"
	}

	var b strings.Builder
	b.WriteString(`<w:p><w:pPr><w:jc w:val="`)
	b.WriteString(jc)
	b.WriteString(`"/></w:pPr><w:r><w:rPr><w:color w:val="`)
	b.WriteString(headerColor)
	b.WriteString(`"/><w:sz w:val="`)
	b.WriteString(strconv.Itoa(headerFontHalfPoints))
	b.WriteString(`"/><w:szCs w:val="`)
	b.WriteString(strconv.Itoa(headerFontHalfPoints))
	b.WriteString(`"/></w:rPr><w:t xml:space="preserve">`)
	b.WriteString(xmlEscape(opts.Text))
	b.WriteString(`</w:t></w:r></w:p>`)
	return b.String()
}

func appendToHeader(header, para string) (string, error) {
	i := strings.LastIndex(header, "</w:hdr>")
	if i < 0 {
		return "", fmt.Errorf("malformed header part: no closing hdr element")
	}
	return header[:i] + para + header[i:], nil
}

func headerPart(para string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<w:hdr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
		`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">` +
		para + `</w:hdr>`
}

// addHeaderRelationship registers word/header1.xml in the document
// relationships, returning the new relationship ID and the patched (or
// freshly created) rels XML.
func addHeaderRelationship(rels string) (string, string) {
	if rels == "" {
		rels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`</Relationships>`
	}

	max := 0
	for _, m := range relIDRe.FindAllStringSubmatch(rels, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n > max {
			max = n
		}
	}
	rid := fmt.Sprintf("rId%d", max+1)

	rel := `<Relationship Id="` + rid +
		`" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"` +
		` Target="header1.xml"/>`
	rels = strings.Replace(rels, "</Relationships>", rel+"</Relationships>", 1)
	return rid, rels
}

func addHeaderContentType(types string) string {
	override := `<Override PartName="/word/header1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"/>`
	return strings.Replace(types, "</Types>", override+"</Types>", 1)
}

// addHeaderReferences inserts a default headerReference into every sectPr of
// document.xml. A document with no sectPr at all gets one appended to the
// body so the header still applies.
func addHeaderReferences(doc, rid string) (string, error) {
	ref := `<w:headerReference w:type="default" r:id="` + rid + `"/>`

	var b strings.Builder
	rest := doc
	patched := false
	for {
		i := indexSectPr(rest)
		if i < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.Index(rest[i:], ">")
		if end < 0 {
			return "", fmt.Errorf("malformed document.xml: unterminated sectPr")
		}
		end += i
		if rest[end-1] == '/' {
			// Self-closing sectPr: expand it so the reference has a home.
			b.WriteString(rest[:i])
			b.WriteString(`<w:sectPr`)
			b.WriteString(rest[i+len("<w:sectPr") : end-1])
			b.WriteString(">")
			b.WriteString(ref)
			b.WriteString(`</w:sectPr>`)
		} else {
			b.WriteString(rest[:end+1])
			b.WriteString(ref)
		}
		rest = rest[end+1:]
		patched = true
	}

	out := b.String()
	if !patched {
		// headerReference lives inside a sectPr; synthesize a body-level one.
		i := strings.LastIndex(out, "</w:body>")
		if i < 0 {
			return "", fmt.Errorf("malformed document.xml: no body element")
		}
		out = out[:i] + `<w:sectPr>` + ref + `</w:sectPr>` + out[i:]
	}
	return out, nil
}

// indexSectPr finds the next sectPr opening tag, skipping lookalikes such as
// sectPrChange.
func indexSectPr(s string) int {
	from := 0
	for {
		i := strings.Index(s[from:], "<w:sectPr")
		if i < 0 {
			return -1
		}
		i += from
		rest := s[i+len("<w:sectPr"):]
		if rest == "" {
			return -1
		}
		switch rest[0] {
		case ' ', '>', '/':
			return i
		}
		from = i + len("<w:sectPr")
	}
}

func xmlEscape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}
