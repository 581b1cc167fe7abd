package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// ExtractText collects the text content of a .docx file's body and header
// parts, in archive order. Used to verify stamped output.
func ExtractText(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("invalid .docx file: %w", err)
	}

	var b strings.Builder
	for _, f := range reader.File {
		if f.Name != "word/document.xml" && !headerPartRe.MatchString(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("could not open %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("could not read %s: %w", f.Name, err)
		}
		text, err := textNodes(content)
		if err != nil {
			return "", fmt.Errorf("could not parse %s: %w", f.Name, err)
		}
		b.WriteString(text)
	}

	return b.String(), nil
}

// ExtractTextFile reads path and extracts its text content.
func ExtractTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %s — check that the path is correct", path)
		}
		return "", fmt.Errorf("could not read %s: %w", path, err)
	}
	return ExtractText(data)
}

// textNodes walks one OOXML part, concatenating the character data of every
// w:t element with a newline per paragraph.
func textNodes(content []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))

	var b strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}
