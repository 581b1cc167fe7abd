package pdf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/klytics/stampkit/internal/stamp"
)

// samplePDF writes a small two-page PDF to path.
func samplePDF(t *testing.T, path string) {
	t.Helper()
	doc := gofpdf.New("P", "mm", "A4", "")
	for i := 1; i <= 2; i++ {
		doc.AddPage()
		doc.SetFont("Helvetica", "", 14)
		doc.Cell(40, 10, "sample page")
	}
	if err := doc.OutputFileAndClose(path); err != nil {
		t.Fatalf("could not create sample PDF: %v", err)
	}
}

func testOptions(text string) stamp.Options {
	opts := stamp.DefaultOptions()
	opts.Text = text
	return opts
}

func TestWatermarkProducesValidPDF(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "in.pdf")
	out := filepath.Join(tmpDir, "out.pdf")
	samplePDF(t, src)

	before, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}

	if err := Watermark(src, out, testOptions("CONFIDENTIAL")); err != nil {
		t.Fatalf("Watermark failed: %v", err)
	}

	if err := api.ValidateFile(out, nil); err != nil {
		t.Errorf("output is not a valid PDF: %v", err)
	}

	after, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("source file was modified")
	}

	info, err := os.Stat(out)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}

func TestWatermarkChineseText(t *testing.T) {
	if _, ok := LookupFontFile(); !ok {
		t.Skip("no CJK-capable font on this system")
	}

	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "in.pdf")
	out := filepath.Join(tmpDir, "out.pdf")
	samplePDF(t, src)

	if err := Watermark(src, out, testOptions("机密文件")); err != nil {
		t.Fatalf("Watermark failed: %v", err)
	}
	if err := api.ValidateFile(out, nil); err != nil {
		t.Errorf("output is not a valid PDF: %v", err)
	}
}

func TestWatermarkCorruptInput(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "broken.pdf")
	if err := os.WriteFile(src, []byte("%PDF-garbage"), 0644); err != nil {
		t.Fatal(err)
	}

	err := Watermark(src, filepath.Join(tmpDir, "out.pdf"), testOptions("X"))
	if err == nil {
		t.Fatal("expected error for corrupt input")
	}
	if _, ok := err.(*stamp.ReadError); !ok {
		t.Errorf("expected ReadError, got %T", err)
	}
}

func TestDescribe(t *testing.T) {
	opts := testOptions("X")
	desc := describe(opts, "Helvetica")
	for _, want := range []string{"fontname:Helvetica", "points:30", "op:0.30", "rot:45", "pos:c"} {
		if !strings.Contains(desc, want) {
			t.Errorf("description %q missing %q", desc, want)
		}
	}

	opts.Position = stamp.PositionTopLeft
	desc = describe(opts, "Helvetica")
	if !strings.Contains(desc, "pos:tl") || !strings.Contains(desc, "rot:0") {
		t.Errorf("corner placement should be axis-aligned: %q", desc)
	}

	opts.Position = stamp.PositionBottomRight
	if !strings.Contains(describe(opts, "Helvetica"), "pos:br") {
		t.Errorf("bottom-right not mapped: %q", describe(opts, "Helvetica"))
	}
}

func TestNeedsUnicodeFont(t *testing.T) {
	if needsUnicodeFont("Confidential") {
		t.Error("plain ASCII should not need a user font")
	}
	if needsUnicodeFont("Entwurf — vertraulich") != true {
		t.Error("text beyond Latin-1 needs a user font")
	}
	if !needsUnicodeFont("机密") {
		t.Error("CJK text needs a user font")
	}
}
