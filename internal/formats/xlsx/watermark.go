// Package xlsx applies text watermarks to .xlsx workbooks via excelize.
package xlsx

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/klytics/stampkit/internal/stamp"
)

// Page header styling for the watermark text.
const (
	headerFontPoints = 24
	headerColor      = "C0C0C0"
)

// Watermark stamps opts.Text onto every worksheet of the source workbook and
// writes the result to destPath. The mark goes into the page header (or the
// footer for bottom placement) so it repeats on every printed page without
// disturbing cell data.
func Watermark(srcPath, destPath string, opts stamp.Options) error {
	f, err := excelize.OpenFile(srcPath)
	if err != nil {
		return &stamp.ReadError{Path: srcPath, Err: err}
	}
	defer f.Close()

	code := headerCode(opts)
	hf := &excelize.HeaderFooterOptions{}
	if opts.Position == stamp.PositionBottomRight {
		hf.OddFooter = code
		hf.EvenFooter = code
	} else {
		hf.OddHeader = code
		hf.EvenHeader = code
	}

	for _, sheet := range f.GetSheetList() {
		if err := f.SetHeaderFooter(sheet, hf); err != nil {
			return fmt.Errorf("could not set watermark on sheet %q: %w", sheet, err)
		}
	}

	if err := f.SaveAs(destPath); err != nil {
		return &stamp.WriteError{Path: destPath, Err: err}
	}

	return nil
}

// headerCode builds the header/footer formatting code: section anchor, font
// size, and color, followed by the escaped text.
func headerCode(opts stamp.Options) string {
	anchor := "&C"
	switch opts.Position {
	case stamp.PositionTopLeft:
		anchor = "&L"
	case stamp.PositionBottomRight:
		anchor = "&R"
	}
	return fmt.Sprintf("%s&%d&K%s%s", anchor, headerFontPoints, headerColor, escapeText(opts.Text))
}

// escapeText doubles ampersands, which are control characters in
// header/footer codes.
func escapeText(s string) string {
	return strings.ReplaceAll(s, "&", "&&")
}
