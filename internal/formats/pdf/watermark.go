// Package pdf applies text watermarks to PDF files via pdfcpu.
package pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/klytics/stampkit/internal/stamp"
)

// Watermark stamps opts.Text onto every page of the source PDF and writes
// the result to destPath. Non-Latin text requires a Unicode-capable user
// font; see EnsureUnicodeFont.
func Watermark(srcPath, destPath string, opts stamp.Options) error {
	if err := api.ValidateFile(srcPath, nil); err != nil {
		return &stamp.ReadError{Path: srcPath, Err: err}
	}

	fontName := "Helvetica"
	if needsUnicodeFont(opts.Text) {
		name, err := EnsureUnicodeFont(opts.FontFile)
		if err != nil {
			return &stamp.ReadError{Path: srcPath, Err: err}
		}
		fontName = name
	}

	wm, err := api.TextWatermark(opts.Text, describe(opts, fontName), true, false, types.POINTS)
	if err != nil {
		return fmt.Errorf("invalid watermark configuration: %w", err)
	}

	if err := api.AddWatermarksFile(srcPath, destPath, nil, wm, nil); err != nil {
		return &stamp.WriteError{Path: destPath, Err: err}
	}

	return nil
}

// describe builds a pdfcpu watermark description string. Center placement is
// rotated diagonally; corner placements stay axis-aligned.
func describe(opts stamp.Options, fontName string) string {
	pos, rot := "c", 45
	switch opts.Position {
	case stamp.PositionTopLeft:
		pos, rot = "tl", 0
	case stamp.PositionBottomRight:
		pos, rot = "br", 0
	}
	return fmt.Sprintf("fontname:%s, points:%d, scalefactor:1 abs, color:#B3B3B3, op:%.2f, rot:%d, pos:%s",
		fontName, opts.FontSize, opts.Opacity, rot, pos)
}
