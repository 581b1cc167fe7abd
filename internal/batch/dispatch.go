// Package batch runs the sequential stamping loop over one or many files.
package batch

import (
	"github.com/klytics/stampkit/internal/formats/docx"
	"github.com/klytics/stampkit/internal/formats/pdf"
	"github.com/klytics/stampkit/internal/formats/xlsx"
	"github.com/klytics/stampkit/internal/stamp"
)

// Stamp dispatches one file to its format handler. The extension is
// re-validated here because single-file targets bypass discovery's filter.
func Stamp(srcPath, destPath string, opts stamp.Options) error {
	format, err := stamp.FormatForPath(srcPath)
	if err != nil {
		return err
	}

	return runTask(stamp.Task{
		SourcePath: srcPath,
		DestPath:   destPath,
		Format:     format,
	}, opts)
}

func runTask(task stamp.Task, opts stamp.Options) error {
	switch task.Format {
	case stamp.FormatWord:
		return docx.Watermark(task.SourcePath, task.DestPath, opts)
	case stamp.FormatExcel:
		return xlsx.Watermark(task.SourcePath, task.DestPath, opts)
	default:
		return pdf.Watermark(task.SourcePath, task.DestPath, opts)
	}
}
