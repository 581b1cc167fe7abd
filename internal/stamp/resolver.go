package stamp

import (
	"path/filepath"
	"strings"
)

// Suffix is inserted before the extension in default mode.
const Suffix = "_watermarked"

// OverwriteTmpMarker is inserted before the extension while stamping in
// overwrite mode, so a failed stamp never corrupts the original.
const OverwriteTmpMarker = ".stamptmp"

// OverwriteTmp returns the temporary sibling path used while stamping in
// overwrite mode. The marker sits before the extension, not after it, because
// some format libraries refuse to save under an unrecognized extension.
func OverwriteTmp(dest string) string {
	ext := filepath.Ext(dest)
	return strings.TrimSuffix(dest, ext) + OverwriteTmpMarker + ext
}

// IsOverwriteTmp reports whether path is an in-flight overwrite temp file.
func IsOverwriteTmp(path string) bool {
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	return strings.HasSuffix(stem, OverwriteTmpMarker)
}

// ResolveDest computes the destination path for a source file.
//
// Overwrite mode maps the file onto itself; output-directory mode mirrors the
// relative path under outputDir; otherwise the Suffix is inserted before the
// extension, next to the source. Only overwrite mode ever returns the source
// path itself.
func ResolveDest(sourcePath, relPath, outputDir string, overwrite bool) string {
	if overwrite {
		return sourcePath
	}
	if outputDir != "" {
		if relPath == "" {
			relPath = filepath.Base(sourcePath)
		}
		return filepath.Join(outputDir, relPath)
	}
	ext := filepath.Ext(sourcePath)
	stem := strings.TrimSuffix(sourcePath, ext)
	return stem + Suffix + ext
}
