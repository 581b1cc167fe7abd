// Package stamp holds the shared watermark model: options, per-file tasks,
// the error taxonomy, and output path resolution.
package stamp

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Position is the watermark anchor on each page or sheet.
type Position int

const (
	// PositionCenter places the watermark mid-page, rotated diagonally.
	PositionCenter Position = iota
	// PositionTopLeft places the watermark in the top-left corner.
	PositionTopLeft
	// PositionBottomRight places the watermark in the bottom-right corner.
	PositionBottomRight
)

// ParsePosition converts a CLI/config value into a Position.
func ParsePosition(s string) (Position, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center", "c":
		return PositionCenter, nil
	case "top-left", "topleft", "tl":
		return PositionTopLeft, nil
	case "bottom-right", "bottomright", "br":
		return PositionBottomRight, nil
	default:
		return PositionCenter, fmt.Errorf("unknown position %q — use center, top-left, or bottom-right", s)
	}
}

func (p Position) String() string {
	switch p {
	case PositionTopLeft:
		return "top-left"
	case PositionBottomRight:
		return "bottom-right"
	default:
		return "center"
	}
}

// Options is the watermark configuration shared by all format handlers.
type Options struct {
	Text     string
	Position Position
	Opacity  float64
	FontSize int
	FontFile string // optional TrueType font override for non-Latin text
}

// DefaultOptions returns the built-in watermark defaults.
func DefaultOptions() Options {
	return Options{
		Position: PositionCenter,
		Opacity:  0.30,
		FontSize: 30,
	}
}

// Format identifies one of the supported document kinds.
type Format int

const (
	FormatPDF Format = iota
	FormatWord
	FormatExcel
)

func (f Format) String() string {
	switch f {
	case FormatWord:
		return "Word"
	case FormatExcel:
		return "Excel"
	default:
		return "PDF"
	}
}

// FormatForPath maps a file path to its Format by extension (case-insensitive).
func FormatForPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatWord, nil
	case ".xlsx":
		return FormatExcel, nil
	default:
		return 0, &UnsupportedFormatError{Path: path, Ext: ext}
	}
}

// Request is one invocation's worth of work, built from CLI flags and
// immutable afterwards. Exactly one of Source or Directory is set.
type Request struct {
	Options   Options
	Source    string // single file target
	Directory string // batch root
	OutputDir string
	Overwrite bool
}

// Task is a single file to stamp. Produced by discovery and path resolution,
// consumed once by a format handler.
type Task struct {
	SourcePath string
	RelPath    string
	DestPath   string
	Format     Format
}
