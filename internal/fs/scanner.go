// Package fs discovers watermarkable documents under a directory tree.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SupportedExtensions maps the recognized extensions to a display name.
var SupportedExtensions = map[string]string{
	".pdf":  "PDF",
	".docx": "Word",
	".xlsx": "Excel",
}

// Entry is one discovered document.
type Entry struct {
	Path    string `json:"path"`    // absolute path
	RelPath string `json:"relPath"` // path relative to the scanned root
	Format  string `json:"format"`
	Size    int64  `json:"size"`
}

// Discover walks root recursively and returns every supported document,
// sorted lexically by relative path so batch order is deterministic.
//
// Files with unrecognized extensions are skipped silently, as are hidden
// directories, hidden files, and Office ~$ lock files. The traversal holds no
// state; each call recomputes the listing.
func Discover(root string) ([]Entry, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("could not resolve path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("could not access %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	var entries []Entry
	walkFn := func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		format, ok := SupportedExtensions[ext]
		if !ok {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		finfo, err := d.Info()
		if err != nil {
			return nil
		}

		entries = append(entries, Entry{
			Path:    path,
			RelPath: rel,
			Format:  format,
			Size:    finfo.Size(),
		})
		return nil
	}

	if err := filepath.WalkDir(root, walkFn); err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RelPath < entries[j].RelPath
	})

	return entries, nil
}
