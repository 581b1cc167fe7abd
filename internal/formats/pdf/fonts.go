package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/font"
)

// fontCandidates are well-known TrueType fonts with broad CJK coverage,
// probed in order when the watermark text needs glyphs beyond the core
// PDF fonts.
var fontCandidates = []string{
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	"/usr/share/fonts/truetype/wqy/wqy-zenhei.ttc",
	"/usr/share/fonts/truetype/arphic/uming.ttc",
	"/System/Library/Fonts/PingFang.ttc",
	"/Library/Fonts/Arial Unicode.ttf",
	`C:\Windows\Fonts\msyh.ttc`,
	`C:\Windows\Fonts\simhei.ttf`,
}

// needsUnicodeFont reports whether text falls outside the WinAnsi range the
// PDF core fonts can encode.
func needsUnicodeFont(text string) bool {
	for _, r := range text {
		if r > 0x00FF {
			return true
		}
	}
	return false
}

// LookupFontFile returns the first Unicode-capable font file present on this
// system, if any.
func LookupFontFile() (string, bool) {
	for _, p := range fontCandidates {
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

// EnsureUnicodeFont makes a Unicode-capable user font available to pdfcpu and
// returns its registered name. An explicit font file takes precedence;
// otherwise an already-installed user font is reused before the system
// candidates are probed.
func EnsureUnicodeFont(explicit string) (string, error) {
	_ = font.LoadUserFonts()

	if explicit != "" {
		return install(explicit)
	}

	if names := font.UserFontNames(); len(names) > 0 {
		sort.Strings(names)
		return names[0], nil
	}

	for _, p := range fontCandidates {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		name, err := install(p)
		if err != nil {
			continue
		}
		return name, nil
	}

	return "", fmt.Errorf("no Unicode-capable TrueType font found — install one (e.g. Noto Sans CJK) or set --font")
}

// install registers a TrueType font file with pdfcpu and returns the name it
// was registered under.
func install(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("font file not found: %s", path)
	}

	before := make(map[string]bool)
	for _, n := range font.UserFontNames() {
		before[n] = true
	}

	if err := api.InstallFonts([]string{path}); err != nil {
		return "", fmt.Errorf("could not install font %s: %w", path, err)
	}

	for _, n := range font.UserFontNames() {
		if !before[n] {
			return n, nil
		}
	}

	// Already installed in a previous run; fall back to the file's base name,
	// which is how pdfcpu keys single-face fonts.
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)), nil
}
