package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/klytics/stampkit/internal/formats/docx"
)

func setupTestHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	viper.Reset()
	t.Cleanup(func() {
		viper.Reset()
	})
}

func writeDocx(t *testing.T, path string) {
	t.Helper()
	data, err := docx.WriteDocument(&docx.Document{Paragraphs: []string{"Body"}})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func runRoot(t *testing.T, args ...string) error {
	t.Helper()
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestRootRequiresText(t *testing.T) {
	setupTestHome(t)

	err := runRoot(t, "somefile.pdf")
	if err == nil {
		t.Fatal("expected error without --text")
	}
	if !strings.Contains(err.Error(), "text is required") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRootRequiresTarget(t *testing.T) {
	setupTestHome(t)

	err := runRoot(t, "-t", "DRAFT")
	if err == nil {
		t.Fatal("expected error without a file or directory")
	}
	if !strings.Contains(err.Error(), "nothing to do") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRootRejectsFileAndDirectory(t *testing.T) {
	setupTestHome(t)

	err := runRoot(t, "-t", "DRAFT", "-d", t.TempDir(), "file.pdf")
	if err == nil {
		t.Fatal("expected error for file plus --directory")
	}
	if !strings.Contains(err.Error(), "not both") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRootRejectsOutputWithOverwrite(t *testing.T) {
	setupTestHome(t)

	err := runRoot(t, "-t", "DRAFT", "-d", t.TempDir(), "-o", "out", "--overwrite")
	if err == nil {
		t.Fatal("expected error for -o with --overwrite")
	}
	if !strings.Contains(err.Error(), "mutually exclusive") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRootRejectsMissingPath(t *testing.T) {
	setupTestHome(t)

	err := runRoot(t, "-t", "DRAFT", filepath.Join(t.TempDir(), "nope.pdf"))
	if err == nil {
		t.Fatal("expected error for nonexistent target")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRootRejectsInvalidPosition(t *testing.T) {
	setupTestHome(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "a.docx")
	writeDocx(t, src)

	err := runRoot(t, "-t", "DRAFT", "--position", "middle", src)
	if err == nil {
		t.Fatal("expected error for unknown position")
	}
	if !strings.Contains(err.Error(), "unknown position") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRootStampsSingleFile(t *testing.T) {
	setupTestHome(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "report.docx")
	writeDocx(t, src)

	if err := runRoot(t, "-t", "CONFIDENTIAL", src); err != nil {
		t.Fatalf("stamp failed: %v", err)
	}

	out := filepath.Join(dir, "report_watermarked.docx")
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("output not created: %v", err)
	}

	text, err := docx.ExtractTextFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "CONFIDENTIAL") {
		t.Errorf("watermark missing, got %q", text)
	}
}

func TestRootStampsDirectory(t *testing.T) {
	setupTestHome(t)

	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "stamped")
	writeDocx(t, filepath.Join(dir, "a.docx"))
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	writeDocx(t, filepath.Join(dir, "sub", "b.docx"))

	if err := runRoot(t, "-t", "DRAFT", "-d", dir, "-o", out); err != nil {
		t.Fatalf("stamp failed: %v", err)
	}

	for _, rel := range []string{"a.docx", filepath.Join("sub", "b.docx")} {
		if _, err := os.Stat(filepath.Join(out, rel)); err != nil {
			t.Errorf("missing mirrored output %s: %v", rel, err)
		}
	}
}

func TestRootFailureExitsNonZero(t *testing.T) {
	setupTestHome(t)

	dir := t.TempDir()
	bad := filepath.Join(dir, "broken.docx")
	if err := os.WriteFile(bad, []byte("not a zip"), 0644); err != nil {
		t.Fatal(err)
	}

	err := runRoot(t, "-t", "DRAFT", bad)
	if err == nil {
		t.Fatal("expected error for corrupt input")
	}
	if !strings.Contains(err.Error(), "failed") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRootProfileFlag(t *testing.T) {
	setupTestHome(t)

	home := os.Getenv("HOME")
	if err := os.MkdirAll(filepath.Join(home, ".stampkit"), 0755); err != nil {
		t.Fatal(err)
	}
	profiles := "profiles:\n  - name: conf\n    text: SECRET\n"
	if err := os.WriteFile(filepath.Join(home, ".stampkit", "profiles.yaml"), []byte(profiles), 0644); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	src := filepath.Join(dir, "a.docx")
	writeDocx(t, src)

	// Profile supplies the text, so no -t needed.
	if err := runRoot(t, "--profile", "conf", src); err != nil {
		t.Fatalf("stamp failed: %v", err)
	}

	text, err := docx.ExtractTextFile(filepath.Join(dir, "a_watermarked.docx"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "SECRET") {
		t.Errorf("profile text missing, got %q", text)
	}
}

func TestRootUnknownProfile(t *testing.T) {
	setupTestHome(t)

	home := os.Getenv("HOME")
	if err := os.MkdirAll(filepath.Join(home, ".stampkit"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(home, ".stampkit", "profiles.yaml"), []byte("profiles:\n  - name: a\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := runRoot(t, "--profile", "nope", "file.pdf")
	if err == nil {
		t.Fatal("expected error for unknown profile")
	}
	if !strings.Contains(err.Error(), "no profile named") {
		t.Errorf("unexpected error: %v", err)
	}
}
