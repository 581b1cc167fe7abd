package watch

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestShouldProcess(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"report.docx", true},
		{"data.xlsx", true},
		{"scan.pdf", true},
		{"Report.DOCX", true},
		{"notes.txt", false},
		{"slides.pptx", false},
		{".hidden.docx", false},
		{"~$report.docx", false},
		{"report_watermarked.docx", false},
		{"report_watermarked.pdf", false},
		{"report.stamptmp.docx", false},
		{"book.stamptmp.xlsx", false},
		{filepath.Join("some", "dir", "file.pdf"), true},
		{"noextension", false},
	}

	for _, c := range cases {
		if got := ShouldProcess(c.path); got != c.want {
			t.Errorf("ShouldProcess(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestSkipPath(t *testing.T) {
	w := &Watcher{SkipDir: "/out/stamped"}

	cases := []struct {
		path string
		want bool
	}{
		{"/out/stamped", true},
		{"/out/stamped/a.docx", true},
		{"/out/stamped/sub/b.docx", true},
		{"/out/other/a.docx", false},
		{"/src/a.docx", false},
	}

	for _, c := range cases {
		if got := w.skipPath(c.path); got != c.want {
			t.Errorf("skipPath(%q) = %v, want %v", c.path, got, c.want)
		}
	}

	empty := &Watcher{}
	if empty.skipPath("/anywhere/a.docx") {
		t.Error("empty SkipDir must never skip")
	}
}

func TestWatcherProcessesNewFile(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var handled []string
	w, err := New([]string{dir}, func(path string) error {
		mu.Lock()
		handled = append(handled, path)
		mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	w.Debounce = 50 * time.Millisecond
	w.Logger = log.New(os.Stderr, "", 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Start(ctx)
	}()

	// Give Start a moment to register the directory.
	time.Sleep(200 * time.Millisecond)

	target := filepath.Join(dir, "doc.docx")
	if err := os.WriteFile(target, []byte("zip content placeholder"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ignore.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := len(handled)
		mu.Unlock()
		if n > 0 {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	if len(handled) != 1 {
		t.Fatalf("expected exactly 1 handled file, got %v", handled)
	}
	if handled[0] != target {
		t.Errorf("handled %q, want %q", handled[0], target)
	}

	events := w.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Status != "processed" {
		t.Errorf("event status = %q", events[0].Status)
	}
}

// A handler that stamps in place rewrites the file it was given, which raises
// fresh Create/Write events. Those must not re-queue the file or the same
// document is stamped over and over.
func TestWatcherInPlaceRewriteFiresOnce(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	calls := 0
	w, err := New([]string{dir}, func(path string) error {
		mu.Lock()
		calls++
		mu.Unlock()
		tmp := path + ".tmp"
		if err := os.WriteFile(tmp, []byte("rewritten in place"), 0644); err != nil {
			return err
		}
		return os.Rename(tmp, path)
	})
	if err != nil {
		t.Fatal(err)
	}
	w.Debounce = 50 * time.Millisecond
	w.Logger = log.New(os.Stderr, "", 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Start(ctx)
	}()
	time.Sleep(200 * time.Millisecond)

	target := filepath.Join(dir, "doc.docx")
	if err := os.WriteFile(target, []byte("original"), 0644); err != nil {
		t.Fatal(err)
	}

	// Long enough for several debounce windows to elapse after the first
	// stamp; a feedback loop would keep incrementing calls throughout.
	time.Sleep(1 * time.Second)

	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("handler ran %d times for one external write, want 1", calls)
	}
}

func TestWatcherRecordsHandlerError(t *testing.T) {
	dir := t.TempDir()

	w, err := New([]string{dir}, func(path string) error {
		return os.ErrPermission
	})
	if err != nil {
		t.Fatal(err)
	}
	w.Debounce = 50 * time.Millisecond
	w.Logger = log.New(os.Stderr, "", 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Start(ctx)
	}()
	time.Sleep(200 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "bad.xlsx"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if len(w.Events()) > 0 {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	cancel()
	<-done

	events := w.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Status != "error" {
		t.Errorf("event status = %q, want error", events[0].Status)
	}
	if events[0].Error == "" {
		t.Error("event should carry the handler error")
	}
}
