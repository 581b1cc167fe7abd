// Package watch monitors directories and stamps supported documents as they
// appear or change.
package watch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/klytics/stampkit/internal/fs"
	"github.com/klytics/stampkit/internal/stamp"
)

// Event records one handled file event.
type Event struct {
	Time   time.Time `json:"time"`
	Path   string    `json:"path"`
	Status string    `json:"status"` // "processed", "error", "skipped"
	Error  string    `json:"error,omitempty"`
}

// Handler stamps one file. Errors are logged and recorded per event; they
// never stop the watch loop.
type Handler func(path string) error

// Watcher monitors directories for supported documents and hands matching
// paths to the Handler after a debounce window.
type Watcher struct {
	Dirs      []string
	Recursive bool
	Debounce  time.Duration
	Handler   Handler
	Logger    *log.Logger

	// SkipDir marks subtrees the watcher must ignore, typically the output
	// directory, so freshly written results are not stamped again.
	SkipDir string

	mu       sync.Mutex
	events   []Event
	watcher  *fsnotify.Watcher
	debounce map[string]*time.Timer
	stamped  map[string]time.Time
}

// New creates a Watcher.
func New(dirs []string, handler Handler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}

	return &Watcher{
		Dirs:      dirs,
		Recursive: true,
		Debounce:  500 * time.Millisecond,
		Handler:   handler,
		Logger:    log.New(os.Stderr, "[watch] ", log.LstdFlags),
		watcher:   fsw,
		debounce:  make(map[string]*time.Timer),
		stamped:   make(map[string]time.Time),
	}, nil
}

// Start begins watching. It blocks until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	defer w.watcher.Close()

	for _, dir := range w.Dirs {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("could not resolve %s: %w", dir, err)
		}
		if w.Recursive {
			if err := w.addRecursive(absDir); err != nil {
				return err
			}
		} else if err := w.watcher.Add(absDir); err != nil {
			return fmt.Errorf("could not watch %s: %w", absDir, err)
		}
	}

	w.Logger.Printf("watching %d directories", len(w.Dirs))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.Printf("watch error: %v", err)
		}
	}
}

// Events returns a copy of the handled events so far.
func (w *Watcher) Events() []Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Event, len(w.events))
	copy(out, w.events)
	return out
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if w.skipPath(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("could not watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}

	// Newly created directories join the watch set.
	if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
		if w.Recursive && event.Op&fsnotify.Create != 0 && !w.skipPath(event.Name) {
			_ = w.watcher.Add(event.Name)
		}
		return
	}

	if !ShouldProcess(event.Name) || w.skipPath(event.Name) {
		return
	}

	// Debounce: editors and copies fire several events per file.
	w.mu.Lock()
	// A path the handler just stamped in place fires its own Create/Write
	// events; swallowing them keeps overwrite mode from re-queueing the file.
	if at, ok := w.stamped[event.Name]; ok {
		if time.Since(at) < 2*w.Debounce {
			w.mu.Unlock()
			return
		}
		delete(w.stamped, event.Name)
	}
	if t, ok := w.debounce[event.Name]; ok {
		t.Stop()
	}
	w.debounce[event.Name] = time.AfterFunc(w.Debounce, func() {
		w.process(event.Name)
	})
	w.mu.Unlock()
}

func (w *Watcher) process(path string) {
	// Marked before the handler runs so events it raises while writing the
	// file are already suppressed, and refreshed after so stragglers are too.
	w.mu.Lock()
	delete(w.debounce, path)
	w.stamped[path] = time.Now()
	w.mu.Unlock()

	ev := Event{Time: time.Now(), Path: path, Status: "processed"}
	if err := w.Handler(path); err != nil {
		ev.Status = "error"
		ev.Error = err.Error()
		w.Logger.Printf("failed %s: %v", path, err)
	} else {
		w.Logger.Printf("stamped %s", path)
	}

	w.mu.Lock()
	w.stamped[path] = time.Now()
	w.events = append(w.events, ev)
	w.mu.Unlock()
}

func (w *Watcher) skipPath(path string) bool {
	if w.SkipDir == "" {
		return false
	}
	rel, err := filepath.Rel(w.SkipDir, path)
	if err != nil {
		return false
	}
	return rel == "." || !strings.HasPrefix(rel, "..")
}

// ShouldProcess reports whether a path is a stampable document: supported
// extension, not hidden, not an Office lock file, and not an output this tool
// produced itself.
func ShouldProcess(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := fs.SupportedExtensions[ext]; !ok {
		return false
	}
	if stamp.IsOverwriteTmp(name) {
		return false
	}
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return !strings.HasSuffix(stem, stamp.Suffix)
}
