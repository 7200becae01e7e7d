// Package watcher ingests files dropped into a watched directory.
//
// Create and write events feed the file through the same upload
// transaction as the HTTP API; removing a file deletes the document
// whose source matches the filename. Events are debounced per path so
// editors that write in several bursts trigger a single ingest.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/passage/internal/core/domain"
	"github.com/custodia-labs/passage/internal/core/ports/driving"
	"github.com/custodia-labs/passage/internal/logger"
)

// DefaultDebounce is how long a path must stay quiet before it is ingested.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches a drop directory and mirrors it into the document store.
type Watcher struct {
	dir       string
	ingest    driving.IngestService
	documents driving.DocumentService
	debounce  time.Duration

	fsw  *fsnotify.Watcher
	done chan struct{}

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides the quiet period before a changed file is ingested.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New creates a watcher for dir. Start must be called before any events
// are processed.
func New(dir string, ingest driving.IngestService, documents driving.DocumentService, opts ...Option) *Watcher {
	w := &Watcher{
		dir:       dir,
		ingest:    ingest,
		documents: documents,
		debounce:  DefaultDebounce,
		done:      make(chan struct{}),
		pending:   make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching. It returns once the directory is registered;
// the event loop runs in a background goroutine until ctx is cancelled
// or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	info, err := os.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: watch path %s is not a directory", domain.ErrInvalidInput, w.dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	w.fsw = fsw

	go w.loop(ctx)

	logger.Info("Watching %s for documents", w.dir)
	return nil
}

// Close stops the watcher and cancels any pending debounced ingests.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)

	w.mu.Lock()
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	if w.fsw != nil {
		return w.fsw.Close()
	}
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Close()
			return
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(ctx, event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if ignored(name) {
		return
	}

	switch {
	case event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Write):
		w.scheduleIngest(ctx, event.Name)
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		w.cancelPending(event.Name)
		w.removeBySource(ctx, name)
	}
}

// scheduleIngest (re)arms the debounce timer for path.
func (w *Watcher) scheduleIngest(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		select {
		case <-w.done:
			return
		default:
		}
		w.ingestFile(ctx, path)
	})
}

func (w *Watcher) cancelPending(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, ok := w.pending[path]; ok {
		timer.Stop()
		delete(w.pending, path)
	}
}

func (w *Watcher) ingestFile(ctx context.Context, path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}

	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Reading %s: %v", path, err)
		return
	}

	summary, err := w.ingest.Ingest(ctx, &domain.RawUpload{
		Filename: filepath.Base(path),
		Content:  content,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedType) {
			logger.Debug("Skipping %s: unsupported type", path)
			return
		}
		logger.Warn("Ingesting %s: %v", path, err)
		return
	}
	logger.Info("Ingested %s as document %s", path, summary.ID)
}

// removeBySource deletes the document whose source label matches the
// removed filename. A file that was never ingested is not an error.
func (w *Watcher) removeBySource(ctx context.Context, source string) {
	summaries, err := w.documents.List(ctx)
	if err != nil {
		logger.Warn("Listing documents after remove of %s: %v", source, err)
		return
	}

	for _, summary := range summaries {
		if summary.Source != source {
			continue
		}
		if err := w.ingest.Delete(ctx, summary.ID); err != nil {
			logger.Warn("Deleting document %s for removed file %s: %v", summary.ID, source, err)
			return
		}
		logger.Info("Deleted document %s for removed file %s", summary.ID, source)
		return
	}
}

// ignored reports whether a filename should never be ingested:
// dotfiles and common editor temp artifacts.
func ignored(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	if strings.HasSuffix(name, "~") || strings.HasSuffix(name, ".swp") || strings.HasSuffix(name, ".tmp") {
		return true
	}
	return false
}
