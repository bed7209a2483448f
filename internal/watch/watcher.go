// Package watch reports debounced changes under the docs root so the site can
// be rebuilt.
package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Filter decides which paths under the root are watched.
type Filter interface {
	Rel(absPath string) (string, bool)
	ShouldIgnoreDir(rel string) bool
	ShouldIgnore(rel string, isDir bool) bool
}

// Watcher recursively watches a directory tree.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	filter    Filter
	root      string
	logger    *slog.Logger
}

// New registers every non-ignored directory under root.
func New(root string, filter Filter, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		debouncer: NewDebouncer(debounce),
		filter:    filter,
		root:      root,
		logger:    logger,
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root {
			if rel, ok := filter.Rel(path); !ok || filter.ShouldIgnoreDir(rel) {
				return filepath.SkipDir
			}
		}
		if watchErr := fsWatcher.Add(path); watchErr != nil {
			w.logger.Warn("failed to watch directory", "path", path, "error", watchErr)
		}
		return nil
	})
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}

	return w, nil
}

// Run delivers batches to onChange until ctx is cancelled. onChange runs on
// the calling goroutine, so batches never overlap.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, batch []Event)) error {
	defer w.debouncer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)

		case batch := <-w.debouncer.Output():
			onChange(ctx, batch)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	rel, ok := w.filter.Rel(event.Name)
	if !ok || rel == "" {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Lstat(event.Name); err == nil && info.IsDir() {
			if w.filter.ShouldIgnoreDir(rel) {
				return
			}
			if err := w.fsWatcher.Add(event.Name); err != nil {
				w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
			}
			// the new directory may already hold files
			w.debouncer.Add(rel, OpCreate)
			return
		}
	}

	if w.filter.ShouldIgnore(rel, false) {
		return
	}

	var op Op
	switch {
	case event.Has(fsnotify.Create):
		op = OpCreate
	case event.Has(fsnotify.Write):
		op = OpWrite
	case event.Has(fsnotify.Remove):
		op = OpRemove
	case event.Has(fsnotify.Rename):
		op = OpRename
	default:
		return
	}

	w.logger.Debug("change detected", "path", rel, "op", op)
	w.debouncer.Add(rel, op)
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}
