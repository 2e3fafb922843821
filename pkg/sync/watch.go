package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/macropower/rulekit/pkg/document"
)

// Watcher re-runs generation whenever a source document or any file it
// includes changes on disk.
type Watcher struct {
	runner       *Runner
	watcher      *fsnotify.Watcher
	watchedDirs  map[string]struct{}
	watchedFiles map[string]struct{}
}

// NewWatcher creates a [Watcher] for the runner.
func NewWatcher(runner *Runner) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	return &Watcher{
		runner:       runner,
		watcher:      fw,
		watchedDirs:  map[string]struct{}{},
		watchedFiles: map[string]struct{}{},
	}, nil
}

// Close releases the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close() //nolint:wrapcheck // Return the original error.
}

// Watch runs generation once, then blocks re-running it on relevant
// filesystem events until the context is canceled.
func (w *Watcher) Watch(ctx context.Context) error {
	err := w.runOnce(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err() //nolint:wrapcheck // Return the original error.

		case evt, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if !w.isWatched(evt.Name) {
				continue
			}

			// Ignore events that are not related to file content changes.
			if evt.Has(fsnotify.Chmod) {
				continue
			}

			slog.Info("source changed, regenerating", slog.String("path", evt.Name))

			err := w.runOnce(ctx)
			if err != nil {
				slog.Error("regenerate", slog.Any("err", err))
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}

			slog.Error("watch", slog.Any("err", err))
		}
	}
}

// runOnce executes a run and refreshes the watch set from its results: the
// source documents plus everything in the included-files log.
func (w *Watcher) runOnce(ctx context.Context) error {
	result, err := w.runner.Run(ctx)
	if err != nil {
		return err
	}

	paths, err := document.Discover(w.runner.baseDir, w.runner.cfg.Rules.Patterns)
	if err != nil {
		return fmt.Errorf("discover rule documents: %w", err)
	}

	paths = append(paths, result.IncludedFiles()...)

	w.removeWatchers()

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve path %q: %w", p, err)
		}

		dir := filepath.Dir(abs)
		if _, ok := w.watchedDirs[dir]; !ok {
			err = w.watcher.Add(dir)
			if err != nil {
				return fmt.Errorf("add path to watcher: %w", err)
			}

			w.watchedDirs[dir] = struct{}{}
		}

		w.watchedFiles[abs] = struct{}{}
	}

	slog.Debug("added file watchers",
		slog.Int("dirs", len(w.watchedDirs)),
		slog.Int("files", len(w.watchedFiles)),
	)

	return nil
}

// isWatched reports whether the file participated in the last run.
func (w *Watcher) isWatched(path string) bool {
	_, ok := w.watchedFiles[path]

	return ok
}

func (w *Watcher) removeWatchers() {
	for dir := range w.watchedDirs {
		err := w.watcher.Remove(dir)
		if errors.Is(err, fsnotify.ErrNonExistentWatch) {
			continue
		}
		if err != nil {
			slog.Error("remove path from watcher", slog.Any("err", err))
		}
	}

	clear(w.watchedDirs)
	clear(w.watchedFiles)
}
