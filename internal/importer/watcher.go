package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gtmaihackathon/internal-link-suggester/internal/contextutil"
)

// DefaultDebounce collapses bursts of writes from a single save.
const DefaultDebounce = 500 * time.Millisecond

// ReloadFunc re-imports the watched file.
type ReloadFunc func(ctx context.Context, path string) error

// Watcher re-imports an import file whenever it changes on disk.
//
// The parent directory is watched rather than the file itself so that
// editors which save by renaming a temporary file are still noticed.
type Watcher struct {
	path     string
	reload   ReloadFunc
	debounce time.Duration
}

// NewWatcher creates a watcher for path.
func NewWatcher(path string, reload ReloadFunc) *Watcher {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	return &Watcher{path: abs, reload: reload, debounce: DefaultDebounce}
}

// Run watches until ctx is cancelled. Reload errors are logged and do not
// stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	logger := contextutil.LoggerFromContext(ctx)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		_ = fw.Close()
	}()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}
	logger.InfoContext(ctx, "watching import file", "path", w.path)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				timer.Reset(w.debounce)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.WarnContext(ctx, "file watcher error", "error", err)
		case <-timer.C:
			if err := w.reload(ctx, w.path); err != nil {
				logger.ErrorContext(ctx, "failed to reload import file", "path", w.path, "error", err)
				continue
			}
			logger.InfoContext(ctx, "reloaded import file", "path", w.path)
		}
	}
}

// relevant reports whether event touches the watched file's contents.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
