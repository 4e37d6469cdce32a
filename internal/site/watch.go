package site

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits for changes to settle.
const DefaultDebounce = 300 * time.Millisecond

// Watch re-exports the site whenever a file in one of dirs changes, until
// ctx is cancelled. Bursts of events within debounce trigger one export.
// onExport, if non-nil, is called with the outcome of each export.
func (e *Exporter) Watch(ctx context.Context, dirs []string, debounce time.Duration, onExport func(Result, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				e.logger.DebugContext(ctx, "change detected", "path", event.Name, "op", event.Op.String())
				timer.Reset(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			e.logger.WarnContext(ctx, "watcher error", "error", err)
		case <-timer.C:
			res, err := e.Export(ctx)
			if err != nil {
				e.logger.ErrorContext(ctx, "rebuild failed", "error", err)
			}
			if onExport != nil {
				onExport(res, err)
			}
		}
	}
}
