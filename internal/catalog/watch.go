package catalog

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce coalesces the burst of events editors emit on save.
const DefaultWatchDebounce = 250 * time.Millisecond

// ReloadFunc receives the freshly parsed catalog, or the error that prevented it.
type ReloadFunc func(*Catalog, error)

// Watch reloads the catalog at path whenever the file is written, created or
// renamed into place, and reports each reload through fn. The parent directory
// is watched so atomic-rename saves are observed. Watch blocks until ctx is
// cancelled.
func Watch(ctx context.Context, path string, debounce time.Duration, fn ReloadFunc) error {
	if path == "" {
		return fmt.Errorf("catalog watch: empty path")
	}
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("catalog watch: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog watch: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("catalog watch %s: %w", filepath.Dir(abs), err)
	}

	// Timer channels are unbuffered since Go 1.23, so Stop and Reset never
	// leave a stale tick behind.
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
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("catalog: watch error: %v", err)
		case <-timer.C:
			fn(Load(abs))
		}
	}
}
