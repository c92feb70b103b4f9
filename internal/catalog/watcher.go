package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/yildizm/bookrec/internal/logger"
)

// DefaultDebounce collapses the burst of events editors emit on save
const DefaultDebounce = 200 * time.Millisecond

// Watcher reloads a catalog file whenever it changes on disk
type Watcher struct {
	path     string
	debounce time.Duration
	onReload func(*Catalog)
	log      *logger.Logger
}

// NewWatcher creates a watcher for path; onReload receives each successfully parsed catalog
func NewWatcher(path string, onReload func(*Catalog), log *logger.Logger) (*Watcher, error) {
	if err := validateWatchPath(path); err != nil {
		return nil, fmt.Errorf("invalid catalog path: %w", err)
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Watcher{
		path:     filepath.Clean(path),
		debounce: DefaultDebounce,
		onReload: onReload,
		log:      log.WithComponent("catalog-watch"),
	}, nil
}

// SetDebounce overrides the quiet period before reloading
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run blocks until ctx is cancelled or the watcher fails.
// The parent directory is watched because editors often replace the file
// rather than writing it in place.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			w.log.Warn("failed to close watcher: %v", err)
		}
	}()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}
	w.log.Debug("watching %s", w.path)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			w.reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.Warn("watcher error: %v", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *Watcher) reload() {
	c, err := Load(w.path)
	if err != nil {
		// keep serving the previous catalog
		w.log.WarnWithFields("reload failed", []logger.Field{logger.Error(err)})
		return
	}
	w.log.InfoWithFields("catalog reloaded", []logger.Field{logger.Count(len(c.books))})
	if w.onReload != nil {
		w.onReload(c)
	}
}

func validateWatchPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}
	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}
	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot watch directory, must be a file")
	}
	return nil
}
