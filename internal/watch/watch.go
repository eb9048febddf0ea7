// Package watch re-runs a command when plan files change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/pablasso/plankit/internal/logging"
)

// DefaultDebounce is how long to wait for more changes before a flush.
const DefaultDebounce = 200 * time.Millisecond

// Config configures a Watcher.
type Config struct {
	// Dir is the directory to watch. Subdirectories are not watched.
	Dir string
	// Match selects the file names that trigger a run. Nil matches all.
	Match func(name string) bool
	// Debounce is how long to wait for more changes before a flush.
	Debounce time.Duration
	Logger   *log.Logger
}

// Watcher collects file changes and reports them in debounced batches.
type Watcher struct {
	config  Config
	watcher *fsnotify.Watcher
	logger  *log.Logger
	pending map[string]fsnotify.Op
}

// New creates a watcher on config.Dir.
func New(config Config) (*Watcher, error) {
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	logger := config.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(config.Dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", config.Dir, err)
	}

	return &Watcher{
		config:  config,
		watcher: fsw,
		logger:  logger,
		pending: make(map[string]fsnotify.Op),
	}, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Run blocks until ctx is done, calling onChange with the sorted paths that
// changed since the previous call. An error from onChange stops the loop.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, paths []string) error) error {
	ticker := time.NewTicker(w.config.Debounce)
	defer ticker.Stop()

	w.logger.Debug("watching", "dir", w.config.Dir, "debounce", w.config.Debounce)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "err", err)

		case <-ticker.C:
			paths := w.flush()
			if len(paths) == 0 {
				continue
			}
			if err := onChange(ctx, paths); err != nil {
				return err
			}
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}
	name := filepath.Base(event.Name)
	if w.config.Match != nil && !w.config.Match(name) {
		return
	}
	w.pending[event.Name] |= event.Op
	w.logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
}

func (w *Watcher) flush() []string {
	if len(w.pending) == 0 {
		return nil
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	w.pending = make(map[string]fsnotify.Op)
	return paths
}
