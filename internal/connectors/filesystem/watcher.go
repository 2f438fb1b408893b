package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/summa-cli/internal/core/domain"
	"github.com/custodia-labs/summa-cli/internal/logger"
)

// defaultSettle is how long a file must stay quiet after the last write
// before it is emitted. Editors and downloads produce bursts of write events
// for a single logical drop.
const defaultSettle = 500 * time.Millisecond

// Watcher emits paths of supported documents dropped into a directory.
type Watcher struct {
	dir    string
	settle time.Duration
	fsw    *fsnotify.Watcher

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewWatcher creates a watcher for the given directory.
func NewWatcher(dir string) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close() //nolint:errcheck
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &Watcher{
		dir:    dir,
		settle: defaultSettle,
		fsw:    fsw,
		timers: make(map[string]*time.Timer),
	}, nil
}

// Watch returns a channel emitting paths of supported documents once their
// writes have settled. Receiving stops when ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context) <-chan string {
	out := make(chan string)
	go w.loop(ctx, out)
	return out
}

// Close releases the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) loop(ctx context.Context, out chan<- string) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !watchable(event.Name) {
				continue
			}
			w.schedule(ctx, out, event.Name)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error: %v", err)
		}
	}
}

// schedule arms (or re-arms) the settle timer for a path.
func (w *Watcher) schedule(ctx context.Context, out chan<- string, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Reset(w.settle)
		return
	}

	w.timers[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		select {
		case out <- path:
		case <-ctx.Done():
		}
	})
}

// watchable reports whether a path is a visible file with a supported
// extension.
func watchable(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}

	_, ok := mimeByExtension[strings.ToLower(filepath.Ext(base))]
	return ok
}
