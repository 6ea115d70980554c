// Package watch re-parses a script file whenever it changes on disk. A
// failed parse never evicts state: callers always see the most recent good
// result alongside the most recent error, which is the contract live
// editors rely on while the user is mid-keystroke.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/chatscript-lang/chatscript/runtime/parser"
)

// Update is one re-parse outcome. Result is nil when the parse failed; the
// last good result stays available through Watcher.Last.
type Update struct {
	Result *parser.Result
	Err    error
}

// Watcher owns an fsnotify watcher for a single script file.
type Watcher struct {
	path string
	opts []parser.Option
	fsw  *fsnotify.Watcher

	mu      sync.RWMutex
	last    *parser.Result
	lastErr error

	updates chan Update
}

// New parses the file once and starts watching its directory. Watching the
// directory instead of the file keeps events flowing across the
// rename-and-replace saves editors do.
func New(path string, opts ...parser.Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		opts:    opts,
		fsw:     fsw,
		updates: make(chan Update, 1),
	}
	w.reload()
	return w, nil
}

// Run pumps filesystem events until the context is cancelled or the
// underlying watcher closes.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.fsw.Close() }()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Name != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.publish(Update{Err: err})
		}
	}
}

// Updates delivers one entry per re-parse. The channel holds a single slot;
// when the consumer lags, older updates are dropped in favor of the newest.
func (w *Watcher) Updates() <-chan Update {
	return w.updates
}

// Last returns the most recent good parse and the most recent error. Both
// can be non-nil at once: a good result from an earlier save and the error
// from the latest one.
func (w *Watcher) Last() (*parser.Result, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.last, w.lastErr
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// reload re-reads and re-parses the file. On success it becomes the new
// last-good result; on failure only the error slot changes.
func (w *Watcher) reload() {
	data, err := os.ReadFile(w.path)
	if err == nil {
		var res *parser.Result
		res, err = parser.Parse(string(data), w.opts...)
		if err == nil {
			w.mu.Lock()
			w.last, w.lastErr = res, nil
			w.mu.Unlock()
			w.publish(Update{Result: res})
			return
		}
	}

	w.mu.Lock()
	w.lastErr = err
	w.mu.Unlock()
	w.publish(Update{Err: err})
}

func (w *Watcher) publish(u Update) {
	for {
		select {
		case w.updates <- u:
			return
		default:
			select {
			case <-w.updates:
			default:
			}
		}
	}
}
