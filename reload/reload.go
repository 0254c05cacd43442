// Package reload watches data files and reports changes after a quiet
// period, so that a burst of writes triggers a single reload.
package reload

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is the quiet period after the last change of a file.
const DefaultDelay = 100 * time.Millisecond

// Watcher watches a set of files. Directories, not files, are registered
// with the operating system so that files replaced by rename are noticed.
type Watcher struct {
	files    map[string]bool
	delay    time.Duration
	onChange func(changed []string)
	watcher  *fsnotify.Watcher
	ctx      context.Context
	cancel   context.CancelFunc
	errChan  chan error
	loopDone chan struct{}

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]bool
	closed  bool
	running sync.WaitGroup // onChange calls in flight
}

// Option configures a watcher.
type Option func(*Watcher)

// WithDelay sets the debounce delay.
func WithDelay(d time.Duration) Option {
	return func(w *Watcher) { w.delay = d }
}

// New creates a watcher for paths. onChange receives the sorted list of
// files changed within one quiet period. It runs on a timer goroutine and
// must not call Close.
func New(paths []string, onChange func(changed []string), opts ...Option) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		files:    make(map[string]bool, len(paths)),
		delay:    DefaultDelay,
		onChange: onChange,
		ctx:      ctx,
		cancel:   cancel,
		errChan:  make(chan error, 1),
		loopDone: make(chan struct{}),
		pending:  make(map[string]bool),
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		w.files[filepath.Clean(p)] = true
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Files returns the watched files.
func (w *Watcher) Files() []string {
	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Start registers the directories of all files and starts watching.
func (w *Watcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	dirs := make(map[string]bool)
	for f := range w.files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("watch directory %s: %w", dir, err)
		}
	}
	w.watcher = watcher
	go w.watchLoop()
	return nil
}

func (w *Watcher) watchLoop() {
	defer close(w.loopDone)
	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			name := filepath.Clean(event.Name)
			if !w.files[name] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule(name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errChan <- err:
			default:
			}
		}
	}
}

func (w *Watcher) schedule(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.pending[name] = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	if w.closed || len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	changed := make([]string, 0, len(w.pending))
	for name := range w.pending {
		changed = append(changed, name)
	}
	w.pending = make(map[string]bool)
	w.running.Add(1)
	w.mu.Unlock()
	defer w.running.Done()
	sort.Strings(changed)
	if w.onChange != nil {
		w.onChange(changed)
	}
}

// Errors returns a channel for receiving errors that occur during watching.
func (w *Watcher) Errors() <-chan error {
	return w.errChan
}

// Close stops the watcher and releases resources. Pending changes are
// dropped. A change callback already running is waited for.
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	w.running.Wait()
	w.cancel()
	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	<-w.loopDone
	return err
}
