// Package watcher notices edits to the guide document so the running UI can
// swap in the new content. It uses fsnotify and falls back to polling on
// network filesystems or when ALERTGUIDE_FORCE_POLL is set.
package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vanderheijden86/alertguide/pkg/debug"
)

// DefaultPollInterval is the default polling interval for fallback mode.
const DefaultPollInterval = 2 * time.Second

var (
	ErrFileRemoved    = errors.New("watched file was removed")
	ErrPermission     = errors.New("permission denied")
	ErrAlreadyStarted = errors.New("watcher already started")
)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounceDuration sets the debounce duration.
func WithDebounceDuration(d time.Duration) Option {
	return func(w *Watcher) { w.debounceDuration = d }
}

// WithPollInterval sets the polling interval for fallback mode.
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) { w.pollInterval = d }
}

// WithOnChange sets the callback invoked after a debounced change.
func WithOnChange(fn func()) Option {
	return func(w *Watcher) { w.onChange = fn }
}

// WithOnError sets the callback invoked on watch errors.
func WithOnError(fn func(error)) Option {
	return func(w *Watcher) { w.onError = fn }
}

// WithForcePoll forces polling mode even if fsnotify is available.
func WithForcePoll(force bool) Option {
	return func(w *Watcher) { w.forcePoll = force }
}

// Watcher monitors one file.
type Watcher struct {
	path             string
	debounceDuration time.Duration
	pollInterval     time.Duration
	onChange         func()
	onError          func(error)
	forcePoll        bool

	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	polling   bool
	fsType    FilesystemType
	lastMtime time.Time
	lastSize  int64

	cancel   context.CancelFunc
	started  bool
	mu       sync.RWMutex
	changeCh chan struct{}
}

// New creates a watcher for path. Call Start to begin watching.
func New(path string, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:             absPath,
		debounceDuration: DefaultDebounceDuration,
		pollInterval:     DefaultPollInterval,
		onChange:         func() {},
		onError:          func(error) {},
		changeCh:         make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.debouncer = NewDebouncer(w.debounceDuration)
	return w, nil
}

// Start begins watching the file for changes.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return ErrAlreadyStarted
	}

	info, err := os.Stat(w.path)
	switch {
	case err == nil:
		w.lastMtime = info.ModTime()
		w.lastSize = info.Size()
	case os.IsPermission(err):
		return ErrPermission
	default:
		// Not created yet; the first write will be reported.
		w.lastMtime = time.Time{}
		w.lastSize = 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	w.fsType = DetectFilesystemType(w.path)
	w.polling = w.forcePoll || envBool("ALERTGUIDE_FORCE_POLL") || isRemoteFilesystem(w.fsType)

	if !w.polling {
		fsw, err := fsnotify.NewWatcher()
		if err == nil {
			// Watch the directory: editors replace files with atomic renames.
			if err = fsw.Add(filepath.Dir(w.path)); err != nil {
				fsw.Close()
			}
		}
		if err != nil {
			debug.Log("watcher: fsnotify unavailable for %s, polling: %v", w.path, err)
			w.polling = true
		} else {
			w.fsWatcher = fsw
			go w.watchFsnotify(ctx, fsw)
		}
	}
	if w.polling {
		go w.watchPolling(ctx)
	}

	debug.Log("watcher: watching %s (fs=%s polling=%v)", w.path, w.fsType, w.polling)
	w.started = true
	return nil
}

// Stop stops watching. The Changed channel is left open so a receiver
// blocked on it is not woken with a spurious change.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		return
	}
	w.cancel()
	if w.fsWatcher != nil {
		w.fsWatcher.Close()
		w.fsWatcher = nil
	}
	w.debouncer.Cancel()
	w.started = false
}

// IsPolling returns true if the watcher is using polling mode.
func (w *Watcher) IsPolling() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.polling
}

// IsStarted returns true if the watcher is running.
func (w *Watcher) IsStarted() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.started
}

// Changed returns a channel that receives after each debounced change.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changeCh
}

// Path returns the absolute watched path.
func (w *Watcher) Path() string {
	return w.path
}

func (w *Watcher) watchFsnotify(ctx context.Context, fsw *fsnotify.Watcher) {
	target := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			switch {
			case event.Has(fsnotify.Remove):
				w.onError(ErrFileRemoved)
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
				w.debouncer.Trigger(w.notifyChange)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

func (w *Watcher) watchPolling(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		info, err := os.Stat(w.path)
		if err != nil {
			switch {
			case os.IsNotExist(err):
				w.mu.RLock()
				hadFile := !w.lastMtime.IsZero()
				w.mu.RUnlock()
				if hadFile {
					w.onError(ErrFileRemoved)
				}
			case os.IsPermission(err):
				w.onError(ErrPermission)
			default:
				w.onError(err)
			}
			continue
		}

		w.mu.Lock()
		changed := info.ModTime().After(w.lastMtime) || info.Size() != w.lastSize
		if changed {
			w.lastMtime = info.ModTime()
			w.lastSize = info.Size()
		}
		w.mu.Unlock()

		if changed {
			w.debouncer.Trigger(w.notifyChange)
		}
	}
}

func (w *Watcher) notifyChange() {
	if !w.IsStarted() {
		return
	}
	w.onChange()
	select {
	case w.changeCh <- struct{}{}:
	default:
	}
}

func envBool(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}
