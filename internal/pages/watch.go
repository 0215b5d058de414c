package pages

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a Set whenever a page template in dir changes.
type Watcher struct {
	set      *Set
	dir      string
	debounce time.Duration
	log      *zap.Logger
	onReload func(error)

	fsw      *fsnotify.Watcher
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

type WatcherOption func(*Watcher)

func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

func WithLogger(l *zap.Logger) WatcherOption {
	return func(w *Watcher) { w.log = l }
}

// OnReload is called after every reload attempt with its result.
func OnReload(fn func(error)) WatcherOption {
	return func(w *Watcher) { w.onReload = fn }
}

// NewWatcher watches dir, which must be the directory set was loaded from.
func NewWatcher(set *Set, dir string, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		set:      set,
		dir:      dir,
		debounce: 300 * time.Millisecond,
		log:      zap.NewNop(),
		done:     make(chan struct{}),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("pages watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("pages watcher: watch %s: %w", w.dir, err)
	}
	w.fsw = fsw
	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop ends the watcher. It is safe to call more than once.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() { close(w.done) })
	w.wg.Wait()
	if w.fsw != nil {
		return w.fsw.Close()
	}
	return nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	// Editors often write a file in several steps; collapse a burst of
	// events into one reload.
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !pageFile.MatchString(filepath.Base(ev.Name)) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("pages watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			err := w.set.Reload()
			if err != nil {
				w.log.Error("reloading pages failed, keeping previous set", zap.Error(err))
			} else {
				w.log.Info("pages reloaded", zap.Int("pages", w.set.Len()))
			}
			if w.onReload != nil {
				w.onReload(err)
			}
		}
	}
}
