// Package watch re-runs the examples pass when example sources change.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	derrors "git.home.luguber.info/inful/exrunner/internal/errors"
	"git.home.luguber.info/inful/exrunner/internal/examples"
	"git.home.luguber.info/inful/exrunner/internal/logfields"
)

// Watcher triggers a pass after matching files in a directory change.
type Watcher struct {
	dir      string
	suffix   string
	debounce time.Duration
	pass     func(ctx context.Context)

	absDir  string
	waiting bool // dir is missing; its parent is watched instead
}

// New creates a Watcher. pass is called once at start and again after each
// debounced burst of changes; calls never overlap.
func New(dir, suffix string, debounce time.Duration, pass func(ctx context.Context)) *Watcher {
	return &Watcher{dir: dir, suffix: suffix, debounce: debounce, pass: pass}
}

// Run blocks until ctx is cancelled or the underlying watcher fails. A
// missing directory does not stop it: the parent is watched until the
// directory appears, and the pass reports the absence in the meantime.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return derrors.InternalError("file watcher unavailable", err)
	}
	defer func() {
		_ = fw.Close()
	}()

	absDir, err := filepath.Abs(w.dir)
	if err != nil {
		return derrors.DirUnreadable(w.dir, err)
	}
	w.absDir = absDir
	if err := w.attach(fw); err != nil {
		return err
	}

	passReq, trigger, stop := newDebouncer(w.debounce)
	defer stop()

	wctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.worker(wctx, passReq)
	}()
	shutdown := func() {
		cancel()
		<-done
	}
	trigger()

	for {
		select {
		case <-ctx.Done():
			shutdown()
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				shutdown()
				return nil
			}
			changed, err := w.track(fw, ev)
			if err != nil {
				shutdown()
				return err
			}
			if changed || w.relevant(ev) {
				slog.Debug("Example change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
				trigger()
			}
		case err, ok := <-fw.Errors:
			if !ok {
				shutdown()
				return nil
			}
			slog.Warn("watcher error", logfields.Error(err))
		}
	}
}

// attach watches the examples directory, or its parent while it is missing.
func (w *Watcher) attach(fw *fsnotify.Watcher) error {
	err := fw.Add(w.absDir)
	if err == nil {
		if w.waiting {
			_ = fw.Remove(filepath.Dir(w.absDir))
		}
		w.waiting = false
		slog.Info("Watching examples directory", logfields.Dir(w.absDir))
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return derrors.DirUnreadable(w.dir, err)
	}

	parent := filepath.Dir(w.absDir)
	if err := fw.Add(parent); err != nil {
		return derrors.DirUnreadable(w.dir, err)
	}
	w.waiting = true
	slog.Warn("Examples directory missing, waiting for it", logfields.Dir(w.absDir))

	// Created between the failed Add and watching the parent.
	if ok, _ := examples.Exists(w.absDir); ok {
		return w.attach(fw)
	}
	return nil
}

// track follows the examples directory appearing or disappearing and reports
// whether that happened.
func (w *Watcher) track(fw *fsnotify.Watcher, ev fsnotify.Event) (bool, error) {
	if ev.Name != w.absDir {
		return false, nil
	}
	switch {
	case w.waiting && ev.Has(fsnotify.Create):
		if err := w.attach(fw); err != nil {
			return false, err
		}
		return !w.waiting, nil
	case !w.waiting && (ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)):
		_ = fw.Remove(w.absDir)
		if err := w.attach(fw); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// worker serialises passes. passReq has capacity one, so a change arriving
// mid-pass queues exactly one follow-up.
func (w *Watcher) worker(ctx context.Context, passReq <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-passReq:
			if ctx.Err() != nil {
				return
			}
			w.pass(ctx)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	if w.absDir != "" && filepath.Dir(ev.Name) != w.absDir {
		return false
	}
	base := filepath.Base(ev.Name)
	return !shouldIgnore(base) && examples.Matches(base, w.suffix)
}

// newDebouncer returns a request channel, a trigger that fires into it after
// d of quiet, and a stop function for the pending timer.
func newDebouncer(d time.Duration) (chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	req := make(chan struct{}, 1)

	fire := func() {
		select {
		case req <- struct{}{}:
		default:
		}
	}
	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		if d <= 0 {
			fire()
			return
		}
		timer = time.AfterFunc(d, fire)
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return req, trigger, stop
}

// shouldIgnore returns true for hidden and editor temp files.
func shouldIgnore(base string) bool {
	return strings.HasPrefix(base, ".") ||
		strings.HasPrefix(base, "#") ||
		strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx")
}
