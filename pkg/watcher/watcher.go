// Package watcher turns raw filesystem events on skill directories into a
// single debounced "changed" signal. A burst of events (editors typically
// write several times in quick succession) collapses into one callback once
// the directories have been quiet for the debounce interval.
package watcher

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/skillman-dev/skillman/pkg/logger"
)

// DefaultDebounce is the quiet period required before the change callback fires.
const DefaultDebounce = 500 * time.Millisecond

// Notifier watches a set of directories and invokes its callback after
// changes settle. The callback runs on a timer goroutine; it must hand off
// catalog rebuilding elsewhere and must not call Watch synchronously while a
// rebuild is re-arming the watch set from another goroutine of its own.
type Notifier struct {
	debounce time.Duration
	onChange func()

	mu      sync.Mutex // guards fsw, stopped, and arming/teardown
	fsw     *fsnotify.Watcher
	stopped bool
	loopWG  sync.WaitGroup

	timerMu sync.Mutex
	timer   *time.Timer
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithDebounce overrides the debounce interval.
func WithDebounce(d time.Duration) Option {
	return func(n *Notifier) { n.debounce = d }
}

// New creates a notifier that calls onChange after watched paths settle.
func New(onChange func(), opts ...Option) *Notifier {
	n := &Notifier{
		debounce: DefaultDebounce,
		onChange: onChange,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Watch arms watching on the given paths, first tearing down any handles
// from a previous call (there is no incremental diffing of watch sets).
// Paths that do not exist yet are silently skipped; callers re-arm when the
// set of interesting paths changes. After Stop, Watch is a no-op: a debounce
// callback still in flight cannot re-arm a stopped notifier.
func (n *Notifier) Watch(ctx context.Context, paths []string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.stopped {
		return nil
	}

	n.teardownLocked()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}

	watched := 0
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := fsw.Add(path); err != nil {
			logger.G(ctx).WithError(err).WithField("path", path).Warn("Failed to watch path")
			continue
		}
		watched++
	}
	logger.G(ctx).WithField("paths", watched).Debug("File watcher armed")

	n.fsw = fsw
	n.loopWG.Add(1)
	go n.run(ctx, fsw)
	return nil
}

// Stop releases all watch handles and cancels any pending debounce timer.
// The notifier stays stopped: later Watch calls are no-ops. Safe to call
// multiple times.
func (n *Notifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopped = true
	n.teardownLocked()
}

// teardownLocked closes the current fsnotify watcher and joins its event
// loop so descriptors are released deterministically. Caller holds n.mu.
func (n *Notifier) teardownLocked() {
	if n.fsw != nil {
		_ = n.fsw.Close()
		n.fsw = nil
	}
	n.loopWG.Wait()

	n.timerMu.Lock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.timerMu.Unlock()
}

func (n *Notifier) run(ctx context.Context, fsw *fsnotify.Watcher) {
	defer n.loopWG.Done()
	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				n.schedule()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.G(ctx).WithError(err).Error("File watcher error")
		}
	}
}

// schedule (re)starts the debounce timer; only when it elapses with no
// further events does the callback fire, exactly once per burst.
func (n *Notifier) schedule() {
	n.timerMu.Lock()
	defer n.timerMu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = time.AfterFunc(n.debounce, func() {
		if n.onChange != nil {
			n.onChange()
		}
	})
}
