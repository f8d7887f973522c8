package backend

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nitidus-mail/nitidus/internal/logging"
	"github.com/nitidus-mail/nitidus/internal/logging/events"
	"github.com/nitidus-mail/nitidus/internal/mail"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindEnvelopes Kind = iota
	KindFolders
)

const (
	TriggerStart  = "start"
	TriggerTick   = "tick"
	TriggerChange = "change"

	defaultThrottle = 250 * time.Millisecond
)

// Event conveys updated data or an error from a backend poll. Envelope
// events carry []mail.Envelope, folder events []string.
type Event struct {
	Kind    Kind
	Folder  string
	Trigger string
	Data    interface{}
	Err     error
}

// Options configures a Watcher.
type Options struct {
	Folder   string
	PageSize int
	// Interval between polls. Zero disables polling; the folder is still
	// read once and on every change reported by the file system.
	Interval time.Duration
	Throttle time.Duration
}

// Watcher polls a mail provider and publishes envelope and folder events.
// Providers backed by directories are also watched with fsnotify so new mail
// shows up before the next poll.
type Watcher struct {
	provider mail.Provider
	folder   string
	pageSize int
	interval time.Duration
	throttle time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events  chan Event
	changes chan string
	wg      sync.WaitGroup
}

// NewWatcher starts watching provider.
func NewWatcher(provider mail.Provider, opts Options) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	if opts.Folder == "" {
		opts.Folder = mail.DefaultFolder
	}
	if opts.Throttle <= 0 {
		opts.Throttle = defaultThrottle
	}
	w := &Watcher{
		provider: provider,
		folder:   opts.Folder,
		pageSize: opts.PageSize,
		interval: opts.Interval,
		throttle: opts.Throttle,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
		changes:  make(chan string, 1),
	}

	w.startEnvelopePoller()
	w.startFolderPoller()
	w.startNotifier()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Folder returns the watched folder.
func (w *Watcher) Folder() string {
	return w.folder
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all goroutines have exited and the events channel is
// closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startEnvelopePoller() {
	throttle := newThrottle(w.throttle)
	w.wg.Add(1)
	go w.poll(KindEnvelopes, w.changes, func(ctx context.Context, trigger string) (interface{}, error) {
		if err := throttle.wait(ctx); err != nil {
			return nil, err
		}
		events.Backend.Refresh(w.folder, trigger)
		if r, ok := w.provider.(mail.Refresher); ok {
			if err := r.Refresh(ctx, w.folder); err != nil {
				return nil, err
			}
		}
		return w.provider.ListEnvelopes(ctx, w.folder, w.pageSize, 0)
	})
}

func (w *Watcher) startFolderPoller() {
	throttle := newThrottle(w.throttle)
	w.wg.Add(1)
	go w.poll(KindFolders, nil, func(ctx context.Context, trigger string) (interface{}, error) {
		if err := throttle.wait(ctx); err != nil {
			return nil, err
		}
		return w.provider.Folders(ctx)
	})
}

// startNotifier forwards file system changes in the folder's directories to
// the envelope poller. Bursts collapse into a single pending change.
func (w *Watcher) startNotifier() {
	source, ok := w.provider.(mail.Watchable)
	if !ok {
		return
	}
	dirs, err := source.WatchDirs(w.folder)
	if err != nil || len(dirs) == 0 {
		return
	}
	notify, err := fsnotify.NewWatcher()
	if err != nil {
		logging.Warnf("fsnotify unavailable: %v", err)
		return
	}
	for _, dir := range dirs {
		err := notify.Add(dir)
		events.Backend.Watch(dir, err)
		if err != nil {
			logging.Warnf("watch %s: %v", dir, err)
		}
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer notify.Close()
		for {
			select {
			case <-w.ctx.Done():
				return
			case ev, ok := <-notify.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Write) {
					continue
				}
				select {
				case w.changes <- TriggerChange:
				default:
				}
			case err, ok := <-notify.Errors:
				if !ok {
					return
				}
				logging.Warnf("fsnotify: %v", err)
			}
		}
	}()
}

func (w *Watcher) poll(kind Kind, changes <-chan string, fetch func(context.Context, string) (interface{}, error)) {
	defer w.wg.Done()

	emit := func(trigger string) bool {
		data, err := fetch(w.ctx, trigger)
		if w.ctx.Err() != nil {
			return false
		}
		evt := Event{Kind: kind, Folder: w.folder, Trigger: trigger, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit(TriggerStart) {
		return
	}

	var tick <-chan time.Time
	if w.interval > 0 {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-tick:
			if !emit(TriggerTick) {
				return
			}
		case trigger := <-changes:
			if !emit(trigger) {
				return
			}
		}
	}
}
