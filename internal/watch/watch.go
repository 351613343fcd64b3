package watch

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/quill/internal/logging"
)

// DefaultDelay is the quiet period before a change is reported.
const DefaultDelay = 100 * time.Millisecond

// ErrClosed is returned when using a closed Watcher.
var ErrClosed = errors.New("watcher closed")

// Event reports that a watched file changed.
type Event struct {
	// Path is the absolute path of the file.
	Path string
	// Op combines every operation seen during the quiet period.
	Op fsnotify.Op
	// Time is when the last of those operations was seen.
	Time time.Time
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDelay sets the quiet period.
func WithDelay(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// Watcher watches files for changes.
type Watcher struct {
	mu sync.Mutex

	fsw   *fsnotify.Watcher
	files map[string]bool
	dirs  map[string]bool

	delay   time.Duration
	pending map[string]*pendingEvent
	events  chan Event

	log *logging.Logger

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
	firing   sync.WaitGroup
}

// pendingEvent is a change waiting out the quiet period.
type pendingEvent struct {
	event Event
	timer *time.Timer
}

// New creates a Watcher. Close must be called to release it.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := newWatcher(opts...)
	w.fsw = fsw

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

func newWatcher(opts ...Option) *Watcher {
	w := &Watcher{
		files:   make(map[string]bool),
		dirs:    make(map[string]bool),
		delay:   DefaultDelay,
		pending: make(map[string]*pendingEvent),
		events:  make(chan Event, 16),
		log:     logging.Nop(),
		closeCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Add starts reporting changes to path. The file need not exist yet, but
// its directory must.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}

	dir := filepath.Dir(abs)
	if !w.dirs[dir] && w.fsw != nil {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir] = true
	w.files[abs] = true
	return nil
}

// Events returns the channel of coalesced changes.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Run calls fn for every change until ctx is done or the watcher closes.
func (w *Watcher) Run(ctx context.Context, fn func(Event)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.events:
			if !ok {
				return ErrClosed
			}
			fn(ev)
		}
	}
}

// Close stops the watcher and closes the Events channel.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	for path, p := range w.pending {
		p.timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	w.closedWg.Wait()
	w.firing.Wait()
	close(w.events)

	if w.fsw != nil {
		return w.fsw.Close()
	}
	return nil
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error: %v", err)
		}
	}
}

// handle queues an fsnotify event for a watched file, restarting its quiet
// period.
func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Op == fsnotify.Chmod {
		return
	}

	path, err := filepath.Abs(ev.Name)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || !w.files[path] {
		return
	}

	now := time.Now()
	if p, ok := w.pending[path]; ok {
		p.event.Op |= ev.Op
		p.event.Time = now
		p.timer.Reset(w.delay)
		return
	}

	w.pending[path] = &pendingEvent{
		event: Event{Path: path, Op: ev.Op, Time: now},
		timer: time.AfterFunc(w.delay, func() { w.fire(path) }),
	}
}

// fire delivers the pending event for path.
func (w *Watcher) fire(path string) {
	w.mu.Lock()
	p, ok := w.pending[path]
	if !ok || w.closed {
		w.mu.Unlock()
		return
	}
	delete(w.pending, path)
	w.firing.Add(1)
	w.mu.Unlock()
	defer w.firing.Done()

	select {
	case w.events <- p.event:
	case <-w.closeCh:
	default:
		w.log.Warn("dropping change to %s: event channel full", path)
	}
}
