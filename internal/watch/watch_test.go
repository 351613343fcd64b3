package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

// newTestWatcher creates a watcher without an fsnotify backend.
func newTestWatcher(t *testing.T, delay time.Duration) *Watcher {
	t.Helper()
	w := newWatcher(WithDelay(delay))
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func receive(t *testing.T, w *Watcher, timeout time.Duration) (Event, bool) {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev, true
	case <-time.After(timeout):
		return Event{}, false
	}
}

func TestCoalescesBursts(t *testing.T) {
	w := newTestWatcher(t, 20*time.Millisecond)
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := w.Add(path); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	w.handle(fsnotify.Event{Name: path, Op: fsnotify.Create})
	w.handle(fsnotify.Event{Name: path, Op: fsnotify.Write})
	w.handle(fsnotify.Event{Name: path, Op: fsnotify.Write})

	ev, ok := receive(t, w, time.Second)
	if !ok {
		t.Fatal("expected an event")
	}
	if ev.Op != fsnotify.Create|fsnotify.Write {
		t.Errorf("expected combined op, got %v", ev.Op)
	}

	if _, ok := receive(t, w, 60*time.Millisecond); ok {
		t.Error("expected a single event for the burst")
	}
}

func TestIgnoresUnwatchedFilesAndChmod(t *testing.T) {
	w := newTestWatcher(t, 10*time.Millisecond)
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := w.Add(path); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	w.handle(fsnotify.Event{Name: filepath.Join(dir, "other.txt"), Op: fsnotify.Write})
	w.handle(fsnotify.Event{Name: path, Op: fsnotify.Chmod})

	if ev, ok := receive(t, w, 50*time.Millisecond); ok {
		t.Errorf("unexpected event %+v", ev)
	}
}

func TestAddAfterClose(t *testing.T) {
	w := newWatcher()
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := w.Add("x"); err != ErrClosed {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	w := newTestWatcher(t, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := w.Run(ctx, func(Event) {}); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestWatchRealFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("one"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(WithDelay(20 * time.Millisecond))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := os.WriteFile(path, []byte("two"), 0o644); err != nil {
		t.Fatal(err)
	}

	ev, ok := receive(t, w, 5*time.Second)
	if !ok {
		t.Fatal("expected a change event")
	}
	abs, _ := filepath.Abs(path)
	if ev.Path != abs {
		t.Errorf("expected %s, got %s", abs, ev.Path)
	}
}
