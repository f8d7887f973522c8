package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nitidus-mail/nitidus/internal/mail"
	"github.com/nitidus-mail/nitidus/internal/mail/maildir"
	"github.com/nitidus-mail/nitidus/internal/testutil"
)

func nextEvent(t *testing.T, w *Watcher, kind Kind) Event {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case evt, ok := <-w.Events():
			if !ok {
				t.Fatalf("events channel closed while waiting for kind %d", kind)
			}
			if evt.Kind == kind {
				return evt
			}
		case <-timeout:
			t.Fatalf("timed out waiting for kind %d", kind)
		}
	}
}

func TestWatcherEmitsInitialSnapshot(t *testing.T) {
	md := testutil.NewMaildir(t, "Archive")
	md.Add(t, testutil.Message{ID: "a", Subject: "hello"})
	w := NewWatcher(maildir.New(md.Root), Options{Interval: time.Hour, Throttle: time.Millisecond})
	defer func() {
		w.Stop()
		w.Wait()
	}()

	seen := map[Kind]Event{}
	timeout := time.After(5 * time.Second)
	for len(seen) < 2 {
		select {
		case evt := <-w.Events():
			if _, dup := seen[evt.Kind]; !dup {
				seen[evt.Kind] = evt
			}
		case <-timeout:
			t.Fatalf("timed out waiting for the initial events, got %d", len(seen))
		}
	}

	evt := seen[KindEnvelopes]
	if evt.Err != nil {
		t.Fatalf("unexpected error: %v", evt.Err)
	}
	envs, ok := evt.Data.([]mail.Envelope)
	if !ok || len(envs) != 1 || envs[0].Subject != "hello" {
		t.Fatalf("unexpected envelopes %#v", evt.Data)
	}
	if evt.Trigger != TriggerStart || evt.Folder != mail.DefaultFolder {
		t.Fatalf("unexpected event metadata %+v", evt)
	}
	if names, ok := seen[KindFolders].Data.([]string); !ok || len(names) != 2 {
		t.Fatalf("unexpected folders %#v", seen[KindFolders].Data)
	}
}

func TestWatcherPicksUpNewMail(t *testing.T) {
	md := testutil.NewMaildir(t)
	md.Add(t, testutil.Message{ID: "a", Subject: "first"})
	w := NewWatcher(maildir.New(md.Root), Options{Interval: time.Hour, Throttle: time.Millisecond})
	defer func() {
		w.Stop()
		w.Wait()
	}()
	nextEvent(t, w, KindEnvelopes)

	md.Add(t, testutil.Message{ID: "b", Subject: "second", New: true})
	deadline := time.After(5 * time.Second)
	for {
		select {
		case evt := <-w.Events():
			if evt.Kind != KindEnvelopes || evt.Trigger != TriggerChange {
				continue
			}
			if envs, _ := evt.Data.([]mail.Envelope); len(envs) == 2 {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for change event")
		}
	}
}

type failingProvider struct{}

var errBroken = errors.New("broken")

func (failingProvider) Folders(context.Context) ([]string, error) { return nil, errBroken }

func (failingProvider) ListEnvelopes(context.Context, string, int, int) ([]mail.Envelope, error) {
	return nil, errBroken
}

func (failingProvider) Message(context.Context, string, string) (mail.Message, error) {
	return mail.Message{}, errBroken
}

func TestWatcherReportsErrors(t *testing.T) {
	w := NewWatcher(failingProvider{}, Options{Throttle: time.Millisecond})
	evt := nextEvent(t, w, KindEnvelopes)
	if !errors.Is(evt.Err, errBroken) {
		t.Fatalf("expected provider error, got %v", evt.Err)
	}
	w.Stop()
	w.Wait()
	for range w.Events() {
	}
}

func TestThrottleSpacesCalls(t *testing.T) {
	ctx := context.Background()
	th := newThrottle(20 * time.Millisecond)
	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := th.wait(ctx); err != nil {
			t.Fatalf("wait returned error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("expected at least 40ms between three calls, got %v", elapsed)
	}
	var none *throttle
	if err := none.wait(ctx); err != nil {
		t.Fatalf("expected nil throttle to pass, got %v", err)
	}
}

func TestThrottleStopsOnCancel(t *testing.T) {
	th := newThrottle(time.Hour)
	if err := th.wait(context.Background()); err != nil {
		t.Fatalf("expected first slot immediately, got %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- th.wait(ctx) }()
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("expected cancel to end the wait")
	}
}

func TestStopDoesNotWaitForThrottle(t *testing.T) {
	md := testutil.NewMaildir(t)
	w := NewWatcher(maildir.New(md.Root), Options{Throttle: time.Hour})
	nextEvent(t, w, KindEnvelopes)
	md.Add(t, testutil.Message{ID: "late", Subject: "Late", From: "ann@example.com", New: true})
	// Give the notifier time to hand the change to the throttled poller.
	time.Sleep(100 * time.Millisecond)
	w.Stop()
	done := make(chan struct{})
	go func() {
		w.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("expected Stop to interrupt a throttled refresh")
	}
	for range w.Events() {
	}
}
