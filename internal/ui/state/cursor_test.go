package state

import (
	"testing"

	"github.com/nitidus-mail/nitidus/internal/mail"
)

func newTestList(subjects ...string) *List {
	items := make([]mail.Envelope, len(subjects))
	for i, subject := range subjects {
		items[i] = mail.Envelope{ID: subject, Subject: subject, From: "sender" + subject}
	}
	return NewList(items)
}

func TestMoveHome(t *testing.T) {
	l := newTestList("a", "b", "c")
	l.Cursor = 2
	if !l.MoveHome() {
		t.Fatalf("expected move when items exist")
	}
	if l.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", l.Cursor)
	}

	empty := newTestList()
	empty.Cursor = 5
	if empty.MoveHome() {
		t.Fatalf("expected no movement for empty list")
	}
	if empty.Cursor != 0 {
		t.Fatalf("expected cursor reset to 0, got %d", empty.Cursor)
	}
}

func TestMoveEnd(t *testing.T) {
	l := newTestList("a", "b", "c")
	if !l.MoveEnd() {
		t.Fatalf("expected move to end")
	}
	if l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
	if l.MoveEnd() {
		t.Fatalf("expected no movement when already at end")
	}
}

func TestNextAndPrevWrap(t *testing.T) {
	l := newTestList("a", "b", "c")
	if !l.Prev() {
		t.Fatalf("expected prev from first row to wrap")
	}
	if l.Cursor != 2 {
		t.Fatalf("expected cursor 2 after wrap, got %d", l.Cursor)
	}
	if !l.Next() || l.Cursor != 0 {
		t.Fatalf("expected next from last row to wrap to 0, got %d", l.Cursor)
	}

	single := newTestList("only")
	if single.Next() {
		t.Fatalf("expected no movement with a single row")
	}
	empty := newTestList()
	if empty.Next() || empty.Prev() {
		t.Fatalf("expected no movement for empty list")
	}
}

func TestPageUpDownClamp(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e", "f", "g")
	if !l.PageDown(3) {
		t.Fatalf("expected page down to move")
	}
	if l.Cursor != 3 {
		t.Fatalf("expected cursor 3, got %d", l.Cursor)
	}
	l.PageDown(3)
	l.PageDown(3)
	if l.Cursor != 6 {
		t.Fatalf("expected cursor clamped to 6, got %d", l.Cursor)
	}
	l.PageUp(4)
	if l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
	l.PageUp(4)
	if l.Cursor != 0 {
		t.Fatalf("expected cursor clamped to 0, got %d", l.Cursor)
	}
	if l.PageUp(4) {
		t.Fatalf("expected no movement at top")
	}
}

func TestPageWithoutVisibleRowsMovesWholeList(t *testing.T) {
	l := newTestList("a", "b", "c")
	l.PageDown(0)
	if l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
}

func TestEnsureVisible(t *testing.T) {
	l := newTestList("a", "b", "c", "d", "e", "f")
	l.Cursor = 4
	l.EnsureVisible(3)
	if l.ViewportOffset != 2 {
		t.Fatalf("expected offset 2, got %d", l.ViewportOffset)
	}
	l.Cursor = 1
	l.EnsureVisible(3)
	if l.ViewportOffset != 1 {
		t.Fatalf("expected offset 1, got %d", l.ViewportOffset)
	}
	l.EnsureVisible(0)
	if l.ViewportOffset != 0 {
		t.Fatalf("expected offset 0 without rows, got %d", l.ViewportOffset)
	}
}

func TestVisibleOffsetClampsToTail(t *testing.T) {
	if got := VisibleOffset(5, 9, 6, 4); got != 2 {
		t.Fatalf("expected offset 2, got %d", got)
	}
	if got := VisibleOffset(0, 3, 2, 5); got != 0 {
		t.Fatalf("expected offset 0 when everything fits, got %d", got)
	}
}
