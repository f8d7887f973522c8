package mailbox

import (
	"errors"
	"strings"
	"testing"

	"github.com/nitidus-mail/nitidus/internal/control"
	"github.com/nitidus-mail/nitidus/internal/keys"
)

func newTestScreen() *Screen {
	s := NewScreen("INBOX", keys.DefaultKeyMap())
	s.List().SetEnvelopes(testEnvelopes())
	s.Resize(60, ListRows+5)
	s.Focus()
	return s
}

func numberedBody(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = "line " + string(rune('0'+i))
	}
	return strings.Join(lines, "\n")
}

func TestScreenTabCyclesBetweenListAndPreview(t *testing.T) {
	s := newTestScreen()
	if s.FocusSlot() != SlotList {
		t.Fatalf("expected list focused first")
	}
	send(t, s, keys.Key(keys.CodeTab))
	if s.FocusSlot() != SlotPreview || !s.Preview().Focused() || s.List().Focused() {
		t.Fatalf("expected preview focused after tab")
	}
	send(t, s, keys.Key(keys.CodeTab))
	if s.FocusSlot() != SlotList {
		t.Fatalf("expected wrap back to list")
	}
	if got := len(control.FocusedLeaves(s)); got != 1 {
		t.Fatalf("expected one focused leaf, got %d", got)
	}
}

func TestScreenFilterIsTheFocusedLeafWhileOpen(t *testing.T) {
	s := newTestScreen()
	send(t, s, keys.Rune('/'))
	leaves := control.FocusedLeaves(s)
	if len(leaves) != 1 {
		t.Fatalf("expected one focused leaf while filtering, got %d", len(leaves))
	}
	if text, ok := leaves[0].(*control.Text); !ok || text.Label() != filterLabel {
		t.Fatalf("expected the filter field focused, got %T", leaves[0])
	}
	send(t, s, keys.Key(keys.CodeEnter))
	leaves = control.FocusedLeaves(s)
	if len(leaves) != 1 || leaves[0] != control.Control(s.List()) {
		t.Fatalf("expected the list to be the focused leaf after closing the filter")
	}
	send(t, s, keys.Rune('/'))
	send(t, s, keys.Key(keys.CodeTab))
	leaves = control.FocusedLeaves(s)
	if len(leaves) != 1 || leaves[0] != control.Control(s.Preview()) {
		t.Fatalf("expected only the preview focused after tab")
	}
}

func TestScreenListConsumesArrows(t *testing.T) {
	s := newTestScreen()
	send(t, s, keys.Key(keys.CodeDown))
	if s.FocusSlot() != SlotList {
		t.Fatalf("expected list to keep focus on down")
	}
	if id := selectedID(t, s.List()); id != "2" {
		t.Fatalf("expected 2, got %s", id)
	}
}

func TestPreviewScrollsAndBubblesAtEnds(t *testing.T) {
	s := newTestScreen()
	s.Preview().SetMessage("1", numberedBody(10))
	send(t, s, keys.Key(keys.CodeTab))

	if res := send(t, s, keys.Key(keys.CodeDown)); res != control.Consumed {
		t.Fatalf("expected scroll consumed, got %v", res)
	}
	if got := s.Preview().Offset(); got != 1 {
		t.Fatalf("expected offset 1, got %d", got)
	}
	send(t, s, keys.Key(keys.CodeEnd))
	if got := s.Preview().Offset(); got != 7 {
		t.Fatalf("expected offset 7 at bottom, got %d", got)
	}
	send(t, s, keys.Key(keys.CodeDown))
	if s.FocusSlot() != SlotList {
		t.Fatalf("expected down at the bottom to advance to the list")
	}
}

func TestPreviewUpAtTopRetreats(t *testing.T) {
	s := newTestScreen()
	s.Preview().SetMessage("1", numberedBody(10))
	send(t, s, keys.Key(keys.CodeTab))
	send(t, s, keys.Key(keys.CodeUp))
	if s.FocusSlot() != SlotList {
		t.Fatalf("expected up at the top to retreat to the list")
	}
}

func TestPreviewYank(t *testing.T) {
	p := NewPreview(keys.DefaultKeyMap())
	if res := p.HandleKey(keys.Rune('y')); res != control.NotConsumed {
		t.Fatalf("expected yank without body to bubble, got %v", res)
	}
	p.SetMessage("1", "hello\r\nworld")
	if res := p.HandleKey(keys.Rune('y')); res != control.Consumed {
		t.Fatalf("expected yank consumed, got %v", res)
	}
	body, ok := p.TakeYank()
	if !ok || body != "hello\nworld" {
		t.Fatalf("expected body yanked, got %q (ok=%v)", body, ok)
	}
	if _, ok := p.TakeYank(); ok {
		t.Fatalf("expected yank request cleared")
	}
}

func TestPreviewRender(t *testing.T) {
	p := NewPreview(keys.DefaultKeyMap())
	p.SetSize(30, 4)
	p.SetLoading("1")
	view := p.Render(control.Area{Width: 30, Height: 4})
	if view.Title != "Message" || len(view.Lines) != 1 || view.Lines[0].Spans[0].Tone != control.ToneMuted {
		t.Fatalf("expected loading line, got %#v", view)
	}
	p.SetMessage("1", "a\tb\nsecond\nthird")
	view = p.Render(control.Area{Width: 30, Height: 4})
	if len(view.Lines) != 2 {
		t.Fatalf("expected two visible lines, got %d", len(view.Lines))
	}
	if got := view.Lines[0].Text(); got != "a    b" {
		t.Fatalf("expected tabs expanded, got %q", got)
	}
	p.SetError("1", errors.New("boom"))
	view = p.Render(control.Area{Width: 30, Height: 4})
	if view.Lines[0].Text() != "boom" || view.Lines[0].Spans[0].Tone != control.ToneError {
		t.Fatalf("expected error line, got %#v", view.Lines)
	}
}

func TestScreenRenderStacksListOverPreview(t *testing.T) {
	s := newTestScreen()
	view := s.Render(control.Area{Width: 60, Height: ListRows + 5})
	if len(view.Children) != 2 {
		t.Fatalf("expected two children, got %d", len(view.Children))
	}
	list, preview := view.Children[0], view.Children[1]
	if list.Area.Height != ListRows || preview.Area.Y != ListRows || preview.Area.Height != 5 {
		t.Fatalf("unexpected layout: list=%+v preview=%+v", list.Area, preview.Area)
	}
}
