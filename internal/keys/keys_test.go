package keys

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestFromTeaSplitsRunes(t *testing.T) {
	evs := FromTea(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")})
	if len(evs) != 2 {
		t.Fatalf("expected 2 events, got %d", len(evs))
	}
	if evs[0].Rune != 'a' || evs[1].Rune != 'b' || !evs[0].Printable() {
		t.Fatalf("unexpected events %+v", evs)
	}
}

func TestFromTeaMapsNamedKeys(t *testing.T) {
	cases := map[tea.KeyType]Code{
		tea.KeyTab:       CodeTab,
		tea.KeyShiftTab:  CodeBackTab,
		tea.KeyUp:        CodeUp,
		tea.KeyBackspace: CodeBackspace,
		tea.KeyCtrlH:     CodeBackspace,
		tea.KeyEsc:       CodeEsc,
		tea.KeyCtrlC:     CodeCtrlC,
		tea.KeyF2:        CodeF2,
	}
	for in, want := range cases {
		evs := FromTea(tea.KeyMsg{Type: in})
		if len(evs) != 1 || evs[0].Code != want {
			t.Fatalf("key %v: expected %v, got %+v", in, want, evs)
		}
		if evs[0].Kind != Press {
			t.Fatalf("expected press events from the terminal")
		}
	}
}

func TestFromTeaSpaceIsPrintable(t *testing.T) {
	evs := FromTea(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if len(evs) != 1 || !evs[0].Printable() || evs[0].Rune != ' ' {
		t.Fatalf("expected a printable space, got %+v", evs)
	}
}

func TestFromTeaUnknownKeyHasNoCode(t *testing.T) {
	evs := FromTea(tea.KeyMsg{Type: tea.KeyF12})
	if len(evs) != 1 || evs[0].Code != CodeNone {
		t.Fatalf("expected CodeNone, got %+v", evs)
	}
	if Matches(evs[0], DefaultKeyMap().Quit) {
		t.Fatalf("CodeNone must not match any binding")
	}
}

func TestStringMatchesBubbleTeaNames(t *testing.T) {
	cases := map[string]Event{
		"tab":       Key(CodeTab),
		"shift+tab": Key(CodeBackTab),
		"q":         Rune('q'),
		" ":         Rune(' '),
		"alt+x":     {Code: CodeRune, Rune: 'x', Alt: true},
		"ctrl+c":    Key(CodeCtrlC),
	}
	for want, ev := range cases {
		if got := ev.String(); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
}

func TestDefaultBindings(t *testing.T) {
	km := DefaultKeyMap()
	if !Matches(Key(CodeTab), km.Focus.Advance) || !Matches(Key(CodeDown), km.Focus.Advance) {
		t.Fatalf("expected tab and down to advance")
	}
	if !Matches(Key(CodeBackTab), km.Focus.Retreat) || !Matches(Key(CodeUp), km.Focus.Retreat) {
		t.Fatalf("expected shift+tab and up to retreat")
	}
	if !Matches(Key(CodeEsc), km.Quit) || !Matches(Key(CodeCtrlC), km.Quit) {
		t.Fatalf("expected esc and ctrl+c to quit")
	}
	if Matches(Rune('q'), km.Quit) {
		t.Fatalf("q must not quit; it is text input")
	}
	if !Matches(Key(CodeF2), km.SwitchScreen) {
		t.Fatalf("expected f2 to switch screens")
	}
}
