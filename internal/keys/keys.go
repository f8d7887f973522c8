// Package keys is the input boundary of the control tree. It turns Bubble Tea
// key messages into logical key events and holds the key bindings the rest of
// the UI matches against.
package keys

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Code identifies a logical key.
type Code int

const (
	CodeNone Code = iota
	CodeRune
	CodeUp
	CodeDown
	CodeLeft
	CodeRight
	CodeTab
	CodeBackTab
	CodeEnter
	CodeEsc
	CodeBackspace
	CodeHome
	CodeEnd
	CodePgUp
	CodePgDown
	CodeCtrlC
	CodeF2
)

var codeNames = map[Code]string{
	CodeUp:        "up",
	CodeDown:      "down",
	CodeLeft:      "left",
	CodeRight:     "right",
	CodeTab:       "tab",
	CodeBackTab:   "shift+tab",
	CodeEnter:     "enter",
	CodeEsc:       "esc",
	CodeBackspace: "backspace",
	CodeHome:      "home",
	CodeEnd:       "end",
	CodePgUp:      "pgup",
	CodePgDown:    "pgdown",
	CodeCtrlC:     "ctrl+c",
	CodeF2:        "f2",
}

// Kind discriminates key presses from key releases.
type Kind int

const (
	Press Kind = iota
	Release
)

// Event is a single logical key event.
type Event struct {
	Code Code
	Rune rune
	Alt  bool
	Kind Kind
}

// Key returns a press event for a non-character key.
func Key(code Code) Event {
	return Event{Code: code}
}

// Rune returns a press event for a character key.
func Rune(r rune) Event {
	return Event{Code: CodeRune, Rune: r}
}

// Runes returns one press event per character of s.
func Runes(s string) []Event {
	out := make([]Event, 0, len(s))
	for _, r := range s {
		out = append(out, Rune(r))
	}
	return out
}

// String renders the event using Bubble Tea key names so bindings built with
// bubbles/key match it directly.
func (e Event) String() string {
	var name string
	if e.Code == CodeRune {
		if e.Rune == ' ' {
			name = " "
		} else {
			name = string(e.Rune)
		}
	} else {
		name = codeNames[e.Code]
	}
	if e.Alt && name != "" {
		return "alt+" + name
	}
	return name
}

// Printable reports whether the event inserts a character into a text value.
func (e Event) Printable() bool {
	return e.Code == CodeRune && !e.Alt && unicode.IsPrint(e.Rune)
}

// Pressed reports whether the event is a key press.
func (e Event) Pressed() bool {
	return e.Kind == Press
}

var teaCodes = map[tea.KeyType]Code{
	tea.KeyUp:        CodeUp,
	tea.KeyDown:      CodeDown,
	tea.KeyLeft:      CodeLeft,
	tea.KeyRight:     CodeRight,
	tea.KeyTab:       CodeTab,
	tea.KeyShiftTab:  CodeBackTab,
	tea.KeyEnter:     CodeEnter,
	tea.KeyEsc:       CodeEsc,
	tea.KeyBackspace: CodeBackspace,
	tea.KeyCtrlH:     CodeBackspace,
	tea.KeyHome:      CodeHome,
	tea.KeyEnd:       CodeEnd,
	tea.KeyPgUp:      CodePgUp,
	tea.KeyPgDown:    CodePgDown,
	tea.KeyCtrlC:     CodeCtrlC,
	tea.KeyF2:        CodeF2,
}

// FromTea converts a Bubble Tea key message into logical events. Pasted or
// buffered input produces one event per rune. Keys without a logical code
// yield a single CodeNone event so they still reach the control tree.
func FromTea(msg tea.KeyMsg) []Event {
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return []Event{{Code: CodeNone, Alt: msg.Alt}}
		}
		out := make([]Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, Event{Code: CodeRune, Rune: r, Alt: msg.Alt})
		}
		return out
	case tea.KeySpace:
		return []Event{{Code: CodeRune, Rune: ' ', Alt: msg.Alt}}
	}
	if code, ok := teaCodes[msg.Type]; ok {
		return []Event{{Code: code, Alt: msg.Alt}}
	}
	return []Event{{Code: CodeNone, Alt: msg.Alt}}
}

// Matches reports whether the event triggers any of the bindings.
func Matches(e Event, bindings ...key.Binding) bool {
	if e.Code == CodeNone {
		return false
	}
	return key.Matches(e, bindings...)
}

// FocusKeys are the reserved transitions a composite intercepts.
type FocusKeys struct {
	Advance key.Binding
	Retreat key.Binding
}

// DefaultFocusKeys binds Tab/Down to advance and Shift-Tab/Up to retreat.
func DefaultFocusKeys() FocusKeys {
	return FocusKeys{
		Advance: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab/↓", "next field")),
		Retreat: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab/↑", "previous field")),
	}
}

// ChoiceKeys step a select field through its options.
type ChoiceKeys struct {
	Prev key.Binding
	Next key.Binding
}

// DefaultChoiceKeys binds Left and Right.
func DefaultChoiceKeys() ChoiceKeys {
	return ChoiceKeys{
		Prev: key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous option")),
		Next: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next option")),
	}
}

// KeyMap holds the application level bindings.
type KeyMap struct {
	Quit         key.Binding
	SwitchScreen key.Binding
	Focus        FocusKeys

	ListUp     key.Binding
	ListDown   key.Binding
	ListTop    key.Binding
	ListBottom key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Filter     key.Binding
	Accept     key.Binding
	Yank       key.Binding

	Choice ChoiceKeys
	Erase  key.Binding
}

// DefaultKeyMap returns the bindings used by the application.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:         key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
		SwitchScreen: key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "switch screen")),
		Focus:        DefaultFocusKeys(),

		ListUp:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous message")),
		ListDown:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next message")),
		ListTop:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home", "first message")),
		ListBottom: key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end", "last message")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Filter:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Accept:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "close filter")),
		Yank:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy message")),

		Choice: DefaultChoiceKeys(),
		Erase:  key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "erase")),
	}
}
